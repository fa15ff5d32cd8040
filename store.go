package flux

import (
	"context"
	"sync"
)

// StoreOf is the surface shared by root and scoped stores: read the current
// state, dispatch an action, subscribe to commits. Subscribe's callback runs
// after every commit of the backing root store; the returned func removes
// the subscription.
type StoreOf[S, A any] interface {
	State() S
	Send(action A)
	Subscribe(fn func(S)) (unsubscribe func())
}

// Store owns one live state value and is its sole mutator. Dispatch is
// serialized: Send runs the reducer to completion and commits before the
// next dispatch is accepted. Effects produced by a dispatch start on their
// own goroutines after the commit and feed follow-up actions back through
// Send like any other caller.
type Store[S, A any] struct {
	mu     sync.Mutex
	state  S
	reduce Reducer[S, A]

	subMu   sync.Mutex
	subs    map[int]func(S)
	nextSub int

	ctx      context.Context
	shutdown context.CancelFunc
	wg       sync.WaitGroup

	inflightMu sync.Mutex
	inflight   map[string][]*inflightEffect
	nextEffect int
}

type inflightEffect struct {
	seq    int
	cancel context.CancelFunc
}

// New creates a store seeded with initial, driven by reducer.
func New[S, A any](initial S, reducer Reducer[S, A]) *Store[S, A] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store[S, A]{
		state:    initial,
		reduce:   reducer,
		subs:     make(map[int]func(S)),
		ctx:      ctx,
		shutdown: cancel,
		inflight: make(map[string][]*inflightEffect),
	}
}

// State returns the most recently committed state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Send dispatches action. The reducer runs and commits under the dispatch
// lock, so concurrent senders are serialized in lock-acquisition order and
// a reader immediately after Send observes the committed result. Subscriber
// notification and effect launch happen after the commit, outside the lock,
// so subscribers and effects may themselves call Send.
func (s *Store[S, A]) Send(action A) {
	s.mu.Lock()
	next, eff := s.reduce(s.state, action)
	s.state = next
	s.mu.Unlock()

	s.notify(next)
	s.launch(eff)
}

// Subscribe registers fn to run with the committed state after every
// dispatch. No slice-diff filtering is applied; callers that only care
// about part of the state filter themselves or subscribe through a scoped
// store. The returned func removes the subscription.
func (s *Store[S, A]) Subscribe(fn func(S)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Close cancels every in-flight effect and waits for their goroutines to
// return. Further Sends still dispatch, but effects they produce are
// launched with an already-cancelled context.
func (s *Store[S, A]) Close() {
	s.shutdown()
	s.wg.Wait()
}

func (s *Store[S, A]) notify(state S) {
	s.subMu.Lock()
	fns := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}

func (s *Store[S, A]) launch(eff Effect[A]) {
	for _, op := range eff.ops {
		if op.cancelID != "" {
			s.cancelIdentity(op.cancelID)
		}
		if op.run == nil {
			continue
		}
		ctx, cancel := context.WithCancel(s.ctx)
		var handle *inflightEffect
		if op.id != "" {
			handle = s.register(op.id, cancel)
		}
		run := op.run
		id := op.id
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer cancel()
			run(ctx, s.Send)
			if handle != nil {
				s.deregister(id, handle)
			}
		}()
	}
}

func (s *Store[S, A]) register(id string, cancel context.CancelFunc) *inflightEffect {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	h := &inflightEffect{seq: s.nextEffect, cancel: cancel}
	s.nextEffect++
	s.inflight[id] = append(s.inflight[id], h)
	return h
}

func (s *Store[S, A]) deregister(id string, handle *inflightEffect) {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	live := s.inflight[id][:0]
	for _, h := range s.inflight[id] {
		if h != handle {
			live = append(live, h)
		}
	}
	if len(live) == 0 {
		delete(s.inflight, id)
	} else {
		s.inflight[id] = live
	}
}

func (s *Store[S, A]) cancelIdentity(id string) {
	s.inflightMu.Lock()
	handles := s.inflight[id]
	delete(s.inflight, id)
	s.inflightMu.Unlock()
	for _, h := range handles {
		h.cancel()
	}
}

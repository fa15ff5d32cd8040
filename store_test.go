package flux

import (
	"context"
	"sync"
	"testing"
	"time"
)

func waitForState[S, A any](t *testing.T, store StoreOf[S, A], ok func(S) bool) S {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s := store.State(); ok(s) {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for state, last: %+v", store.State())
	var zero S
	return zero
}

func TestStoreSendCommitsSynchronously(t *testing.T) {
	store := New(tabsState{}, tabsReducer())
	defer store.Close()

	store.Send(tab1Action{counterIncrement})
	if got := store.State(); got.Tab1.Count != 1 || got.Tab2.Count != 0 {
		t.Fatalf("state after send: %+v", got)
	}
	store.Send(tab2Action{counterIncrement})
	store.Send(tab2Action{counterIncrement})
	if got := store.State(); got.Tab1.Count != 1 || got.Tab2.Count != 2 {
		t.Fatalf("state after tab2 sends: %+v", got)
	}
}

func TestStoreSerializesConcurrentSenders(t *testing.T) {
	store := New(tabsState{}, tabsReducer())
	defer store.Close()

	const senders = 100
	var wg sync.WaitGroup
	wg.Add(senders)
	for i := 0; i < senders; i++ {
		go func() {
			defer wg.Done()
			store.Send(tab1Action{counterIncrement})
		}()
	}
	wg.Wait()
	if got := store.State().Tab1.Count; got != senders {
		t.Fatalf("lost updates: %d != %d", got, senders)
	}
}

func TestStoreNotifiesSubscribersOnEveryCommit(t *testing.T) {
	store := New(tabsState{}, tabsReducer())
	defer store.Close()

	var got []tabsState
	unsub := store.Subscribe(func(s tabsState) { got = append(got, s) })
	store.Send(tab1Action{counterIncrement})
	store.Send(unknownAction{}) // no-op, still notifies
	unsub()
	store.Send(tab1Action{counterIncrement})

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Tab1.Count != 1 || got[1].Tab1.Count != 1 {
		t.Fatalf("notification payloads wrong: %+v", got)
	}
	if store.State().Tab1.Count != 2 {
		t.Fatalf("send after unsubscribe should still dispatch")
	}
}

// feedback fixture: an action whose rule schedules an effect that sends a
// follow-up action back into the store.

type echoState struct {
	Pings int
	Pongs int
}

type echoAction string

func echoReducer(s echoState, a echoAction) (echoState, Effect[echoAction]) {
	switch a {
	case "ping":
		s.Pings++
		return s, Run(func(ctx context.Context, send func(echoAction)) {
			send("pong")
		})
	case "pong":
		s.Pongs++
	}
	return s, None[echoAction]()
}

func TestEffectFollowUpReentersDispatch(t *testing.T) {
	store := New(echoState{}, echoReducer)
	defer store.Close()

	store.Send("ping")
	final := waitForState(t, StoreOf[echoState, echoAction](store), func(s echoState) bool {
		return s.Pongs == 1
	})
	if final.Pings != 1 {
		t.Fatalf("final state: %+v", final)
	}
}

// cancellation fixture: "watch" parks an effect on its context under an
// identity; "stop" cancels the identity; the parked effect reports back
// with "stopped" once it observes cancellation.

type watchState struct {
	Watching bool
	Stopped  bool
}

type watchAction string

func watchReducer(s watchState, a watchAction) (watchState, Effect[watchAction]) {
	switch a {
	case "watch":
		s.Watching = true
		eff := Run(func(ctx context.Context, send func(watchAction)) {
			<-ctx.Done()
			send("stopped")
		})
		return s, eff.WithID("watcher")
	case "stop":
		return s, Cancel[watchAction]("watcher")
	case "stopped":
		s.Watching = false
		s.Stopped = true
	}
	return s, None[watchAction]()
}

func TestCancelByIdentitySignalsInFlightEffect(t *testing.T) {
	store := New(watchState{}, watchReducer)
	defer store.Close()

	store.Send("watch")
	store.Send("stop")
	final := waitForState(t, StoreOf[watchState, watchAction](store), func(s watchState) bool {
		return s.Stopped
	})
	if final.Watching {
		t.Fatalf("watcher still marked active: %+v", final)
	}
}

func TestCancelUnknownIdentityIsNoOp(t *testing.T) {
	store := New(watchState{}, watchReducer)
	defer store.Close()
	store.Send("stop")
	if got := store.State(); got.Stopped || got.Watching {
		t.Fatalf("cancel with nothing in flight changed state: %+v", got)
	}
}

func TestCloseCancelsAndWaitsForEffects(t *testing.T) {
	released := make(chan struct{})
	reduce := func(s int, a string) (int, Effect[string]) {
		if a != "park" {
			return s, None[string]()
		}
		return s + 1, Run(func(ctx context.Context, send func(string)) {
			<-ctx.Done()
			close(released)
		})
	}
	store := New(0, reduce)
	store.Send("park")
	store.Close()
	select {
	case <-released:
	default:
		t.Fatalf("Close returned before effect goroutine exited")
	}
}

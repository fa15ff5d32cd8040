// Package counter is the leaf feature of the tally app: a counter with a
// toggleable tick timer and an async number-fact lookup. It owns no store;
// the composite app lifts two instances of it under one store.
package counter

import (
	"context"
	"time"

	"github.com/jask/flux"
	"github.com/jask/flux/internal/facts"
)

// State is the counter's slice of the composite state.
type State struct {
	Count   int    `json:"count"`
	Ticks   int    `json:"ticks"`
	TimerOn bool   `json:"timer_on"`
	Fact    string `json:"fact"`
	Loading bool   `json:"-"`
	Err     string `json:"-"`
}

// Action is the counter's action shape. One implementation per case.
type Action interface{ isCounterAction() }

type IncrementPressed struct{}
type DecrementPressed struct{}
type ResetPressed struct{}

// TimerToggled starts the tick effect, or cancels it if already running.
type TimerToggled struct{}

// Ticked is fed back by the running tick effect.
type Ticked struct{}

// FactRequested starts a lookup for the current count. A newer request
// cancels an older one still in flight.
type FactRequested struct{}

// FactLoaded and FactFailed are fed back by the lookup effect. Lookup
// failures arrive as regular actions, never as errors.
type FactLoaded struct{ Fact string }
type FactFailed struct{ Err string }

func (IncrementPressed) isCounterAction() {}
func (DecrementPressed) isCounterAction() {}
func (ResetPressed) isCounterAction()     {}
func (TimerToggled) isCounterAction()     {}
func (Ticked) isCounterAction()           {}
func (FactRequested) isCounterAction()    {}
func (FactLoaded) isCounterAction()       {}
func (FactFailed) isCounterAction()       {}

// Deps carries the feature's environment. ID must be unique per lifted
// instance: effect cancellation identities are store-global and are derived
// from it.
type Deps struct {
	Facts        facts.Provider
	TickInterval time.Duration
	ID           string
}

func (d Deps) timerID() string { return d.ID + "/timer" }
func (d Deps) factID() string  { return d.ID + "/fact" }

// NewReducer builds the counter's transition function around deps.
func NewReducer(deps Deps) flux.Reducer[State, Action] {
	return func(s State, a Action) (State, flux.Effect[Action]) {
		switch action := a.(type) {
		case IncrementPressed:
			s.Count++
		case DecrementPressed:
			s.Count--
		case ResetPressed:
			s.Count = 0
			s.Ticks = 0
		case TimerToggled:
			if s.TimerOn {
				s.TimerOn = false
				return s, flux.Cancel[Action](deps.timerID())
			}
			s.TimerOn = true
			return s, tickLoop(deps.TickInterval).WithID(deps.timerID())
		case Ticked:
			s.Count++
			s.Ticks++
		case FactRequested:
			s.Loading = true
			s.Err = ""
			return s, flux.Batch(
				flux.Cancel[Action](deps.factID()),
				lookup(deps.Facts, s.Count).WithID(deps.factID()),
			)
		case FactLoaded:
			s.Loading = false
			s.Fact = action.Fact
		case FactFailed:
			s.Loading = false
			s.Err = action.Err
		}
		return s, flux.None[Action]()
	}
}

func tickLoop(interval time.Duration) flux.Effect[Action] {
	return flux.Run(func(ctx context.Context, send func(Action)) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				send(Ticked{})
			}
		}
	})
}

func lookup(provider facts.Provider, number int) flux.Effect[Action] {
	return flux.Run(func(ctx context.Context, send func(Action)) {
		fact, err := provider.Fact(ctx, number)
		if err != nil {
			if ctx.Err() != nil {
				// Superseded or shut down; the newer request owns the state.
				return
			}
			send(FactFailed{Err: err.Error()})
			return
		}
		send(FactLoaded{Fact: fact})
	})
}

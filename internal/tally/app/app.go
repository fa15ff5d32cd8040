// Package app is the composite feature of the tally demo: two counter tabs
// lifted under one state tree, plus local rules for tab selection, the
// command palette, autosave, and quitting.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jask/flux"
	"github.com/jask/flux/internal/facts"
	"github.com/jask/flux/internal/tally/counter"
)

// Tab identifies one of the two counter slices.
type Tab int

const (
	TabLeft Tab = iota
	TabRight
	tabCount
)

func (t Tab) String() string {
	if t == TabRight {
		return "right"
	}
	return "left"
}

// State is the root of the composite state tree. The json-tagged fields are
// what autosave persists; everything else is session-local.
type State struct {
	Left   counter.State `json:"left"`
	Right  counter.State `json:"right"`
	Active Tab           `json:"active"`

	Status   string       `json:"-"`
	Palette  PaletteState `json:"-"`
	Quitting bool         `json:"-"`
	Width    int          `json:"-"`
	Height   int          `json:"-"`
}

// PaletteState is the command palette's local state. Match ranking is
// derived at render time, not stored.
type PaletteState struct {
	Open   bool
	Query  string
	Cursor int
}

// Action is the composite action shape: one case per child plus the local
// cases.
type Action interface{ isAction() }

// Left and Right carry a child action to the corresponding counter slice.
type Left struct{ Action counter.Action }
type Right struct{ Action counter.Action }

type TabSelected struct{ Tab Tab }
type TabCycled struct{}
type WindowResized struct{ Width, Height int }
type QuitRequested struct{}

type PaletteToggled struct{}
type PaletteTyped struct{ Rune rune }
type PaletteBackspaced struct{}
type PaletteMoved struct{ Delta int }
type PaletteSubmitted struct{}

// SnapshotSaved and SnapshotFailed are fed back by the autosave effect.
type SnapshotSaved struct{ ID string }
type SnapshotFailed struct{ Err string }

func (Left) isAction()              {}
func (Right) isAction()             {}
func (TabSelected) isAction()       {}
func (TabCycled) isAction()         {}
func (WindowResized) isAction()     {}
func (QuitRequested) isAction()     {}
func (PaletteToggled) isAction()    {}
func (PaletteTyped) isAction()      {}
func (PaletteBackspaced) isAction() {}
func (PaletteMoved) isAction()      {}
func (PaletteSubmitted) isAction()  {}
func (SnapshotSaved) isAction()     {}
func (SnapshotFailed) isAction()    {}

// Saver persists serialized state. *snapshot.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, payload []byte) (string, error)
}

// Deps is the composite feature's environment. A nil Snapshots disables
// autosave.
type Deps struct {
	Facts         facts.Provider
	TickInterval  time.Duration
	Snapshots     Saver
	AutosaveDelay time.Duration
}

const autosaveID = "app/autosave"

// NewReducer composes the two lifted counters with the local rule. Children
// run first so the local rule observes child actions against the already
// settled slices.
func NewReducer(deps Deps) flux.Reducer[State, Action] {
	left := flux.Lift(
		counter.NewReducer(counter.Deps{Facts: deps.Facts, TickInterval: deps.TickInterval, ID: "left"}),
		func(s *State) *counter.State { return &s.Left },
		func(a Action) (counter.Action, bool) {
			wrapped, ok := a.(Left)
			return wrapped.Action, ok
		},
		func(a counter.Action) Action { return Left{Action: a} },
	)
	right := flux.Lift(
		counter.NewReducer(counter.Deps{Facts: deps.Facts, TickInterval: deps.TickInterval, ID: "right"}),
		func(s *State) *counter.State { return &s.Right },
		func(a Action) (counter.Action, bool) {
			wrapped, ok := a.(Right)
			return wrapped.Action, ok
		},
		func(a counter.Action) Action { return Right{Action: a} },
	)
	return flux.Combine(left, right, localReducer(deps))
}

func localReducer(deps Deps) flux.Reducer[State, Action] {
	return func(s State, a Action) (State, flux.Effect[Action]) {
		switch action := a.(type) {
		case TabSelected:
			if action.Tab >= 0 && action.Tab < tabCount {
				s.Active = action.Tab
				s.Status = "Active tab: " + s.Active.String()
			}
		case TabCycled:
			s.Active = (s.Active + 1) % tabCount
			s.Status = "Active tab: " + s.Active.String()
		case WindowResized:
			s.Width = action.Width
			s.Height = action.Height
		case QuitRequested:
			s.Quitting = true
		case PaletteToggled:
			s.Palette = PaletteState{Open: !s.Palette.Open}
		case PaletteTyped:
			if s.Palette.Open {
				s.Palette.Query += string(action.Rune)
				s.Palette.Cursor = 0
			}
		case PaletteBackspaced:
			if s.Palette.Open && s.Palette.Query != "" {
				runes := []rune(s.Palette.Query)
				s.Palette.Query = string(runes[:len(runes)-1])
				s.Palette.Cursor = 0
			}
		case PaletteMoved:
			if s.Palette.Open {
				s.Palette.Cursor = clamp(s.Palette.Cursor+action.Delta, 0, paletteLimit-1)
			}
		case PaletteSubmitted:
			if !s.Palette.Open {
				break
			}
			cmd, ok := selectedCommand(s.Palette)
			s.Palette = PaletteState{}
			if !ok {
				s.Status = "No matching command"
				break
			}
			s.Status = "Command: " + cmd.Name
			return s, flux.Send(cmd.Action)
		case SnapshotSaved:
			s.Status = "State saved"
		case SnapshotFailed:
			s.Status = "Save failed: " + action.Err
		case Left:
			s.Status = childStatus(TabLeft, action.Action, s.Left)
			return s, autosave(deps, s)
		case Right:
			s.Status = childStatus(TabRight, action.Action, s.Right)
			return s, autosave(deps, s)
		}
		return s, flux.None[Action]()
	}
}

// childStatus reflects a child action passing through the shared action
// tree; this is the composite observing its children, not reaching into
// their slices.
func childStatus(tab Tab, a counter.Action, slice counter.State) string {
	switch a.(type) {
	case counter.TimerToggled:
		if slice.TimerOn {
			return fmt.Sprintf("%s timer started", tab)
		}
		return fmt.Sprintf("%s timer stopped", tab)
	case counter.FactRequested:
		return fmt.Sprintf("Looking up a fact about %d...", slice.Count)
	case counter.FactFailed:
		return fmt.Sprintf("%s fact lookup failed: %s", tab, slice.Err)
	case counter.Ticked:
		return fmt.Sprintf("%s: %d", tab, slice.Count)
	default:
		return fmt.Sprintf("%s: %d", tab, slice.Count)
	}
}

// autosave schedules a debounced save of the persistable state. Each new
// child action supersedes the pending save, so a burst of activity writes
// once.
func autosave(deps Deps, s State) flux.Effect[Action] {
	if deps.Snapshots == nil {
		return flux.None[Action]()
	}
	payload, err := json.Marshal(s)
	if err != nil {
		// State is plain data; a marshal failure is a programming error
		// surfaced through the same feedback path as any other.
		return flux.Send[Action](SnapshotFailed{Err: err.Error()})
	}
	delay := deps.AutosaveDelay
	save := flux.Run(func(ctx context.Context, send func(Action)) {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
		id, err := deps.Snapshots.Save(ctx, payload)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			send(SnapshotFailed{Err: err.Error()})
			return
		}
		send(SnapshotSaved{ID: id})
	})
	return flux.Batch(flux.Cancel[Action](autosaveID), save.WithID(autosaveID))
}

// Restore rebuilds the persistable part of the state from a snapshot
// payload.
func Restore(payload []byte) (State, error) {
	var s State
	if err := json.Unmarshal(payload, &s); err != nil {
		return State{}, fmt.Errorf("restore state: %w", err)
	}
	if s.Active < 0 || s.Active >= tabCount {
		s.Active = TabLeft
	}
	// Effect-coupled flags never survive a restart.
	s.Left.TimerOn = false
	s.Right.TimerOn = false
	return s, nil
}

// Marshal serializes the persistable part of the state.
func Marshal(s State) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return payload, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

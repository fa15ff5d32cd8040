// Package fluxtea binds a flux store to a bubbletea program. The store owns
// all application state; the tea model here is a stateless shell that
// translates terminal messages into actions, renders the current state, and
// relays commits made by async effects back into the program loop so the
// view repaints.
package fluxtea

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flux"
)

// RefreshMsg repaints the view after a store commit that happened outside
// the program loop (an effect's follow-up action). It carries no data; the
// model always renders from the store's latest state.
type RefreshMsg struct{}

// Model adapts a store to tea.Model. Translate maps an incoming tea.Msg to
// an action; messages it rejects are ignored. Render draws the committed
// state. ShouldQuit, when set, is checked after every dispatch and ends the
// program once the state says so (e.g. a Quitting flag set by the reducer).
type Model[S, A any] struct {
	Store      flux.StoreOf[S, A]
	Translate  func(msg tea.Msg) (A, bool)
	Render     func(state S) string
	ShouldQuit func(state S) bool
}

func (m Model[S, A]) Init() tea.Cmd { return nil }

func (m Model[S, A]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(RefreshMsg); ok {
		return m, nil
	}
	action, ok := m.Translate(msg)
	if !ok {
		return m, nil
	}
	m.Store.Send(action)
	if m.ShouldQuit != nil && m.ShouldQuit(m.Store.State()) {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model[S, A]) View() string {
	return m.Render(m.Store.State())
}

// Run starts a bubbletea program around m. For the program's lifetime every
// store commit enqueues a RefreshMsg, so state changed by effects repaints
// without any action passing through Update. The relay runs on its own
// goroutine because subscribers fire synchronously inside Send, which may
// itself be running inside Update on the program loop.
func Run[S, A any](m Model[S, A], opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, opts...)
	unsub := m.Store.Subscribe(func(S) {
		go p.Send(RefreshMsg{})
	})
	defer unsub()
	_, err := p.Run()
	return err
}

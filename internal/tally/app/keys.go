package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flux/internal/tally/counter"
)

type keyMap struct {
	NextTab   key.Binding
	TabLeft   key.Binding
	TabRight  key.Binding
	Increment key.Binding
	Decrement key.Binding
	Reset     key.Binding
	Timer     key.Binding
	Fact      key.Binding
	Palette   key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
		TabLeft:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "left tab")),
		TabRight:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "right tab")),
		Increment: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "increment")),
		Decrement: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "decrement")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Timer:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timer")),
		Fact:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fact")),
		Palette:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "commands")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Increment, k.Decrement, k.Timer, k.Fact, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.TabLeft, k.TabRight},
		{k.Increment, k.Decrement, k.Reset},
		{k.Timer, k.Fact, k.Palette, k.Quit},
	}
}

// wrapActive routes a counter action to the active tab's slice.
func wrapActive(s State, a counter.Action) Action {
	if s.Active == TabRight {
		return Right{Action: a}
	}
	return Left{Action: a}
}

// Translate maps terminal messages to actions. It needs the current state
// for routing: the palette captures keys while open, and counter keys go to
// the active tab.
func Translate(s State, msg tea.Msg) (Action, bool) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		return WindowResized{Width: m.Width, Height: m.Height}, true
	case tea.KeyMsg:
		if s.Palette.Open {
			return translatePaletteKey(m)
		}
		return translateKey(s, m)
	}
	return nil, false
}

func translateKey(s State, msg tea.KeyMsg) (Action, bool) {
	keys := newKeyMap()
	switch {
	case key.Matches(msg, keys.Quit):
		return QuitRequested{}, true
	case key.Matches(msg, keys.NextTab):
		return TabCycled{}, true
	case key.Matches(msg, keys.TabLeft):
		return TabSelected{Tab: TabLeft}, true
	case key.Matches(msg, keys.TabRight):
		return TabSelected{Tab: TabRight}, true
	case key.Matches(msg, keys.Increment):
		return wrapActive(s, counter.IncrementPressed{}), true
	case key.Matches(msg, keys.Decrement):
		return wrapActive(s, counter.DecrementPressed{}), true
	case key.Matches(msg, keys.Reset):
		return wrapActive(s, counter.ResetPressed{}), true
	case key.Matches(msg, keys.Timer):
		return wrapActive(s, counter.TimerToggled{}), true
	case key.Matches(msg, keys.Fact):
		return wrapActive(s, counter.FactRequested{}), true
	case key.Matches(msg, keys.Palette):
		return PaletteToggled{}, true
	}
	return nil, false
}

func translatePaletteKey(msg tea.KeyMsg) (Action, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return PaletteToggled{}, true
	case tea.KeyEnter:
		return PaletteSubmitted{}, true
	case tea.KeyBackspace:
		return PaletteBackspaced{}, true
	case tea.KeyUp:
		return PaletteMoved{Delta: -1}, true
	case tea.KeyDown:
		return PaletteMoved{Delta: 1}, true
	case tea.KeyCtrlC:
		return QuitRequested{}, true
	case tea.KeySpace:
		return PaletteTyped{Rune: ' '}, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return PaletteTyped{Rune: msg.Runes[0]}, true
		}
	}
	return nil, false
}

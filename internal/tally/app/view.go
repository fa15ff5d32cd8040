package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/flux/internal/tally/counter"
)

// Catppuccin Mocha values, matching the rest of the charm ecosystem themes.
const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext  lipgloss.Color = "#a6adc8"
	colorOverlay  lipgloss.Color = "#6c7086"
	colorSurface  lipgloss.Color = "#313244"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorLavender lipgloss.Color = "#b4befe"
)

// Styles bundles the render styles; the accent is configurable.
type Styles struct {
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	Count       lipgloss.Style
	Label       lipgloss.Style
	Good        lipgloss.Style
	Bad         lipgloss.Style
	Status      lipgloss.Style
	Palette     lipgloss.Style
	Selected    lipgloss.Style
}

// NewStyles builds the style set around an accent color.
func NewStyles(accent lipgloss.Color) Styles {
	return Styles{
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 2),
		TabInactive: lipgloss.NewStyle().Foreground(colorOverlay).Padding(0, 2),
		Pane: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface).Padding(1, 2),
		PaneFocused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).Padding(1, 2),
		Count:    lipgloss.NewStyle().Bold(true).Foreground(colorText),
		Label:    lipgloss.NewStyle().Foreground(colorSubtext),
		Good:     lipgloss.NewStyle().Foreground(colorGreen),
		Bad:      lipgloss.NewStyle().Foreground(colorRed),
		Status:   lipgloss.NewStyle().Foreground(colorSubtext).Padding(0, 1),
		Palette:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorLavender).Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(colorLavender),
	}
}

// View renders the whole app from one state value.
func View(s State, styles Styles) string {
	var b strings.Builder

	b.WriteString(tabBar(s, styles))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		pane(TabLeft, s.Left, s.Active == TabLeft, styles),
		" ",
		pane(TabRight, s.Right, s.Active == TabRight, styles),
	))
	b.WriteString("\n")

	if s.Palette.Open {
		b.WriteString(paletteView(s.Palette, styles))
		b.WriteString("\n")
	}

	if s.Status != "" {
		b.WriteString(styles.Status.Render(s.Status))
		b.WriteString("\n")
	}

	h := help.New()
	if s.Width > 0 {
		h.Width = s.Width
	}
	b.WriteString(h.View(newKeyMap()))
	return b.String()
}

func tabBar(s State, styles Styles) string {
	render := func(t Tab, label string) string {
		if s.Active == t {
			return styles.TabActive.Render(label)
		}
		return styles.TabInactive.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render(TabLeft, "Left"),
		render(TabRight, "Right"),
	)
}

func pane(tab Tab, c counter.State, active bool, styles Styles) string {
	var lines []string
	lines = append(lines, styles.Label.Render(strings.ToUpper(tab.String())))
	lines = append(lines, styles.Count.Render(fmt.Sprintf("%6d", c.Count)))

	timer := "timer off"
	if c.TimerOn {
		timer = fmt.Sprintf("timer on · %d ticks", c.Ticks)
	}
	lines = append(lines, styles.Label.Render(timer))

	switch {
	case c.Loading:
		lines = append(lines, styles.Label.Render("fetching fact..."))
	case c.Err != "":
		lines = append(lines, styles.Bad.Render(truncate(c.Err, 40)))
	case c.Fact != "":
		lines = append(lines, styles.Good.Render(truncate(c.Fact, 40)))
	}

	body := strings.Join(lines, "\n")
	if active {
		return styles.PaneFocused.Render(body)
	}
	return styles.Pane.Render(body)
}

func paletteView(p PaletteState, styles Styles) string {
	var b strings.Builder
	b.WriteString(": " + p.Query + "▌\n")
	ranked := RankedCommands(p.Query)
	if len(ranked) == 0 {
		b.WriteString(styles.Label.Render("no matching commands"))
	}
	cursor := clamp(p.Cursor, 0, max(len(ranked)-1, 0))
	for i, cmd := range ranked {
		line := "  " + cmd.Name
		if i == cursor {
			line = styles.Selected.Render("> " + cmd.Name)
		}
		b.WriteString(line)
		if i < len(ranked)-1 {
			b.WriteString("\n")
		}
	}
	return styles.Palette.Render(b.String())
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

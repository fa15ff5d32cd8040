package app

import (
	"github.com/jask/flux/internal/palette"
	"github.com/jask/flux/internal/tally/counter"
)

// Command is one palette entry bound to the action it dispatches.
type Command struct {
	Name    string
	Aliases []string
	Action  Action
}

// paletteLimit caps how many matches the palette shows and how far its
// cursor may travel.
const paletteLimit = 6

// Commands lists everything the palette can do, in display order.
func Commands() []Command {
	return []Command{
		{Name: "increment left", Action: Left{counter.IncrementPressed{}}},
		{Name: "increment right", Action: Right{counter.IncrementPressed{}}},
		{Name: "decrement left", Action: Left{counter.DecrementPressed{}}},
		{Name: "decrement right", Action: Right{counter.DecrementPressed{}}},
		{Name: "reset left", Aliases: []string{"zero left"}, Action: Left{counter.ResetPressed{}}},
		{Name: "reset right", Aliases: []string{"zero right"}, Action: Right{counter.ResetPressed{}}},
		{Name: "toggle left timer", Action: Left{counter.TimerToggled{}}},
		{Name: "toggle right timer", Action: Right{counter.TimerToggled{}}},
		{Name: "left fact", Aliases: []string{"fact left"}, Action: Left{counter.FactRequested{}}},
		{Name: "right fact", Aliases: []string{"fact right"}, Action: Right{counter.FactRequested{}}},
		{Name: "switch tab", Aliases: []string{"next tab"}, Action: TabCycled{}},
		{Name: "quit", Aliases: []string{"exit"}, Action: QuitRequested{}},
	}
}

// RankedCommands returns the palette matches for query, best first.
func RankedCommands(query string) []Command {
	commands := Commands()
	entries := make([]palette.Command, len(commands))
	byName := make(map[string]Command, len(commands))
	for i, c := range commands {
		entries[i] = palette.Command{Name: c.Name, Aliases: c.Aliases}
		byName[c.Name] = c
	}
	matches := palette.Rank(query, entries, paletteLimit)
	out := make([]Command, 0, len(matches))
	for _, m := range matches {
		out = append(out, byName[m.Command.Name])
	}
	return out
}

func selectedCommand(p PaletteState) (Command, bool) {
	ranked := RankedCommands(p.Query)
	if len(ranked) == 0 {
		return Command{}, false
	}
	idx := clamp(p.Cursor, 0, len(ranked)-1)
	return ranked[idx], true
}

// Package palette ranks command-palette entries against a typed query.
// Matching is forgiving: prefixes and substrings win outright, everything
// else is scored by normalized levenshtein similarity so small typos still
// find the intended command.
package palette

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Command is one palette entry.
type Command struct {
	Name    string
	Aliases []string
}

// Match pairs a command with its score for a query. Scores are in (0, 1];
// 1.0 is an exact or prefix match.
type Match struct {
	Command Command
	Score   float64
}

// similarityFloor is the minimum score a pure-edit-distance match needs to
// be offered at all. Below this the command list is noise for the query.
const similarityFloor = 0.45

// Rank returns commands matching query, best first, at most limit entries.
// An empty query returns all commands in their declared order, which is
// what an just-opened palette shows.
func Rank(query string, commands []Command, limit int) []Match {
	if limit <= 0 {
		return nil
	}
	query = normalize(query)
	if query == "" {
		out := make([]Match, 0, min(limit, len(commands)))
		for _, c := range commands {
			if len(out) == limit {
				break
			}
			out = append(out, Match{Command: c, Score: 1})
		}
		return out
	}

	matches := make([]Match, 0, len(commands))
	for _, c := range commands {
		if score, ok := score(query, c); ok {
			matches = append(matches, Match{Command: c, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Best returns the single best match for query.
func Best(query string, commands []Command) (Command, bool) {
	ranked := Rank(query, commands, 1)
	if len(ranked) == 0 {
		return Command{}, false
	}
	return ranked[0].Command, true
}

func score(query string, c Command) (float64, bool) {
	best := 0.0
	for _, name := range append([]string{c.Name}, c.Aliases...) {
		name = normalize(name)
		var s float64
		switch {
		case name == query:
			s = 1
		case strings.HasPrefix(name, query):
			s = 0.95
		case strings.Contains(name, query):
			s = 0.8
		default:
			s = similarity(query, name)
			if s < similarityFloor {
				continue
			}
			// Scale edit-distance scores below the structural matches so a
			// typo never outranks a real substring hit.
			s *= 0.75
		}
		if s > best {
			best = s
		}
	}
	return best, best > 0
}

func similarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

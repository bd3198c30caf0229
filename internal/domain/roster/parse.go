// Package roster prepares balancing pools: it reads the player roster,
// turns a pasted sign-up list into players, and builds guests for names
// the roster does not know.
package roster

import (
	"regexp"
	"strings"
)

var (
	numberedLine = regexp.MustCompile(`^\d+\.\s*(.+)`)
	listSplit    = regexp.MustCompile(`[\n,]+`)
	invisible    = strings.NewReplacer("\u200B", "", "\u200C", "", "\u200D", "", "\uFEFF", "", "\u2060", "")
)

const waitingListMarker = "waiting list"

// ParseList extracts player names from a pasted sign-up list.
//
// Numbered lines ("1. Name") win when present; everything after a line
// mentioning the waiting list is ignored. Without numbered lines the text is
// split on newlines and commas.
func ParseList(text string) []string {
	var names []string
	numbered := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(strings.ToLower(trimmed), waitingListMarker) {
			break
		}
		m := numberedLine.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		numbered = true
		if name := cleanName(m[1]); name != "" {
			names = append(names, name)
		}
	}
	if numbered {
		return names
	}

	for _, part := range listSplit.Split(text, -1) {
		if name := cleanName(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func cleanName(s string) string {
	return strings.TrimSpace(invisible.Replace(s))
}

package roster

import (
	"strings"
	"unicode/utf8"

	"github.com/okian/teamgen/internal/domain/model"
)

// Loose matching only kicks in for names long enough to be meaningful.
const (
	minPartialInput     = 4 // input must be longer than 3 runes to match inside a full name
	minReverseFirstName = 3 // first name must be longer than 2 runes to match inside the input
)

// Matcher resolves free-form names against a roster.
type Matcher struct {
	players []model.Player
	full    []string
	first   []string
}

// NewMatcher indexes players for lookups. Roster order decides ties.
func NewMatcher(players []model.Player) *Matcher {
	m := &Matcher{
		players: append([]model.Player(nil), players...),
		full:    make([]string, len(players)),
		first:   make([]string, len(players)),
	}
	for i, p := range players {
		m.full[i] = strings.ToLower(p.FirstName + " " + p.LastName)
		m.first[i] = strings.ToLower(p.FirstName)
	}
	return m
}

// Find returns the best roster match for name. Tiers, in order: exact full
// name, exact first name, full name containing the input, input containing
// a first name. Comparison is case-insensitive.
func (m *Matcher) Find(name string) (model.Player, bool) {
	clean := strings.ToLower(strings.TrimSpace(name))
	if clean == "" {
		return model.Player{}, false
	}

	if i := m.index(func(i int) bool { return m.full[i] == clean }); i >= 0 {
		return m.players[i], true
	}
	if i := m.index(func(i int) bool { return m.first[i] == clean }); i >= 0 {
		return m.players[i], true
	}
	if utf8.RuneCountInString(clean) >= minPartialInput {
		if i := m.index(func(i int) bool { return strings.Contains(m.full[i], clean) }); i >= 0 {
			return m.players[i], true
		}
	}
	i := m.index(func(i int) bool {
		return utf8.RuneCountInString(m.first[i]) >= minReverseFirstName && strings.Contains(clean, m.first[i])
	})
	if i >= 0 {
		return m.players[i], true
	}
	return model.Player{}, false
}

func (m *Matcher) index(pred func(i int) bool) int {
	for i := range m.players {
		if pred(i) {
			return i
		}
	}
	return -1
}

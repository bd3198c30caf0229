package roster

import (
	"fmt"

	"github.com/okian/teamgen/internal/domain/dedupe"
	"github.com/okian/teamgen/internal/domain/model"
)

// Selection is the ordered set of players picked for one pool. It never
// holds the same id twice and never grows past its limit.
type Selection struct {
	limit   int
	players []model.Player
	taken   dedupe.Deduper
}

// NewSelection creates an empty selection capped at limit players.
func NewSelection(limit int) *Selection {
	return &Selection{
		limit:   limit,
		players: make([]model.Player, 0, limit),
		taken:   dedupe.NewInMemoryDeduper(dedupe.WithCapacity(limit)),
	}
}

// Add appends p. It reports false when p is already selected and returns
// ErrSelectionFull once the limit is reached.
func (s *Selection) Add(p model.Player) (bool, error) {
	if s.taken.Seen(p.ID) {
		return false, nil
	}
	if s.Full() {
		return false, fmt.Errorf("%w: %d of %d", ErrSelectionFull, len(s.players), s.limit)
	}
	s.taken.SeenAndRecord(p.ID)
	s.players = append(s.players, p)
	return true, nil
}

// Remove drops the player with id and reports whether it was selected.
func (s *Selection) Remove(id string) bool {
	if !s.taken.Seen(id) {
		return false
	}
	s.taken.Unrecord(id)
	for i, p := range s.players {
		if p.ID == id {
			s.players = append(s.players[:i], s.players[i+1:]...)
			break
		}
	}
	return true
}

// Toggle selects p, or deselects it when already selected. It returns whether
// p is selected afterwards.
func (s *Selection) Toggle(p model.Player) (bool, error) {
	if s.Remove(p.ID) {
		return false, nil
	}
	if _, err := s.Add(p); err != nil {
		return false, err
	}
	return true, nil
}

// ListResult is the outcome of applying a pasted list.
type ListResult struct {
	Added     []model.Player
	Unmatched []string // names with no roster match
	Overflow  []string // matched names that did not fit
}

// ApplyList parses text, matches each name and selects the matches.
func (s *Selection) ApplyList(m *Matcher, text string) ListResult {
	var res ListResult
	for _, name := range ParseList(text) {
		p, ok := m.Find(name)
		if !ok {
			res.Unmatched = append(res.Unmatched, name)
			continue
		}
		added, err := s.Add(p)
		if err != nil {
			res.Overflow = append(res.Overflow, name)
			continue
		}
		if added {
			res.Added = append(res.Added, p)
		}
	}
	return res
}

// Players returns a copy of the selected players in selection order.
func (s *Selection) Players() []model.Player {
	return append([]model.Player(nil), s.players...)
}

// Len returns the number of selected players.
func (s *Selection) Len() int { return len(s.players) }

// Limit returns the selection cap.
func (s *Selection) Limit() int { return s.limit }

// Full reports whether the cap is reached.
func (s *Selection) Full() bool { return len(s.players) >= s.limit }

// Package model contains domain models passed between layers.
package model

import "strings"

// Player is a rated entity taking part in one balancing run.
// Stored players and ad-hoc guests share this shape.
type Player struct {
	ID        string  // unique within a run
	FirstName string  // display only
	LastName  string  // display only
	Rating    float64 // skill score, any real number
	Position  string  // optional, e.g. "guest"
	Guest     bool    // created ad hoc by the caller, not loaded from a roster
}

// DisplayName joins the first and last name.
func (p Player) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Team is an ordered group of players.
type Team []Player

// Total returns the sum of member ratings.
func (t Team) Total() float64 {
	sum := 0.0
	for _, p := range t {
		sum += p.Rating
	}
	return sum
}

// Average returns the mean member rating, or 0 for an empty team.
func (t Team) Average() float64 {
	if len(t) == 0 {
		return 0
	}
	return t.Total() / float64(len(t))
}

// Assignment is a total, disjoint partition of a pool into teams.
type Assignment []Team

// Totals returns the total rating of each team, in team order.
func (a Assignment) Totals() []float64 {
	totals := make([]float64, len(a))
	for i, t := range a {
		totals[i] = t.Total()
	}
	return totals
}

// Imbalance returns the spread between the strongest and weakest team.
// An assignment with fewer than two teams has no spread.
func (a Assignment) Imbalance() float64 {
	if len(a) < 2 {
		return 0
	}
	totals := a.Totals()
	lo, hi := totals[0], totals[0]
	for _, v := range totals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

// Players flattens the assignment back into a single slice.
func (a Assignment) Players() []Player {
	n := 0
	for _, t := range a {
		n += len(t)
	}
	out := make([]Player, 0, n)
	for _, t := range a {
		out = append(out, t...)
	}
	return out
}

// Clone returns a deep copy that shares no backing arrays with a.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for i, t := range a {
		out[i] = append(Team(nil), t...)
	}
	return out
}

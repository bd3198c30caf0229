// Package types contains common types used across the application
package types

// Member is one player line of a team summary
type Member struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Guest  bool    `json:"guest,omitempty"`
}

// TeamSummary is a rendered team with its aggregate ratings
type TeamSummary struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Total   float64  `json:"total"`
	Average float64  `json:"average"`
	Members []Member `json:"members"`
}

// Report is the printable outcome of one balancing run
type Report struct {
	RunID       string        `json:"run_id"`
	Strategy    string        `json:"strategy"`
	Imbalance   float64       `json:"imbalance"`
	Generations int           `json:"generations"`
	EarlyExit   bool          `json:"early_exit"`
	Teams       []TeamSummary `json:"teams"`
	Unmatched   []string      `json:"unmatched,omitempty"`
}

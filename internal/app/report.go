package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/teamgen/internal/domain/balancer"
	"github.com/okian/teamgen/internal/domain/model"
	"github.com/okian/teamgen/internal/domain/types"
)

// Summaries describes each team of an assignment in order.
func Summaries(assignment model.Assignment) []types.TeamSummary {
	out := make([]types.TeamSummary, 0, len(assignment))
	for i, team := range assignment {
		members := make([]types.Member, 0, len(team))
		for _, p := range team {
			members = append(members, types.Member{
				ID:     p.ID,
				Name:   p.DisplayName(),
				Rating: p.Rating,
				Guest:  p.Guest,
			})
		}
		out = append(out, types.TeamSummary{
			Index:   i + 1,
			Name:    fmt.Sprintf("Team %d", i+1),
			Total:   team.Total(),
			Average: team.Average(),
			Members: members,
		})
	}
	return out
}

// NewReport packages a result for output. It keeps the result's run id so
// the report matches the run's log lines; results without one get a new id.
func NewReport(res balancer.Result, unmatched []string) types.Report {
	runID := res.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	return types.Report{
		RunID:       runID,
		Strategy:    res.Strategy,
		Imbalance:   res.Imbalance,
		Generations: res.Generations,
		EarlyExit:   res.EarlyExit,
		Teams:       Summaries(res.Assignment),
		Unmatched:   unmatched,
	}
}

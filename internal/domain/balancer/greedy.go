package balancer

import (
	"sort"

	"github.com/okian/teamgen/internal/domain/model"
)

// Greedy balances by sorting players by rating and handing each one to the
// weakest team that still has room.
//
// Players whose ratings are within the bucket threshold of each other are
// shuffled among themselves first, so the sort order does not always favour
// the same team among equally rated players. Apart from that shuffle the
// result is deterministic.
type Greedy struct {
	cfg settings
}

// NewGreedy creates the sort-and-fill strategy.
func NewGreedy(opts ...Option) *Greedy {
	return &Greedy{cfg: newSettings(opts...)}
}

// Name implements Strategy.
func (g *Greedy) Name() string { return string(KindGreedy) }

// PoolSize implements Strategy.
func (g *Greedy) PoolSize() int { return g.cfg.poolSize() }

// Balance implements Strategy.
func (g *Greedy) Balance(players []model.Player) (model.Assignment, error) {
	a, _, err := g.BalanceWithStats(players)
	return a, err
}

// BalanceWithStats implements Reporter. Greedy never iterates, so the stats
// are always zero.
func (g *Greedy) BalanceWithStats(players []model.Player) (model.Assignment, Stats, error) {
	if err := checkPool(players, g.cfg.poolSize()); err != nil {
		return nil, Stats{}, err
	}

	order := g.order(players, g.cfg.source())

	teams := make(model.Assignment, g.cfg.teams)
	for t := range teams {
		teams[t] = make(model.Team, 0, g.cfg.perTeam)
	}
	totals := make([]float64, g.cfg.teams)
	for _, p := range order {
		target := -1
		for t := range teams {
			if len(teams[t]) == g.cfg.perTeam {
				continue
			}
			if target < 0 || totals[t] < totals[target] {
				target = t
			}
		}
		teams[target] = append(teams[target], p)
		totals[target] += p.Rating
	}
	return teams, Stats{}, nil
}

// order sorts players by descending rating and shuffles within buckets of
// near-equal ratings.
func (g *Greedy) order(players []model.Player, rng Random) []model.Player {
	sorted := append([]model.Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[start].Rating-sorted[end].Rating < g.cfg.bucketThreshold {
			end++
		}
		bucket := sorted[start:end]
		rng.Shuffle(len(bucket), func(i, j int) {
			bucket[i], bucket[j] = bucket[j], bucket[i]
		})
		start = end
	}
	return sorted
}

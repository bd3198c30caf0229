package balancer

import (
	"sort"

	"github.com/okian/teamgen/internal/domain/model"
)

// candidate is one partition under evaluation. A candidate is never mutated
// after it has been scored; mutation always works on a clone.
type candidate struct {
	teams     model.Assignment
	imbalance float64
}

func newCandidate(teams model.Assignment) candidate {
	return candidate{teams: teams, imbalance: teams.Imbalance()}
}

// Genetic searches for a balanced partition with a small evolutionary loop:
// random initial partitions, elitism, and single-swap mutation.
//
// The search is best effort. It stops after the generation bound or once the
// best spread drops below the epsilon, and returns the best partition seen.
// Candidates with equal spread keep their relative order when ranked; which
// one wins a tie is otherwise unspecified.
type Genetic struct {
	cfg settings
}

// NewGenetic creates the search strategy.
func NewGenetic(opts ...Option) *Genetic {
	return &Genetic{cfg: newSettings(opts...)}
}

// Name implements Strategy.
func (g *Genetic) Name() string { return string(KindGenetic) }

// PoolSize implements Strategy.
func (g *Genetic) PoolSize() int { return g.cfg.poolSize() }

// Balance implements Strategy.
func (g *Genetic) Balance(players []model.Player) (model.Assignment, error) {
	a, _, err := g.BalanceWithStats(players)
	return a, err
}

// BalanceWithStats implements Reporter.
func (g *Genetic) BalanceWithStats(players []model.Player) (model.Assignment, Stats, error) {
	if err := checkPool(players, g.cfg.poolSize()); err != nil {
		return nil, Stats{}, err
	}

	rng := g.cfg.source()
	popSize := g.cfg.populationSize
	elite := int(float64(popSize) * g.cfg.elitism)
	if elite < 1 {
		elite = 1
	}

	population := make([]candidate, popSize)
	for i := range population {
		population[i] = g.randomCandidate(players, rng)
	}
	rank(population)
	best := population[0]

	var stats Stats
	for gen := 0; gen < g.cfg.generations; gen++ {
		rank(population)
		if population[0].imbalance < best.imbalance {
			best = population[0]
		}
		stats.Generations = gen + 1
		if g.cfg.hook != nil {
			g.cfg.hook(gen, population[0].imbalance)
		}
		if best.imbalance < g.cfg.epsilon {
			stats.EarlyExit = true
			break
		}

		next := make([]candidate, 0, popSize)
		next = append(next, population[:elite]...)
		for len(next) < popSize {
			parent := next[rng.Intn(elite)]
			next = append(next, g.mutate(parent, rng))
		}
		population = next
	}

	rank(population)
	if population[0].imbalance < best.imbalance {
		best = population[0]
	}
	return best.teams.Clone(), stats, nil
}

// randomCandidate shuffles the pool and slices it into consecutive teams.
func (g *Genetic) randomCandidate(players []model.Player, rng Random) candidate {
	shuffled := append([]model.Player(nil), players...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	teams := make(model.Assignment, g.cfg.teams)
	for t := range teams {
		lo := t * g.cfg.perTeam
		teams[t] = append(model.Team(nil), shuffled[lo:lo+g.cfg.perTeam]...)
	}
	return newCandidate(teams)
}

// mutate returns a copy of parent with one player swapped between two
// distinct teams. With a single team the copy is returned unchanged.
func (g *Genetic) mutate(parent candidate, rng Random) candidate {
	child := parent.teams.Clone()
	if g.cfg.teams < 2 {
		return newCandidate(child)
	}
	a := rng.Intn(g.cfg.teams)
	b := rng.Intn(g.cfg.teams - 1)
	if b >= a {
		b++
	}
	i := rng.Intn(g.cfg.perTeam)
	j := rng.Intn(g.cfg.perTeam)
	child[a][i], child[b][j] = child[b][j], child[a][i]
	return newCandidate(child)
}

// rank orders candidates by ascending imbalance.
func rank(population []candidate) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].imbalance < population[j].imbalance
	})
}

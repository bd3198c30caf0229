package balancer

import (
	"math/rand"
	"time"
)

// Tunable defaults. They mirror the 3×5 futsal pools the league plays.
const (
	// DefaultTeams is the number of output teams.
	DefaultTeams = 3
	// DefaultPlayersPerTeam is the size of each team.
	DefaultPlayersPerTeam = 5
	// DefaultPopulationSize is the number of candidates kept per generation.
	DefaultPopulationSize = 50
	// DefaultGenerations bounds the number of search generations.
	DefaultGenerations = 100
	// DefaultImbalanceEpsilon is the spread below which the search stops early.
	// It is a "balanced enough" threshold, not an exact tie.
	DefaultImbalanceEpsilon = 0.05
	// DefaultElitismFraction is the share of each generation copied verbatim.
	DefaultElitismFraction = 0.2
	// DefaultBucketThreshold groups players whose ratings differ by less than
	// this value before greedy assignment.
	DefaultBucketThreshold = 0.2
)

// Random is the randomness a strategy draws from. *math/rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// GenerationHook observes the lowest imbalance in each ranked generation.
// Elites survive unchanged, so the value never increases between generations.
type GenerationHook func(generation int, top float64)

// Option applies a configuration option to a strategy.
type Option func(*settings)

type settings struct {
	teams           int
	perTeam         int
	populationSize  int
	generations     int
	epsilon         float64
	elitism         float64
	bucketThreshold float64

	seed   int64
	seeded bool
	random Random
	hook   GenerationHook
}

func newSettings(opts ...Option) settings {
	s := settings{
		teams:           DefaultTeams,
		perTeam:         DefaultPlayersPerTeam,
		populationSize:  DefaultPopulationSize,
		generations:     DefaultGenerations,
		epsilon:         DefaultImbalanceEpsilon,
		elitism:         DefaultElitismFraction,
		bucketThreshold: DefaultBucketThreshold,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// poolSize is the exact number of players a run accepts.
func (s settings) poolSize() int { return s.teams * s.perTeam }

// source returns the random source for one run. An injected source is used
// as is; otherwise every run gets its own generator so runs never share state.
func (s settings) source() Random {
	if s.random != nil {
		return s.random
	}
	seed := time.Now().UnixNano()
	if s.seeded {
		seed = s.seed
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // balancing does not need crypto randomness
}

// WithTeams sets the number of teams and the players per team.
func WithTeams(teams, perTeam int) Option {
	return func(s *settings) {
		if teams > 0 && perTeam > 0 {
			s.teams = teams
			s.perTeam = perTeam
		}
	}
}

// WithPopulationSize sets the number of candidates per generation.
func WithPopulationSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.populationSize = n
		}
	}
}

// WithGenerations sets the generation bound. Zero keeps only the initial population.
func WithGenerations(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.generations = n
		}
	}
}

// WithImbalanceEpsilon sets the early-exit threshold.
func WithImbalanceEpsilon(eps float64) Option {
	return func(s *settings) {
		if eps >= 0 {
			s.epsilon = eps
		}
	}
}

// WithElitismFraction sets the share of each generation retained unchanged.
func WithElitismFraction(f float64) Option {
	return func(s *settings) {
		if f > 0 && f <= 1 {
			s.elitism = f
		}
	}
}

// WithBucketThreshold sets the rating distance under which greedy treats
// players as interchangeable.
func WithBucketThreshold(t float64) Option {
	return func(s *settings) {
		if t >= 0 {
			s.bucketThreshold = t
		}
	}
}

// WithSeed makes every run start from the same seeded generator.
func WithSeed(seed int64) Option {
	return func(s *settings) {
		s.seed = seed
		s.seeded = true
	}
}

// WithRandom injects a random source. The source is shared by every run of
// the strategy, so it must not be used from concurrent runs.
func WithRandom(r Random) Option {
	return func(s *settings) {
		if r != nil {
			s.random = r
		}
	}
}

// WithGenerationHook registers an observer for search progress.
func WithGenerationHook(fn GenerationHook) Option {
	return func(s *settings) {
		s.hook = fn
	}
}

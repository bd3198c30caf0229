// Package balancer partitions a pool of rated players into equal-size teams
// with as little spread between team totals as a bounded search can find.
//
// Two strategies share one contract: a population-based local search
// (Genetic) and a sort-and-fill fallback (Greedy). Both return a fresh
// Assignment on every call and fail only on a pool of the wrong size.
package balancer

import (
	"fmt"
	"strings"

	"github.com/okian/teamgen/internal/domain/model"
)

// Kind names a balancing strategy.
type Kind string

// Supported strategies.
const (
	KindGenetic Kind = "genetic"
	KindGreedy  Kind = "greedy"
)

// Strategy balances a pool of players into teams.
type Strategy interface {
	// Name returns the strategy kind.
	Name() string
	// PoolSize returns the exact number of players Balance accepts.
	PoolSize() int
	// Balance partitions players. It returns a *PoolSizeError when
	// len(players) differs from PoolSize.
	Balance(players []model.Player) (model.Assignment, error)
}

// Stats describes how a run reached its assignment.
type Stats struct {
	Generations int  // ranked generations, 0 for non-search strategies
	EarlyExit   bool // stopped below the imbalance epsilon
}

// Reporter is implemented by strategies that can explain a run.
type Reporter interface {
	BalanceWithStats(players []model.Player) (model.Assignment, Stats, error)
}

// Result is a finished balancing run. RunID is left empty by Run and set by
// callers that track runs.
type Result struct {
	RunID       string
	Assignment  model.Assignment
	Strategy    string
	Imbalance   float64
	Generations int
	EarlyExit   bool
}

// New builds the strategy of the given kind.
func New(kind Kind, opts ...Option) (Strategy, error) {
	switch kind {
	case KindGenetic:
		return NewGenetic(opts...), nil
	case KindGreedy:
		return NewGreedy(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, kind)
	}
}

// ParseKind maps a user-facing strategy name onto a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "genetic", "search":
		return KindGenetic, nil
	case "greedy", "bucket":
		return KindGreedy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Run balances players with s and collects run details.
func Run(s Strategy, players []model.Player) (Result, error) {
	var (
		assignment model.Assignment
		stats      Stats
		err        error
	)
	if r, ok := s.(Reporter); ok {
		assignment, stats, err = r.BalanceWithStats(players)
	} else {
		assignment, err = s.Balance(players)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{
		Assignment:  assignment,
		Strategy:    s.Name(),
		Imbalance:   assignment.Imbalance(),
		Generations: stats.Generations,
		EarlyExit:   stats.EarlyExit,
	}, nil
}

func checkPool(players []model.Player, required int) error {
	if len(players) != required {
		return &PoolSizeError{Required: required, Actual: len(players)}
	}
	return nil
}

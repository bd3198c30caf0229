// Package config defines the team generator configuration and its loader.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and the environment on top.
// - Every field carries a flat snake_case koanf tag that doubles as its
//   TEAMGEN_ environment variable suffix.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"

	"github.com/okian/teamgen/internal/domain/balancer"
	"github.com/okian/teamgen/internal/domain/roster"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log records.
	LogFormat string `koanf:"log_format"`

	// Strategy picks the balancer: genetic (search) or greedy (bucket).
	Strategy string `koanf:"strategy"`

	// TeamsCount and PlayersPerTeam fix the output shape.
	TeamsCount     int `koanf:"teams_count"`
	PlayersPerTeam int `koanf:"players_per_team"`

	// PopulationSize and Generations bound the search.
	PopulationSize int `koanf:"population_size"`
	Generations    int `koanf:"generations"`

	// ImbalanceEpsilon stops the search once the spread is this small.
	ImbalanceEpsilon float64 `koanf:"imbalance_epsilon"`

	// ElitismFraction is the share of each generation kept verbatim.
	ElitismFraction float64 `koanf:"elitism_fraction"`

	// BucketThreshold groups near-equal ratings in the greedy strategy.
	BucketThreshold float64 `koanf:"bucket_threshold"`

	// Seed fixes the random source when set; unset draws a fresh seed per run.
	// Any value, 0 included, is a valid seed.
	Seed *int64 `koanf:"seed"`

	// GuestRating is the rating given to guests added without one.
	GuestRating float64 `koanf:"guest_rating"`

	// Workers bounds concurrent pools in batch mode.
	Workers int `koanf:"workers"`

	// MetricsFile, when set, receives a Prometheus textfile on exit.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Strategy:         string(balancer.KindGenetic),
		TeamsCount:       balancer.DefaultTeams,
		PlayersPerTeam:   balancer.DefaultPlayersPerTeam,
		PopulationSize:   balancer.DefaultPopulationSize,
		Generations:      balancer.DefaultGenerations,
		ImbalanceEpsilon: balancer.DefaultImbalanceEpsilon,
		ElitismFraction:  balancer.DefaultElitismFraction,
		BucketThreshold:  balancer.DefaultBucketThreshold,
		GuestRating:      roster.DefaultGuestRating,
		Workers:          runtime.NumCPU(),
	}
}

// PoolSize is the number of players one balancing run needs.
func (c *Config) PoolSize() int { return c.TeamsCount * c.PlayersPerTeam }

// Validate checks ranges the balancer cannot repair on its own.
func (c *Config) Validate() error {
	if _, err := balancer.ParseKind(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.TeamsCount < 1:
		return fmt.Errorf("%w: teams_count must be at least 1", ErrInvalidConfig)
	case c.PlayersPerTeam < 1:
		return fmt.Errorf("%w: players_per_team must be at least 1", ErrInvalidConfig)
	case c.PopulationSize < 1:
		return fmt.Errorf("%w: population_size must be at least 1", ErrInvalidConfig)
	case c.Generations < 0:
		return fmt.Errorf("%w: generations must not be negative", ErrInvalidConfig)
	case c.ImbalanceEpsilon < 0:
		return fmt.Errorf("%w: imbalance_epsilon must not be negative", ErrInvalidConfig)
	case c.ElitismFraction <= 0 || c.ElitismFraction > 1:
		return fmt.Errorf("%w: elitism_fraction must be in (0, 1]", ErrInvalidConfig)
	case c.BucketThreshold < 0:
		return fmt.Errorf("%w: bucket_threshold must not be negative", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// BalancerOptions maps the configuration onto balancer options.
func (c *Config) BalancerOptions() []balancer.Option {
	opts := []balancer.Option{
		balancer.WithTeams(c.TeamsCount, c.PlayersPerTeam),
		balancer.WithPopulationSize(c.PopulationSize),
		balancer.WithGenerations(c.Generations),
		balancer.WithImbalanceEpsilon(c.ImbalanceEpsilon),
		balancer.WithElitismFraction(c.ElitismFraction),
		balancer.WithBucketThreshold(c.BucketThreshold),
	}
	if c.Seed != nil {
		opts = append(opts, balancer.WithSeed(*c.Seed))
	}
	return opts
}

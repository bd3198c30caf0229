package config_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/teamgen/internal/config"
	"github.com/okian/teamgen/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TEAMGEN_STRATEGY", "greedy")
			_ = os.Setenv("TEAMGEN_TEAMS_COUNT", "2")
			_ = os.Setenv("TEAMGEN_PLAYERS_PER_TEAM", "4")
			_ = os.Setenv("TEAMGEN_IMBALANCE_EPSILON", "0.5")
			_ = os.Setenv("TEAMGEN_SEED", "42")
			_ = os.Setenv("TEAMGEN_WORKERS", "3")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Strategy, convey.ShouldEqual, "greedy")
				convey.So(cfg.TeamsCount, convey.ShouldEqual, 2)
				convey.So(cfg.PlayersPerTeam, convey.ShouldEqual, 4)
				convey.So(cfg.ImbalanceEpsilon, convey.ShouldEqual, 0.5)
				convey.So(cfg.Seed, convey.ShouldNotBeNil)
				convey.So(*cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.Workers, convey.ShouldEqual, 3)
				convey.So(cfg.PopulationSize, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When the seed is set to zero", func() {
			_ = os.Setenv("TEAMGEN_SEED", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then zero is kept as a real seed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Seed, convey.ShouldNotBeNil)
				convey.So(*cfg.Seed, convey.ShouldEqual, 0)
				convey.So(cfg.BalancerOptions(), convey.ShouldHaveLength, 7)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
log_level: debug
log_format: json
population_size: 80
generations: 250
elitism_fraction: 0.1
guest_rating: 5.5
metrics_file: /tmp/teamgen.prom
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TEAMGEN_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.PopulationSize, convey.ShouldEqual, 80)
				convey.So(cfg.Generations, convey.ShouldEqual, 250)
				convey.So(cfg.ElitismFraction, convey.ShouldEqual, 0.1)
				convey.So(cfg.GuestRating, convey.ShouldEqual, 5.5)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/teamgen.prom")
			})

			convey.Convey("Then unset keys keep their defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamsCount, convey.ShouldEqual, 3)
				convey.So(cfg.Strategy, convey.ShouldEqual, "genetic")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("generations: 250\nstrategy: greedy\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TEAMGEN_CONFIG", tmpFile)
			_ = os.Setenv("TEAMGEN_GENERATIONS", "10")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should take precedence", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Generations, convey.ShouldEqual, 10)
				convey.So(cfg.Strategy, convey.ShouldEqual, "greedy")
			})
		})

		convey.Convey("When a .env file is present", func() {
			dir := createTempDir()
			defer func() { _ = os.RemoveAll(dir) }()
			envFile := filepath.Join(dir, "teamgen.env")
			writeFile(envFile, "TEAMGEN_GENERATIONS=33\nTEAMGEN_LOG_LEVEL=warn\n")
			_ = os.Setenv("TEAMGEN_ENV_FILE", envFile)
			_ = os.Setenv("TEAMGEN_LOG_LEVEL", "error")

			cfg, err := config.Load(ctx)

			convey.Convey("Then its values are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Generations, convey.ShouldEqual, 33)
			})

			convey.Convey("Then it does not override the process environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "error")
			})
		})

		convey.Convey("When the named .env file does not exist", func() {
			_ = os.Setenv("TEAMGEN_ENV_FILE", filepath.Join(os.TempDir(), "teamgen-missing.env"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML", func() {
			tmpFile := createTempConfigFile("generations: [unclosed\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TEAMGEN_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TEAMGEN_CONFIG", "/non/existent/teamgen.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config that fails validation", func() {
			_ = os.Setenv("TEAMGEN_ELITISM_FRACTION", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "elitism_fraction")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"TEAMGEN_CONFIG",
		"TEAMGEN_ENV_FILE",
		"TEAMGEN_LOG_LEVEL",
		"TEAMGEN_LOG_FORMAT",
		"TEAMGEN_STRATEGY",
		"TEAMGEN_TEAMS_COUNT",
		"TEAMGEN_PLAYERS_PER_TEAM",
		"TEAMGEN_POPULATION_SIZE",
		"TEAMGEN_GENERATIONS",
		"TEAMGEN_IMBALANCE_EPSILON",
		"TEAMGEN_ELITISM_FRACTION",
		"TEAMGEN_BUCKET_THRESHOLD",
		"TEAMGEN_SEED",
		"TEAMGEN_GUEST_RATING",
		"TEAMGEN_WORKERS",
		"TEAMGEN_METRICS_FILE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "teamgen-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}

func createTempDir() string {
	dir, err := os.MkdirTemp("", "teamgen-env-*")
	if err != nil {
		panic(err)
	}
	return dir
}

func writeFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
}

func samplePlayers(n int) []model.Player {
	players := make([]model.Player, n)
	for i := range players {
		players[i] = model.Player{
			ID:        fmt.Sprintf("p%d", i+1),
			FirstName: fmt.Sprintf("Player%d", i+1),
			Rating:    float64(i%5) + 5,
		}
	}
	return players
}

package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/okian/teamgen/internal/adapters/render"
	service "github.com/okian/teamgen/internal/app"
	"github.com/okian/teamgen/internal/domain/model"
	"github.com/okian/teamgen/internal/domain/roster"
	"github.com/okian/teamgen/pkg/logger"
)

const defaultSyntheticPlayers = 30

type batchCmd struct {
	Roster   string `long:"roster"   short:"r" description:"YAML roster file, a synthetic roster is used when empty"`
	Players  int    `long:"players"  default:"30" description:"synthetic roster size"`
	Pools    int    `long:"pools"    short:"n" default:"4" description:"number of pools to draw"`
	Strategy string `long:"strategy" description:"genetic or greedy, overrides the config"`
	Seed     *int64 `long:"seed"     description:"random seed, overrides the config (0 is a valid seed)"`

	env *env `no-flag:"true"`
}

func (b *batchCmd) setEnv(e *env) { b.env = e }

// Execute runs the command.
func (b *batchCmd) Execute([]string) error {
	e := b.env
	if b.Pools < 1 {
		return fmt.Errorf("--pools must be at least 1, got %d", b.Pools)
	}
	seed := time.Now().UnixNano()
	if s := e.seed(b.Seed); s != nil {
		seed = *s
	}
	e.log.Debug(e.ctx, "batch seed", logger.Int64("seed", seed))
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // pool drawing does not need crypto randomness

	players, err := b.roster(rng)
	if err != nil {
		return err
	}
	pools, err := roster.DrawPools(players, b.Pools, e.cfg.PoolSize(), rng)
	if err != nil {
		return err
	}

	svc, err := e.service(b.Strategy, &seed)
	if err != nil {
		return err
	}
	items, err := svc.BalanceBatch(e.ctx, pools)
	if err != nil {
		return err
	}

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
			e.log.Warn(e.ctx, "pool failed", logger.Int("pool", item.Index+1), logger.Error(item.Err))
			continue
		}
		if e.format == render.FormatTable {
			fmt.Fprintf(e.stdout, "== pool %d ==\n", item.Index+1)
		}
		if err := render.Write(e.stdout, e.format, service.NewReport(item.Result, nil)); err != nil {
			return err
		}
	}
	e.log.Info(e.ctx, "batch finished",
		logger.Int("pools", len(items)),
		logger.Int("failed", failed))
	if failed == len(items) && failed > 0 {
		return fmt.Errorf("all %d pools failed", failed)
	}
	return nil
}

func (b *batchCmd) roster(rng *rand.Rand) ([]model.Player, error) {
	if b.Roster != "" {
		return roster.LoadFile(b.Roster)
	}
	n := b.Players
	if n <= 0 {
		n = defaultSyntheticPlayers
	}
	return roster.Generate(n, rng), nil
}

package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/okian/teamgen/internal/domain/roster"
	"github.com/okian/teamgen/pkg/logger"
)

type generateCmd struct {
	Players int    `long:"players" short:"p" default:"20" description:"number of players"`
	Out     string `long:"out"     short:"f" description:"output file, stdout when empty"`
	Seed    *int64 `long:"seed"    description:"random seed (0 is a valid seed)"`

	env *env `no-flag:"true"`
}

func (g *generateCmd) setEnv(e *env) { g.env = e }

// Execute runs the command.
func (g *generateCmd) Execute([]string) error {
	if g.Players < 1 {
		return fmt.Errorf("--players must be at least 1, got %d", g.Players)
	}
	seed := time.Now().UnixNano()
	if g.Seed != nil {
		seed = *g.Seed
	}
	players := roster.Generate(g.Players, rand.New(rand.NewSource(seed))) //nolint:gosec // synthetic data

	if g.Out == "" {
		return roster.Save(g.env.stdout, players)
	}
	if err := roster.SaveFile(g.Out, players); err != nil {
		return err
	}
	g.env.log.Info(g.env.ctx, "roster written",
		logger.String("path", g.Out),
		logger.Int("players", len(players)))
	return nil
}

type versionCmd struct {
	env *env `no-flag:"true"`
}

func (v *versionCmd) setEnv(e *env) { v.env = e }

// Execute runs the command.
func (v *versionCmd) Execute([]string) error {
	_, err := v.env.stdout.Write([]byte("teamgen " + getVersion() + "\n"))
	return err
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/teamgen/internal/adapters/render"
	service "github.com/okian/teamgen/internal/app"
	"github.com/okian/teamgen/internal/domain/model"
	"github.com/okian/teamgen/internal/domain/roster"
	"github.com/okian/teamgen/pkg/logger"
	"github.com/okian/teamgen/pkg/metrics"
)

type balanceCmd struct {
	Roster     string   `long:"roster"      short:"r" required:"true" description:"YAML roster file"`
	Select     []string `long:"select"      short:"s" description:"roster id to select (repeatable)"`
	List       string   `long:"list"        short:"l" description:"file with a pasted player list, - for stdin"`
	Guests     []string `long:"guest"       short:"g" description:"guest as NAME or NAME=RATING (repeatable)"`
	AutoGuests bool     `long:"auto-guests" description:"add unmatched list names as guests"`
	Strategy   string   `long:"strategy"    description:"genetic or greedy, overrides the config"`
	Seed       *int64   `long:"seed"        description:"random seed, overrides the config (0 is a valid seed)"`

	env *env `no-flag:"true"`
}

func (b *balanceCmd) setEnv(e *env) { b.env = e }

// Execute runs the command.
func (b *balanceCmd) Execute([]string) error {
	e := b.env
	players, err := roster.LoadFile(b.Roster)
	if err != nil {
		return err
	}

	sel := roster.NewSelection(e.cfg.PoolSize())
	if err := b.selectIDs(sel, players); err != nil {
		return err
	}

	var unmatched []string
	if b.List != "" {
		text, err := b.readList()
		if err != nil {
			return err
		}
		res := sel.ApplyList(roster.NewMatcher(players), text)
		unmatched = res.Unmatched
		if len(res.Overflow) > 0 {
			e.log.Warn(e.ctx, "selection full, names skipped", logger.Any("names", res.Overflow))
		}
		e.log.Debug(e.ctx, "list applied",
			logger.Int("added", len(res.Added)),
			logger.Int("unmatched", len(res.Unmatched)))
	}
	metrics.RecordUnmatchedNames(len(unmatched))

	guests, err := b.guests(unmatched)
	if err != nil {
		return err
	}
	if b.AutoGuests {
		unmatched = nil
	}
	for _, g := range guests {
		if _, err := sel.Add(g); err != nil {
			return fmt.Errorf("add guest %s: %w", g.FirstName, err)
		}
	}
	metrics.RecordGuests(len(guests))

	svc, err := e.service(b.Strategy, b.Seed)
	if err != nil {
		return err
	}
	res, err := svc.Balance(e.ctx, sel.Players())
	if err != nil {
		if len(unmatched) > 0 {
			e.log.Warn(e.ctx, "unmatched names", logger.Any("names", unmatched))
		}
		return err
	}
	return render.Write(e.stdout, e.format, service.NewReport(res, unmatched))
}

func (b *balanceCmd) selectIDs(sel *roster.Selection, players []model.Player) error {
	byID := make(map[string]model.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	for _, id := range b.Select {
		p, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: no player with id %s", roster.ErrInvalidRoster, id)
		}
		if _, err := sel.Add(p); err != nil {
			return err
		}
	}
	return nil
}

func (b *balanceCmd) readList() (string, error) {
	var (
		data []byte
		err  error
	)
	if b.List == "-" {
		data, err = io.ReadAll(b.env.stdin)
	} else {
		data, err = os.ReadFile(b.List)
	}
	if err != nil {
		return "", fmt.Errorf("read list: %w", err)
	}
	return string(data), nil
}

func (b *balanceCmd) guests(unmatched []string) ([]model.Player, error) {
	var out []model.Player
	for _, raw := range b.Guests {
		g, err := roster.ParseGuest(raw, b.env.cfg.GuestRating)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if b.AutoGuests {
		for _, name := range unmatched {
			out = append(out, roster.NewGuest(name, b.env.cfg.GuestRating))
		}
	}
	return out, nil
}

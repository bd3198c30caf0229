// Package service runs balancing jobs for the CLI: single pools, concurrent
// batches, and the summaries printed for them.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/teamgen/internal/domain/balancer"
	"github.com/okian/teamgen/internal/domain/model"
	"github.com/okian/teamgen/pkg/logger"
	"github.com/okian/teamgen/pkg/metrics"
)

// Error kinds used as the metrics label on failed runs.
const (
	errKindPoolSize = "pool_size"
	errKindStrategy = "unknown_strategy"
	errKindCanceled = "canceled"
	errKindOther    = "other"
)

// Service builds strategies from its configuration and runs them.
type Service struct {
	kind        balancer.Kind
	opts        []balancer.Option
	seed        int64
	seeded      bool
	workerCount int

	runs     atomic.Int64
	failures atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets how many pools a batch balances at once.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrategy selects the balancing strategy.
func WithStrategy(kind balancer.Kind) Option {
	return func(s *Service) {
		if kind != "" {
			s.kind = kind
		}
	}
}

// WithBalancerOptions appends options passed to every strategy built.
// A source injected with balancer.WithRandom is shared by all runs, so it
// must not be combined with BalanceBatch.
func WithBalancerOptions(opts ...balancer.Option) Option {
	return func(s *Service) {
		s.opts = append(s.opts, opts...)
	}
}

// WithSeed fixes the random seed. Batch item i uses seed+i so pools never
// draw from the same sequence.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
		s.seeded = true
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		kind:        balancer.KindGenetic,
		workerCount: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// PoolSize returns the number of players one run needs.
func (s *Service) PoolSize() int {
	strategy, err := balancer.New(s.kind, s.opts...)
	if err != nil {
		return 0
	}
	return strategy.PoolSize()
}

// Balance runs the configured strategy over one pool. A context that is
// already done aborts before the run; a run in progress is not interrupted.
func (s *Service) Balance(ctx context.Context, players []model.Player) (balancer.Result, error) {
	return s.run(ctx, players, s.strategyOptions(0))
}

// BatchItem is the outcome for one pool of a batch.
type BatchItem struct {
	Index  int
	Result balancer.Result
	Err    error
}

// BalanceBatch balances pools concurrently, bounded by the worker count.
// Per-pool failures are reported on their item; only context cancellation
// fails the batch.
func (s *Service) BalanceBatch(ctx context.Context, pools [][]model.Player) ([]BatchItem, error) {
	items := make([]BatchItem, len(pools))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)

	s.logger.Info(ctx, "balancing batch",
		logger.Int("pools", len(pools)),
		logger.Int("workers", s.workerCount))

	for i, pool := range pools {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i] = BatchItem{Index: i, Err: err}
				return err
			}
			metrics.AddBatchInflight(1)
			defer metrics.AddBatchInflight(-1)

			res, err := s.run(gctx, pool, s.strategyOptions(i))
			items[i] = BatchItem{Index: i, Result: res, Err: err}
			metrics.RecordBatchPool()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, fmt.Errorf("balance batch: %w", err)
	}
	return items, nil
}

// Stats returns counters for the runs handled so far.
func (s *Service) Stats() map[string]any {
	return map[string]any{
		"strategy": string(s.kind),
		"workers":  s.workerCount,
		"runs":     s.runs.Load(),
		"failures": s.failures.Load(),
	}
}

func (s *Service) strategyOptions(index int) []balancer.Option {
	opts := append([]balancer.Option(nil), s.opts...)
	if s.seeded {
		opts = append(opts, balancer.WithSeed(s.seed+int64(index)))
	}
	return opts
}

func (s *Service) run(ctx context.Context, players []model.Player, opts []balancer.Option) (balancer.Result, error) {
	runID := uuid.NewString()
	strategyName := string(s.kind)
	s.runs.Add(1)

	if err := ctx.Err(); err != nil {
		s.fail(ctx, runID, strategyName, errKindCanceled, err)
		return balancer.Result{}, err
	}

	strategy, err := balancer.New(s.kind, opts...)
	if err != nil {
		s.fail(ctx, runID, strategyName, errKindStrategy, err)
		return balancer.Result{}, err
	}
	metrics.UpdatePoolSize(len(players))

	start := time.Now()
	res, err := balancer.Run(strategy, players)
	elapsed := time.Since(start)
	if err != nil {
		s.fail(ctx, runID, strategyName, errorKind(err), err)
		return balancer.Result{}, err
	}

	res.RunID = runID
	metrics.RecordRun(res.Strategy, res.Imbalance, res.Generations,
		float64(elapsed.Microseconds())/1000, res.EarlyExit)
	s.logger.Debug(ctx, "pool balanced",
		logger.String("run_id", runID),
		logger.String("strategy", res.Strategy),
		logger.Int("players", len(players)),
		logger.Float64("imbalance", res.Imbalance),
		logger.Int("generations", res.Generations),
		logger.Bool("early_exit", res.EarlyExit),
		logger.Duration("elapsed", elapsed))
	return res, nil
}

func (s *Service) fail(ctx context.Context, runID, strategy, kind string, err error) {
	s.failures.Add(1)
	metrics.RecordRunError(strategy, kind)
	s.logger.Warn(ctx, "balancing failed",
		logger.String("run_id", runID),
		logger.String("strategy", strategy),
		logger.String("kind", kind),
		logger.Error(err))
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, balancer.ErrInvalidPoolSize):
		return errKindPoolSize
	case errors.Is(err, balancer.ErrUnknownStrategy):
		return errKindStrategy
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errKindCanceled
	default:
		return errKindOther
	}
}

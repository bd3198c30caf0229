// Command teamgen splits a pool of rated futsal players into balanced teams.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/jessevdk/go-flags"

	service "github.com/okian/teamgen/internal/app"
	"github.com/okian/teamgen/internal/config"
	"github.com/okian/teamgen/internal/domain/balancer"
	"github.com/okian/teamgen/pkg/logger"
	"github.com/okian/teamgen/pkg/metrics"
)

type options struct {
	Balance  balanceCmd  `command:"balance"  description:"balance selected roster players into teams"`
	Batch    batchCmd    `command:"batch"    description:"balance random pools drawn from a roster"`
	Generate generateCmd `command:"generate" description:"write a synthetic roster"`
	Version  versionCmd  `command:"version"  description:"print the version"`

	Debug       bool   `long:"debug"        description:"turn on debug logging"`
	Output      string `long:"output"       short:"o" default:"table" choice:"table" choice:"json" description:"report format"`
	MetricsFile string `long:"metrics-file" description:"write Prometheus metrics to this file on exit"`
}

var version = "unknown"

func getVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	var ferr *flags.Error
	if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
		fmt.Fprintln(os.Stdout, err)
		return
	}
	fmt.Fprintln(os.Stderr, "teamgen:", err)
	stop()
	os.Exit(1)
}

// env is what every command needs once flags and config are resolved.
type env struct {
	ctx    context.Context
	cfg    *config.Config
	log    logger.Logger
	stdin  io.Reader
	stdout io.Writer
	format string
}

// seed returns the command-line seed, falling back to the configured one.
// nil means unseeded.
func (e *env) seed(flag *int64) *int64 {
	if flag != nil {
		return flag
	}
	return e.cfg.Seed
}

// service builds a balancing service, applying command-line overrides of
// the configured strategy and seed.
func (e *env) service(strategy string, seed *int64) (*service.Service, error) {
	name := e.cfg.Strategy
	if strategy != "" {
		name = strategy
	}
	kind, err := balancer.ParseKind(name)
	if err != nil {
		return nil, err
	}
	opts := []service.Option{
		service.WithLogger(e.log.Named("service")),
		service.WithStrategy(kind),
		service.WithWorkerCount(e.cfg.Workers),
		service.WithBalancerOptions(e.cfg.BalancerOptions()...),
	}
	if seed = e.seed(seed); seed != nil {
		opts = append(opts, service.WithSeed(*seed))
	}
	return service.New(opts...), nil
}

type envSetter interface {
	setEnv(*env)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	p := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	p.Name = "teamgen"

	p.CommandHandler = func(c flags.Commander, args []string) error {
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log := logger.Get()
		level := cfg.LogLevel
		if opts.Debug {
			level = "debug"
		}
		if err := logger.SetLevelString(level); err != nil {
			log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
			_ = logger.SetLevelString("info")
		}
		log.Debug(ctx, "teamgen starting", logger.String("version", getVersion()))

		if s, ok := c.(envSetter); ok {
			s.setEnv(&env{ctx: ctx, cfg: cfg, log: log, stdin: stdin, stdout: stdout, format: opts.Output})
		}
		runErr := c.Execute(args)

		metricsFile := cfg.MetricsFile
		if opts.MetricsFile != "" {
			metricsFile = opts.MetricsFile
		}
		if metricsFile != "" {
			if err := metrics.WriteTextfile(metricsFile, nil); err != nil {
				log.Error(ctx, "failed to write metrics", logger.String("path", metricsFile), logger.Error(err))
				if runErr == nil {
					runErr = err
				}
			}
		}
		return runErr
	}

	_, err := p.ParseArgs(args)
	return err
}

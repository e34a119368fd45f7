package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mxk/go-sqlite/sqlite3"
	"github.com/rwcarlsen/pso"
	"github.com/rwcarlsen/pso/bench"
	"github.com/rwcarlsen/pso/config"
	"github.com/rwcarlsen/pso/logger"
	"golang.org/x/sync/errgroup"
)

var (
	cfgpath  = flag.String("config", "", "YAML run configuration file")
	seed     = flag.Int64("seed", 0, "seed of the first trial (0 = config value)")
	trials   = flag.Int("trials", 0, "number of independent trials (0 = config value)")
	ticks    = flag.Int("ticks", 0, "max generations per trial (0 = config value)")
	workers  = flag.Int("workers", 0, "trials run concurrently (0 = config value)")
	dbpath   = flag.String("db", "", "sqlite file to record the first trial's history to")
	loglevel = flag.String("log-level", "", "debug, info, warn or error")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.ForFormat(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	logger.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := run(ctx, cfg, log)
	if err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
	report(cfg, sum)
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *cfgpath != "" {
		var err error
		if cfg, err = config.Load(*cfgpath); err != nil {
			return nil, err
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *trials != 0 {
		cfg.Trials = *trials
	}
	if *ticks != 0 {
		cfg.Ticks = *ticks
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	if *dbpath != "" {
		cfg.DB = *dbpath
	}
	if *loglevel != "" {
		cfg.LogLevel = *loglevel
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) (*bench.Summary, error) {
	base := cfg.Seed
	if base == 0 {
		base = pso.NewSource(0).Int63()
	}
	log.Info("starting trials",
		"dim", cfg.Dim, "size", cfg.Size, "bounds", []float64{cfg.Lower, cfg.Upper},
		"inertia", cfg.Inertia, "cognition", cfg.Cognition, "social", cfg.Social,
		"trials", cfg.Trials, "ticks", cfg.Ticks, "seed", base)

	var hist *pso.History
	if cfg.DB != "" {
		db, err := sql.Open("sqlite3", cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("open history db %s: %w", cfg.DB, err)
		}
		defer db.Close()
		if hist, err = pso.NewHistory(db, cfg.Dim); err != nil {
			return nil, err
		}
		log.Info("recording history", "db", cfg.DB, "run", hist.Run)
	}

	sum := bench.NewSummary()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for k := 0; k < cfg.Trials; k++ {
		k := k // per-iteration copy (go 1.22 loopvar semantics)
		trialSeed := base + int64(k)
		opts := []pso.Option{pso.WithNotifier(pso.LogNotifier(log.With("trial", k)))}
		if k == 0 && hist != nil {
			opts = append(opts, pso.WithRecorder(hist))
		}
		g.Go(func() error {
			r, err := bench.Run(ctx, cfg, trialSeed, opts...)
			if err != nil {
				return fmt.Errorf("trial %v (seed %v): %w", k, trialSeed, err)
			}
			sum.Add(r)
			log.Info("trial done", "trial", k, "seed", r.Seed, "ticks", r.Ticks,
				"best", r.Val, "dist", r.Dist, "converged", r.Converged)
			return nil
		})
	}
	return sum, g.Wait()
}

func report(cfg *config.Config, sum *bench.Summary) {
	name := bench.Rastrigin{NDim: cfg.Dim}.Name()
	best, _ := sum.Best()
	med, _ := sum.Median()
	fmt.Printf("%v: %v trials\n", name, sum.Len())
	fmt.Printf("    best:   %v at %v (seed %v, %v ticks)\n", best.Val, best.Pos, best.Seed, best.Ticks)
	fmt.Printf("    median: %v\n", med.Val)
	fmt.Printf("    mean:   %v +- %v\n", sum.Mean(), sum.StdDev())
	fmt.Printf("%v%% converged below %v\n", sum.SuccessRate()*100, cfg.Tolerance)
}

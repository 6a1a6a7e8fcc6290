package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/bootstrap"
	"github.com/goodnatureofminers/ratrace-oracle/internal/metrics"
	"github.com/goodnatureofminers/ratrace-oracle/internal/settlement"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	bootstrap.Config

	MetricsAddr string        `long:"metrics-addr" env:"RATRACE_SWEEPER_METRICS_ADDR" default:":9090" description:"prometheus listen address"`
	Workers     int           `long:"workers" env:"RATRACE_SWEEPER_WORKERS" default:"4" description:"races settled in parallel"`
	BatchSize   int           `long:"batch-size" env:"RATRACE_SWEEPER_BATCH_SIZE" default:"100" description:"races fetched per sweep"`
	IdleSleep   time.Duration `long:"idle-sleep" env:"RATRACE_SWEEPER_IDLE_SLEEP" default:"5s" description:"pause between sweeps"`
	RaceID      uint64        `long:"race-id" description:"retry the settlement of this race once and exit, ignoring earlier failures"`
}

func (c config) Validate() error {
	err := c.Config.Validate()
	if c.Store != bootstrap.StorePostgres {
		err = errors.Join(err, errors.New("the sweeper needs --store=postgres"))
	}
	return err
}

func main() {
	var cfg config
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := bootstrap.NewLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stack, err := bootstrap.Build(ctx, cfg.Config, logger)
	if err != nil {
		logger.Fatal("Failed to build settlement stack", zap.Error(err))
	}
	defer stack.Close()
	stack.Start(ctx)

	sweeper, err := settlement.NewSweeper(stack.Repo, stack.Driver, metrics.NewSweeper(), settlement.SweeperConfig{
		Workers:     cfg.Workers,
		BatchSize:   cfg.BatchSize,
		IdleSleep:   cfg.IdleSleep,
		MaxAttempts: cfg.MaxSettlementAttempts,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to build sweeper", zap.Error(err))
	}

	if cfg.RaceID != 0 {
		if err := sweeper.SettleOnce(ctx, cfg.RaceID); err != nil {
			logger.Error("One-shot settlement failed", zap.Uint64("race_id", cfg.RaceID), zap.Error(err))
			stack.Close()
			os.Exit(1)
		}
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve metrics", zap.Error(err))
		}
	}()
	defer func() {
		_ = s.Shutdown(context.Background())
	}()

	logger.Info("Starting sweeper", zap.Int("workers", cfg.Workers), zap.Duration("idle_sleep", cfg.IdleSleep))
	if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Sweeper stopped", zap.Error(err))
	}
}

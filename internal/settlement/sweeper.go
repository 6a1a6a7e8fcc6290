package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/clock"
	"github.com/goodnatureofminers/ratrace-oracle/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultSweepWorkers   = 4
	defaultSweepBatch     = 100
	defaultSweepIdleSleep = 5 * time.Second
	sweepBackoffSleep     = 15 * time.Second
)

// SweeperConfig tunes the sweep loop.
type SweeperConfig struct {
	Workers     int
	BatchSize   int
	IdleSleep   time.Duration
	MaxAttempts int
}

// Sweeper settles races whose settlement was deferred and confirms submitted
// settlements whose RaceFinished event has not been seen.
type Sweeper struct {
	repo    RaceRepository
	driver  raceSettler
	metrics SweeperMetrics
	logger  *zap.Logger
	cfg     SweeperConfig

	now          func() time.Time
	sleep        func(context.Context, time.Duration) error
	backoffSleep time.Duration
}

type raceSettler interface {
	Settle(ctx context.Context, raceID uint64) error
	Retry(ctx context.Context, raceID uint64) error
	Confirm(ctx context.Context, raceID uint64) error
}

// NewSweeper builds a Sweeper around driver.
func NewSweeper(repo RaceRepository, driver *Driver, metrics SweeperMetrics, cfg SweeperConfig, logger *zap.Logger) (*Sweeper, error) {
	if repo == nil || driver == nil {
		return nil, errors.New("repository and driver are required")
	}
	if metrics == nil {
		return nil, errors.New("sweeper metrics is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultSweepWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultSweepBatch
	}
	if cfg.IdleSleep <= 0 {
		cfg.IdleSleep = defaultSweepIdleSleep
	}
	return &Sweeper{
		repo:         repo,
		driver:       driver,
		metrics:      metrics,
		logger:       logger.Named("sweeper"),
		cfg:          cfg,
		now:          time.Now,
		sleep:        clock.SleepWithContext,
		backoffSleep: sweepBackoffSleep,
	}, nil
}

// Run sweeps until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("sweep iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.backoffSleep))
			if sleepErr := s.sleep(ctx, s.backoffSleep); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *Sweeper) run(ctx context.Context) error {
	due, err := s.sweep(ctx, "settle", func(ctx context.Context) ([]uint64, error) {
		return s.repo.PendingSettlements(ctx, s.now().UTC(), s.cfg.MaxAttempts, s.cfg.BatchSize)
	}, s.driver.Settle)
	if err != nil {
		return err
	}

	unconfirmed, err := s.sweep(ctx, "confirm", func(ctx context.Context) ([]uint64, error) {
		return s.repo.AwaitingConfirmation(ctx, s.cfg.BatchSize)
	}, s.driver.Confirm)
	if err != nil {
		return err
	}

	if due+unconfirmed > 0 {
		return nil
	}
	s.logger.Debug("nothing to sweep; going idle", zap.Duration("sleep", s.cfg.IdleSleep))
	return s.sleep(ctx, s.cfg.IdleSleep)
}

func (s *Sweeper) sweep(
	ctx context.Context,
	kind string,
	fetch func(context.Context) ([]uint64, error),
	apply func(context.Context, uint64) error,
) (int, error) {
	started := time.Now()
	ids, err := fetch(ctx)
	if err != nil {
		s.metrics.ObserveSweep(kind, 0, err, started)
		s.logger.Error("fetch races failed", zap.String("kind", kind), zap.Error(err))
		return 0, err
	}
	if len(ids) == 0 {
		s.metrics.ObserveSweep(kind, 0, nil, started)
		return 0, nil
	}

	s.logger.Info("sweeping races", zap.String("kind", kind), zap.Int("race_count", len(ids)))
	err = workerpool.ForEach(ctx, s.cfg.Workers, ids, func(ctx context.Context, id uint64) error {
		if err := apply(ctx, id); err != nil {
			s.logger.Warn("race sweep failed", zap.String("kind", kind), zap.Uint64("race_id", id), zap.Error(err))
			return err
		}
		return nil
	})
	s.metrics.ObserveSweep(kind, len(ids), err, started)
	if ctx.Err() != nil {
		return len(ids), ctx.Err()
	}
	// Per-race failures are recorded on the race; they must not stall the loop.
	return len(ids), nil
}

// SettleOnce retries and, when possible, confirms a single race. Operators use
// it for a race whose settlement failed or ran out of attempts.
func (s *Sweeper) SettleOnce(ctx context.Context, raceID uint64) error {
	logger := s.logger.With(zap.Uint64("race_id", raceID))
	if err := s.driver.Retry(ctx, raceID); err != nil {
		return err
	}
	if err := s.driver.Confirm(ctx, raceID); err != nil {
		return err
	}
	logger.Info("one-shot settlement done")
	return nil
}

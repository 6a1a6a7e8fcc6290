// Package settlement drives races from creation to a single on-chain settlement.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/clock"
	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
	"github.com/goodnatureofminers/ratrace-oracle/internal/simulation"
	"github.com/goodnatureofminers/ratrace-oracle/internal/storage"
	"go.uber.org/zap"
)

// Role is the caller permission finishRace requires on-chain.
type Role string

const (
	// RoleAnyCaller lets any signer settle.
	RoleAnyCaller Role = "any"
	// RoleOracle restricts settlement to the contract's oracle() address.
	RoleOracle Role = "oracle"
)

// Config tunes the driver.
type Config struct {
	// SettlementDelay postpones settlement after the results are stored. Zero
	// settles inline with the RaceStarted delivery.
	SettlementDelay time.Duration
	ChainTimeout    time.Duration
	// ConfirmTimeout bounds the wait for the settlement receipt. Zero leaves
	// confirmation to the RaceFinished event or the sweeper.
	ConfirmTimeout    time.Duration
	ClaimLease        time.Duration
	MaxAttempts       int
	StoreReadAttempts int
	StoreReadBackoff  time.Duration
	Role              Role
}

const (
	defaultChainTimeout     = 30 * time.Second
	defaultClaimLease       = 2 * time.Minute
	defaultStoreReadBackoff = 200 * time.Millisecond
	maxStoreReadBackoff     = 5 * time.Second
)

// Driver applies lifecycle events to the race store and the race contract.
type Driver struct {
	repo      RaceRepository
	stats     RatStatsSource
	contract  RaceContract
	engine    *simulation.Engine
	archive   Archive
	publisher Publisher
	metrics   Metrics
	logger    *zap.Logger
	cfg       Config

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewDriver builds a Driver. archive and publisher may be nil.
func NewDriver(
	repo RaceRepository,
	stats RatStatsSource,
	contract RaceContract,
	archive Archive,
	publisher Publisher,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Driver, error) {
	if repo == nil || stats == nil || contract == nil {
		return nil, errors.New("repository, rat stats source and race contract are required")
	}
	if metrics == nil {
		return nil, errors.New("settlement metrics is required")
	}
	if cfg.ChainTimeout <= 0 {
		cfg.ChainTimeout = defaultChainTimeout
	}
	if cfg.ClaimLease <= 0 {
		cfg.ClaimLease = defaultClaimLease
	}
	if cfg.StoreReadAttempts <= 0 {
		cfg.StoreReadAttempts = 1
	}
	if cfg.StoreReadBackoff <= 0 {
		cfg.StoreReadBackoff = defaultStoreReadBackoff
	}
	if cfg.Role == "" {
		cfg.Role = RoleOracle
	}

	return &Driver{
		repo:      repo,
		stats:     stats,
		contract:  contract,
		engine:    simulation.New(),
		archive:   archive,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.Named("settlement"),
		cfg:       cfg,
		now:       time.Now,
		sleep:     clock.SleepWithContext,
	}, nil
}

// Handle applies ev. Re-delivered events are no-ops.
func (d *Driver) Handle(ctx context.Context, ev model.Event) (err error) {
	started := time.Now()
	defer func() {
		d.metrics.Observe("handle_"+string(ev.Name), err, started)
	}()

	logger := d.logger.With(zap.Uint64("race_id", ev.RaceID), zap.String("event", string(ev.Name)), zap.String("tx", ev.TxHash))
	logger.Debug("handling event")

	switch p := ev.Payload.(type) {
	case model.RaceCreated:
		return d.handleCreated(ctx, ev.RaceID, p, logger)
	case model.RacerEntered:
		return d.handleEntered(ctx, ev.RaceID, p, logger)
	case model.RaceStartedPayload:
		return d.handleStarted(ctx, ev, logger)
	case model.RaceFinishedPayload:
		return d.handleFinished(ctx, ev, p, logger)
	case model.RaceCancelledPayload:
		return d.handleCancelled(ctx, ev.RaceID, logger)
	default:
		return fmt.Errorf("%w: unsupported payload %T", ErrInvalidEvent, ev.Payload)
	}
}

func (d *Driver) handleCreated(ctx context.Context, raceID uint64, p model.RaceCreated, logger *zap.Logger) error {
	fee := new(big.Int)
	if p.EntryFee != nil {
		fee.Set(p.EntryFee)
	}
	race := &model.Race{
		RaceID:     raceID,
		TrackID:    p.TrackID,
		EntryToken: p.EntryToken,
		EntryFee:   fee,
		Creator:    p.Creator,
		Status:     model.RaceActive,
		PrizePool:  new(big.Int),
		CreatedAt:  d.now().UTC(),
	}
	created, err := d.repo.UpsertRace(ctx, race)
	if err != nil {
		return fmt.Errorf("upsert race %d: %w", raceID, err)
	}
	if created {
		logger.Info("race created", zap.Uint64("track_id", p.TrackID), zap.String("entry_fee", fee.String()))
	} else {
		logger.Debug("race already mirrored")
	}
	return nil
}

func (d *Driver) handleEntered(ctx context.Context, raceID uint64, p model.RacerEntered, logger *zap.Logger) error {
	race, err := d.findRace(ctx, raceID)
	if err != nil {
		return err
	}
	if existing, ok := race.Participant(p.RatTokenID); ok && model.SameAddress(existing.RacerAddress, p.Racer) {
		logger.Debug("entry already recorded", zap.Uint64("rat", p.RatTokenID))
		return nil
	}
	if race.Status != model.RaceActive {
		return fmt.Errorf("%w: race %d is %s, cannot accept entries", ErrInvalidTransition, raceID, race.Status)
	}

	stats, err := d.ratStats(ctx, p.RatTokenID)
	if err != nil {
		return err
	}
	if stats.Owner == "" {
		stats.Owner = p.Racer
	}

	entry := model.Participant{
		RacerAddress: p.Racer,
		RatTokenID:   p.RatTokenID,
		Stats:        stats,
		EnteredAt:    d.now().UTC(),
	}
	updated, err := d.repo.EnterRace(ctx, raceID, entry, race.EntryFee)
	if err != nil {
		return fmt.Errorf("enter race %d with rat %d: %w", raceID, p.RatTokenID, err)
	}
	logger.Info("racer entered",
		zap.String("racer", p.Racer),
		zap.Uint64("rat", p.RatTokenID),
		zap.Int("entries", len(updated.Participants)),
		zap.String("status", string(updated.Status)),
	)
	return nil
}

func (d *Driver) ratStats(ctx context.Context, tokenID uint64) (model.RatStats, error) {
	cctx, cancel := context.WithTimeout(ctx, d.cfg.ChainTimeout)
	defer cancel()

	stats, err := d.stats.RatStats(cctx, tokenID)
	if err != nil {
		return model.RatStats{}, fmt.Errorf("read stats for rat %d: %w", tokenID, err)
	}
	stats.TokenID = tokenID
	if err := stats.Validate(); err != nil {
		return model.RatStats{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	return stats, nil
}

func (d *Driver) handleStarted(ctx context.Context, ev model.Event, logger *zap.Logger) error {
	race, err := d.findRace(ctx, ev.RaceID)
	if err != nil {
		return err
	}

	switch race.Status {
	case model.RaceActive, model.RaceFull:
		if len(race.Participants) != model.RaceSize {
			return fmt.Errorf("%w: race %d has %d of %d entries", ErrInvalidTransition, race.RaceID, len(race.Participants), model.RaceSize)
		}
		if _, err := d.repo.StartRace(ctx, race.RaceID, d.now().UTC()); err != nil {
			return fmt.Errorf("start race %d: %w", race.RaceID, err)
		}
		if race, err = d.findRace(ctx, race.RaceID); err != nil {
			return err
		}
	case model.RaceStarted:
	case model.RaceFinished:
		logger.Debug("race already finished")
		return nil
	default:
		return fmt.Errorf("%w: race %d is %s", ErrInvalidTransition, race.RaceID, race.Status)
	}

	if race.Simulation == nil {
		if race, err = d.simulate(ctx, race, ev, logger); err != nil {
			return err
		}
	}

	if race.SettleAfter != nil {
		logger.Info("settlement scheduled", zap.Time("settle_after", *race.SettleAfter))
		return nil
	}
	return d.settle(ctx, race, false, logger)
}

func (d *Driver) simulate(ctx context.Context, race *model.Race, ev model.Event, logger *zap.Logger) (*model.Race, error) {
	blockHash := ev.BlockHash
	if blockHash == "" {
		if ev.TxHash == "" {
			return nil, fmt.Errorf("%w: RaceStarted for race %d carries neither block nor tx hash", ErrInvalidEvent, race.RaceID)
		}
		cctx, cancel := context.WithTimeout(ctx, d.cfg.ChainTimeout)
		hash, err := d.contract.BlockHashOf(cctx, ev.TxHash)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("block hash of %s: %w", ev.TxHash, err)
		}
		blockHash = hash
	}

	start := d.now().UTC()
	if race.StartedAt != nil {
		start = *race.StartedAt
	}
	seed := simulation.DeriveSeed(race.RaceID, blockHash, race.TokenIDs())
	sim, err := d.engine.Simulate(race.RaceID, race.Stats(), start, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: simulate race %d: %w", ErrInvalidEvent, race.RaceID, err)
	}
	for _, w := range sim.Analysis.Warnings {
		logger.Warn("simulation warning", zap.String("warning", w))
	}

	var settleAfter *time.Time
	if d.cfg.SettlementDelay > 0 {
		at := d.now().UTC().Add(d.cfg.SettlementDelay)
		settleAfter = &at
	}
	saved, err := d.repo.SaveSimulation(ctx, race.RaceID, sim, settleAfter)
	if err != nil {
		return nil, fmt.Errorf("save simulation for race %d: %w", race.RaceID, err)
	}
	if !saved {
		logger.Info("simulation already stored by another delivery")
		return d.findRace(ctx, race.RaceID)
	}

	logger.Info("race simulated",
		zap.Uint64s("positions", sim.Positions),
		zap.String("seed", sim.Analysis.Seed),
		zap.String("time_of_day", sim.Analysis.TimeOfDay.Name),
	)
	race.Simulation = sim
	race.SettleAfter = settleAfter
	d.publish(ctx, model.Notification{
		Kind:      model.NotifyResultsComputed,
		RaceID:    race.RaceID,
		Status:    race.Status,
		Positions: sim.Positions,
	})
	return race, nil
}

// Settle submits the settlement transaction for a started race whose results
// are stored. It is a no-op when a settlement is already recorded, when the
// race is not due yet or when an earlier attempt failed.
func (d *Driver) Settle(ctx context.Context, raceID uint64) (err error) {
	started := time.Now()
	defer func() { d.metrics.Observe("settle", err, started) }()

	race, err := d.findRace(ctx, raceID)
	if err != nil {
		return err
	}
	if race.SettleAfter != nil && race.SettleAfter.After(d.now()) {
		return nil
	}
	return d.settle(ctx, race, false, d.logger.With(zap.Uint64("race_id", raceID)))
}

// Retry resubmits the settlement of a started race on operator request. It
// ignores a recorded finish error and the attempt limit.
func (d *Driver) Retry(ctx context.Context, raceID uint64) (err error) {
	started := time.Now()
	defer func() { d.metrics.Observe("retry", err, started) }()

	race, err := d.findRace(ctx, raceID)
	if err != nil {
		return err
	}
	return d.settle(ctx, race, true, d.logger.With(zap.Uint64("race_id", raceID)))
}

func (d *Driver) settle(ctx context.Context, race *model.Race, manual bool, logger *zap.Logger) error {
	if race.Status != model.RaceStarted || race.SettlementTx != "" {
		return nil
	}
	if race.Simulation == nil {
		return fmt.Errorf("%w: race %d has no stored results", ErrInvalidTransition, race.RaceID)
	}
	if !manual {
		if race.FinishError != nil {
			logger.Info("settlement failed earlier, awaiting operator",
				zap.String("finish_error", race.FinishError.Message),
				zap.Time("failed_at", race.FinishError.At),
			)
			return nil
		}
		if d.cfg.MaxAttempts > 0 && race.SettlementAttempts >= d.cfg.MaxAttempts {
			return fmt.Errorf("%w: race %d exhausted %d attempts", ErrSettlementFailed, race.RaceID, race.SettlementAttempts)
		}
	}

	if err := d.authorize(ctx); err != nil {
		return d.recordFailure(ctx, race, err, logger)
	}

	claimed, err := d.repo.ClaimSettlement(ctx, race.RaceID, d.now().UTC(), d.cfg.ClaimLease)
	if err != nil {
		return fmt.Errorf("claim settlement of race %d: %w", race.RaceID, err)
	}
	if !claimed {
		logger.Info("settlement claimed elsewhere")
		return nil
	}

	positions := slices.Clone(race.Simulation.Positions)
	cctx, cancel := context.WithTimeout(ctx, d.cfg.ChainTimeout)
	txHash, err := d.contract.FinishRace(cctx, race.RaceID, positions)
	cancel()
	if err != nil {
		return d.recordFailure(ctx, race, err, logger)
	}

	if err := d.repo.RecordSettlementTx(ctx, race.RaceID, txHash); err != nil {
		// The transaction is out; losing the hash only delays reconciliation
		// until the RaceFinished event arrives.
		logger.Error("settlement submitted but not recorded", zap.String("settlement_tx", txHash), zap.Error(err))
		return fmt.Errorf("record settlement tx of race %d: %w", race.RaceID, err)
	}
	race.SettlementTx = txHash
	logger.Info("settlement submitted", zap.String("settlement_tx", txHash))
	d.publish(ctx, model.Notification{
		Kind:         model.NotifyRaceSettled,
		RaceID:       race.RaceID,
		Status:       race.Status,
		Positions:    positions,
		SettlementTx: txHash,
	})

	if d.cfg.ConfirmTimeout > 0 {
		return d.confirm(ctx, race, logger)
	}
	return nil
}

func (d *Driver) authorize(ctx context.Context) error {
	if d.cfg.Role != RoleOracle {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, d.cfg.ChainTimeout)
	defer cancel()

	oracle, err := d.contract.Oracle(cctx)
	if err != nil {
		return fmt.Errorf("read oracle address: %w", err)
	}
	if !model.SameAddress(oracle, d.contract.Sender()) {
		return fmt.Errorf("%w: oracle is %s, signer is %s", ErrNotAuthorized, oracle, d.contract.Sender())
	}
	return nil
}

func (d *Driver) recordFailure(ctx context.Context, race *model.Race, cause error, logger *zap.Logger) error {
	fe := model.FinishError{Message: cause.Error(), At: d.now().UTC()}
	logger.Error("settlement failed", zap.Error(cause))
	if err := d.repo.RecordFinishError(ctx, race.RaceID, fe); err != nil {
		return errors.Join(fmt.Errorf("%w: race %d: %w", ErrSettlementFailed, race.RaceID, cause), fmt.Errorf("record finish error: %w", err))
	}
	d.publish(ctx, model.Notification{
		Kind:    model.NotifySettlementError,
		RaceID:  race.RaceID,
		Status:  race.Status,
		Message: fe.Message,
	})
	return fmt.Errorf("%w: race %d: %w", ErrSettlementFailed, race.RaceID, cause)
}

// Confirm waits for the recorded settlement receipt of raceID and finalizes the
// race when it succeeded.
func (d *Driver) Confirm(ctx context.Context, raceID uint64) (err error) {
	started := time.Now()
	defer func() { d.metrics.Observe("confirm", err, started) }()

	race, err := d.findRace(ctx, raceID)
	if err != nil {
		return err
	}
	if race.Status != model.RaceStarted || race.SettlementTx == "" {
		return nil
	}
	return d.confirm(ctx, race, d.logger.With(zap.Uint64("race_id", raceID)))
}

func (d *Driver) confirm(ctx context.Context, race *model.Race, logger *zap.Logger) error {
	timeout := d.cfg.ConfirmTimeout
	if timeout <= 0 {
		timeout = d.cfg.ChainTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	ok, err := d.contract.WaitMined(cctx, race.SettlementTx)
	cancel()
	if err != nil {
		logger.Warn("settlement receipt not available yet", zap.String("settlement_tx", race.SettlementTx), zap.Error(err))
		return nil
	}
	if !ok {
		return d.recordFailure(ctx, race, fmt.Errorf("settlement tx %s reverted", race.SettlementTx), logger)
	}
	return d.complete(ctx, race, race.Simulation.Positions, race.SettlementTx, logger)
}

func (d *Driver) handleFinished(ctx context.Context, ev model.Event, p model.RaceFinishedPayload, logger *zap.Logger) error {
	race, err := d.findRace(ctx, ev.RaceID)
	if err != nil {
		return err
	}
	switch race.Status {
	case model.RaceFinished:
		logger.Debug("race already finished")
		return nil
	case model.RaceStarted:
	default:
		return fmt.Errorf("%w: race %d is %s", ErrInvalidTransition, race.RaceID, race.Status)
	}

	positions := p.Positions
	switch {
	case len(positions) == 0 && race.Simulation == nil:
		return fmt.Errorf("%w: no positions for race %d", ErrInvalidEvent, race.RaceID)
	case len(positions) == 0:
		positions = race.Simulation.Positions
	case race.Simulation != nil && !slices.Equal(positions, race.Simulation.Positions):
		logger.Warn("on-chain positions differ from stored results",
			zap.Uint64s("onchain", positions),
			zap.Uint64s("stored", race.Simulation.Positions),
		)
	}

	txHash := race.SettlementTx
	if txHash == "" {
		txHash = ev.TxHash
	}
	return d.complete(ctx, race, positions, txHash, logger)
}

func (d *Driver) complete(ctx context.Context, race *model.Race, positions []uint64, txHash string, logger *zap.Logger) error {
	split := SplitPrizePool(race.PrizePool)
	awards, err := buildAwards(race, positions, split)
	if err != nil {
		return err
	}
	outcome := model.RaceOutcome{
		Positions:    slices.Clone(positions),
		Prizes:       split,
		Awards:       awards,
		SettlementTx: txHash,
		CompletedAt:  d.now().UTC(),
	}
	done, err := d.repo.CompleteRace(ctx, race.RaceID, outcome)
	if err != nil {
		return fmt.Errorf("complete race %d: %w", race.RaceID, err)
	}
	if !done {
		logger.Debug("race finalized elsewhere")
		return nil
	}
	logger.Info("race finalized", zap.Uint64s("positions", positions), zap.String("settlement_tx", txHash))

	if d.archive != nil {
		finished, err := d.findRace(ctx, race.RaceID)
		if err == nil {
			err = d.archive.ArchiveRace(ctx, finished, outcome)
		}
		if err != nil {
			logger.Error("archive race failed", zap.Error(err))
		}
	}
	d.publish(ctx, model.Notification{
		Kind:         model.NotifyRaceFinalized,
		RaceID:       race.RaceID,
		Status:       model.RaceFinished,
		Positions:    positions,
		SettlementTx: txHash,
	})
	return nil
}

func (d *Driver) handleCancelled(ctx context.Context, raceID uint64, logger *zap.Logger) error {
	race, err := d.findRace(ctx, raceID)
	if err != nil {
		return err
	}
	if race.Status == model.RaceCancelled {
		logger.Debug("race already cancelled")
		return nil
	}
	if !race.Status.CanTransitionTo(model.RaceCancelled) {
		return fmt.Errorf("%w: race %d is %s", ErrInvalidTransition, raceID, race.Status)
	}

	done, err := d.repo.CancelRace(ctx, raceID, d.now().UTC())
	if err != nil {
		return fmt.Errorf("cancel race %d: %w", raceID, err)
	}
	if !done {
		return nil
	}
	logger.Info("race cancelled", zap.Int("entries", len(race.Participants)))
	d.publish(ctx, model.Notification{
		Kind:   model.NotifyRaceCancelled,
		RaceID: raceID,
		Status: model.RaceCancelled,
	})
	return nil
}

// findRace reads a race, retrying transient store failures.
func (d *Driver) findRace(ctx context.Context, raceID uint64) (*model.Race, error) {
	var lastErr error
	for attempt := 1; attempt <= d.cfg.StoreReadAttempts; attempt++ {
		race, err := d.repo.FindByRaceID(ctx, raceID)
		if err == nil {
			return race, nil
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("race %d: %w", raceID, err)
		}
		lastErr = err
		if attempt == d.cfg.StoreReadAttempts {
			break
		}
		d.logger.Warn("race read failed, retrying",
			zap.Uint64("race_id", raceID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if err := d.sleep(ctx, clock.Backoff(attempt, d.cfg.StoreReadBackoff, maxStoreReadBackoff)); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("read race %d: %w", raceID, lastErr)
}

func (d *Driver) publish(ctx context.Context, n model.Notification) {
	if d.publisher == nil {
		return
	}
	if n.At.IsZero() {
		n.At = d.now().UTC()
	}
	if err := d.publisher.Publish(ctx, n); err != nil {
		d.logger.Warn("publish notification failed",
			zap.Uint64("race_id", n.RaceID),
			zap.String("kind", string(n.Kind)),
			zap.Error(err),
		)
	}
}

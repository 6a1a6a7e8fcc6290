package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
	"github.com/goodnatureofminers/ratrace-oracle/pkg/batcher"
	"github.com/goodnatureofminers/ratrace-oracle/pkg/safe"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ArchiveConfig controls result batching.
type ArchiveConfig struct {
	BatchSize     int
	FlushInterval time.Duration
	RPS           int
	// TokenDecimals converts raw entry-token amounts to token units.
	TokenDecimals int32
}

// Archive queues finalized races and writes them in batches.
type Archive struct {
	batcher  *batcher.Batcher[ResultRow]
	decimals int32
}

// NewArchive builds an Archive on top of writer. Call Start before use and
// Stop on shutdown to flush queued rows.
func NewArchive(writer ResultWriter, cfg ArchiveConfig, logger *zap.Logger) *Archive {
	return &Archive{
		batcher: batcher.New[ResultRow](logger.Named("race_results_batcher"), writer.InsertRaceResults, batcher.Config{
			Size:     cfg.BatchSize,
			Interval: cfg.FlushInterval,
			RPS:      cfg.RPS,
		}),
		decimals: cfg.TokenDecimals,
	}
}

// Start launches the flush loop.
func (a *Archive) Start(ctx context.Context) {
	a.batcher.Start(ctx)
}

// Stop flushes queued rows and waits for the loop to exit.
func (a *Archive) Stop() {
	a.batcher.Stop()
}

// ArchiveRace queues one row per participant of a finalized race.
func (a *Archive) ArchiveRace(ctx context.Context, race *model.Race, outcome model.RaceOutcome) error {
	rows, err := ResultRows(race, outcome, a.decimals)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := a.batcher.Add(ctx, row); err != nil {
			return fmt.Errorf("queue result of rat %d: %w", row.RatTokenID, err)
		}
	}
	return nil
}

// ResultRows flattens a finalized race into archive rows ordered by finish
// position. Amounts are scaled down by decimals.
func ResultRows(race *model.Race, outcome model.RaceOutcome, decimals int32) ([]ResultRow, error) {
	if race == nil {
		return nil, errors.New("archive: race is nil")
	}

	var (
		timeOfDay, seed string
		finishTimes     map[uint64]float64
		startedAt       time.Time
	)
	if race.Simulation != nil {
		timeOfDay = race.Simulation.Analysis.TimeOfDay.Name
		seed = race.Simulation.Analysis.Seed
		finishTimes = race.Simulation.FinishTimes
	}
	if race.StartedAt != nil {
		startedAt = race.StartedAt.UTC()
	}
	settlementTx := outcome.SettlementTx
	if settlementTx == "" {
		settlementTx = race.SettlementTx
	}

	rows := make([]ResultRow, 0, len(outcome.Awards))
	for _, award := range outcome.Awards {
		p, ok := race.Participant(award.TokenID)
		if !ok {
			return nil, fmt.Errorf("archive: rat %d did not race in %d", award.TokenID, race.RaceID)
		}
		row := ResultRow{
			RaceID:       race.RaceID,
			TrackID:      race.TrackID,
			RatTokenID:   award.TokenID,
			RacerAddress: model.NormalizeAddress(p.RacerAddress),
			Bloodline:    string(p.Stats.Bloodline),
			FinishTime:   finishTimes[award.TokenID],
			EntryFee:     tokenUnits(race.EntryFee, decimals),
			Prize:        tokenUnits(award.Prize, decimals),
			TimeOfDay:    timeOfDay,
			Seed:         seed,
			SettlementTx: settlementTx,
			StartedAt:    startedAt,
			CompletedAt:  outcome.CompletedAt.UTC(),
		}
		var err error
		if row.Stamina, err = safe.Uint8(p.Stats.Stamina); err != nil {
			return nil, err
		}
		if row.Agility, err = safe.Uint8(p.Stats.Agility); err != nil {
			return nil, err
		}
		if row.Speed, err = safe.Uint8(p.Stats.Speed); err != nil {
			return nil, err
		}
		if row.FinishPosition, err = safe.Uint8(award.Position); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func tokenUnits(v *big.Int, decimals int32) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, -decimals)
}

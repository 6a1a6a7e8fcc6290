package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ResultRow is one rat's line in a finalized race.
type ResultRow struct {
	RaceID         uint64
	TrackID        uint64
	RatTokenID     uint64
	RacerAddress   string
	Bloodline      string
	Stamina        uint8
	Agility        uint8
	Speed          uint8
	FinishPosition uint8
	FinishTime     float64
	EntryFee       decimal.Decimal
	Prize          decimal.Decimal
	TimeOfDay      string
	Seed           string
	SettlementTx   string
	StartedAt      time.Time
	CompletedAt    time.Time
}

const insertRaceResultsQuery = `
INSERT INTO race_results (
	race_id,
	track_id,
	rat_token_id,
	racer_address,
	bloodline,
	stamina,
	agility,
	speed,
	finish_position,
	finish_time,
	entry_fee,
	prize,
	time_of_day,
	seed,
	settlement_tx,
	started_at,
	completed_at
) VALUES`

// InsertRaceResults stores result rows. Re-inserting a race replaces its rows
// on merge.
func (r *Repository) InsertRaceResults(ctx context.Context, rows []ResultRow) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_race_results", err, start)
	}()

	if len(rows) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertRaceResultsQuery)
	if err != nil {
		return fmt.Errorf("prepare race results batch: %w", err)
	}

	for _, row := range rows {
		if err = batch.Append(
			row.RaceID,
			row.TrackID,
			row.RatTokenID,
			row.RacerAddress,
			row.Bloodline,
			row.Stamina,
			row.Agility,
			row.Speed,
			row.FinishPosition,
			row.FinishTime,
			row.EntryFee,
			row.Prize,
			row.TimeOfDay,
			row.Seed,
			row.SettlementTx,
			row.StartedAt,
			row.CompletedAt,
		); err != nil {
			return fmt.Errorf("append race result: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert race results: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
	"github.com/goodnatureofminers/ratrace-oracle/internal/storage"
	"github.com/goodnatureofminers/ratrace-oracle/pkg/safe"
	"github.com/jackc/pgx/v5"
)

// RaceRepository implements the settlement race store on PostgreSQL. Every
// transition is a conditional UPDATE keyed on race id and status.
type RaceRepository struct {
	pool    *Pool
	metrics Metrics
}

// NewRaceRepository creates a RaceRepository.
func NewRaceRepository(pool *Pool, metrics Metrics) *RaceRepository {
	return &RaceRepository{pool: pool, metrics: metrics}
}

const selectRace = `
SELECT race_id, track_id, entry_token, entry_fee::text, creator, status, prize_pool::text,
       simulation, settlement_tx, finish_error, finish_error_at, settle_after,
       settlement_attempts, created_at, started_at, completed_at
FROM races
WHERE race_id = $1`

const selectParticipants = `
SELECT racer_address, rat_token_id, owner, stamina, agility, speed, bloodline, finish_position, entered_at
FROM race_participants
WHERE race_id = $1
ORDER BY slot`

// FindByRaceID loads the race and its participants.
func (r *RaceRepository) FindByRaceID(ctx context.Context, raceID uint64) (_ *model.Race, err error) {
	started := time.Now()
	defer func() { r.observe("find_by_race_id", err, started) }()

	id, err := safe.Int64(raceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	return r.loadRace(ctx, r.pool, id)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *RaceRepository) loadRace(ctx context.Context, q querier, id int64) (*model.Race, error) {
	var (
		race           model.Race
		rid, trackID   int64
		entryFee, pool string
		status         string
		simulation     []byte
		settlementTx   *string
		finishErr      *string
		finishErrAt    *time.Time
	)
	err := q.QueryRow(ctx, selectRace, id).Scan(
		&rid, &trackID, &race.EntryToken, &entryFee, &race.Creator, &status, &pool,
		&simulation, &settlementTx, &finishErr, &finishErrAt, &race.SettleAfter,
		&race.SettlementAttempts, &race.CreatedAt, &race.StartedAt, &race.CompletedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get race %d: %w", id, err)
	}

	if race.RaceID, err = safe.Uint64(rid); err != nil {
		return nil, err
	}
	if race.TrackID, err = safe.Uint64(trackID); err != nil {
		return nil, err
	}
	if race.EntryFee, err = parseAmount(entryFee); err != nil {
		return nil, err
	}
	if race.PrizePool, err = parseAmount(pool); err != nil {
		return nil, err
	}
	race.Status = model.RaceStatus(status)
	if len(simulation) > 0 {
		race.Simulation = &model.SimulationResult{}
		if err := json.Unmarshal(simulation, race.Simulation); err != nil {
			return nil, fmt.Errorf("decode simulation of race %d: %w", id, err)
		}
	}
	if settlementTx != nil {
		race.SettlementTx = *settlementTx
	}
	if finishErr != nil {
		race.FinishError = &model.FinishError{Message: *finishErr}
		if finishErrAt != nil {
			race.FinishError.At = finishErrAt.UTC()
		}
	}
	race.CreatedAt = race.CreatedAt.UTC()

	rows, err := q.Query(ctx, selectParticipants, id)
	if err != nil {
		return nil, fmt.Errorf("get participants of race %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p                       model.Participant
			token                   int64
			stamina, agility, speed int16
			bloodline               string
			position                *int16
		)
		if err := rows.Scan(&p.RacerAddress, &token, &p.Stats.Owner, &stamina, &agility, &speed, &bloodline, &position, &p.EnteredAt); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		if p.RatTokenID, err = safe.Uint64(token); err != nil {
			return nil, err
		}
		p.Stats.TokenID = p.RatTokenID
		p.Stats.Stamina, p.Stats.Agility, p.Stats.Speed = int(stamina), int(agility), int(speed)
		p.Stats.Bloodline = model.Bloodline(bloodline)
		if position != nil {
			pos := int(*position)
			p.FinishPosition = &pos
		}
		p.EnteredAt = p.EnteredAt.UTC()
		race.Participants = append(race.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return &race, nil
}

// UpsertRace inserts the race unless it exists. Existing rows are left untouched.
func (r *RaceRepository) UpsertRace(ctx context.Context, race *model.Race) (_ bool, err error) {
	started := time.Now()
	defer func() { r.observe("upsert_race", err, started) }()

	if race == nil || !race.Status.Valid() {
		return false, storage.ErrInvalidInput
	}
	id, err := safe.Int64(race.RaceID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	trackID, err := safe.Int64(race.TrackID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}

	const query = `
INSERT INTO races (race_id, track_id, entry_token, entry_fee, creator, status, prize_pool, created_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7::numeric, $8)
ON CONFLICT (race_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		id,
		trackID,
		model.NormalizeAddress(race.EntryToken),
		amountString(race.EntryFee),
		model.NormalizeAddress(race.Creator),
		string(race.Status),
		amountString(race.PrizePool),
		race.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert race %d: %w", race.RaceID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateStatusIf moves the race to `to` when its current status is in from.
func (r *RaceRepository) UpdateStatusIf(ctx context.Context, raceID uint64, from []model.RaceStatus, to model.RaceStatus) (_ bool, err error) {
	started := time.Now()
	defer func() { r.observe("update_status_if", err, started) }()

	id, err := safe.Int64(raceID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	allowed := make([]string, 0, len(from))
	for _, s := range from {
		if s.CanTransitionTo(to) {
			allowed = append(allowed, string(s))
		}
	}
	if len(allowed) == 0 {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `UPDATE races SET status = $2 WHERE race_id = $1 AND status = ANY($3)`, id, string(to), allowed)
	if err != nil {
		return false, fmt.Errorf("update race %d status: %w", raceID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.requireRace(ctx, id)
	}
	return true, nil
}

// EnterRace appends entry, takes the rat's racing lock, adds fee to the pool and
// fills the race in a single transaction. Re-entering the same racer and rat
// returns the race unchanged.
func (r *RaceRepository) EnterRace(ctx context.Context, raceID uint64, entry model.Participant, fee *big.Int) (_ *model.Race, err error) {
	started := time.Now()
	defer func() { r.observe("enter_race", err, started) }()

	id, err := safe.Int64(raceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	token, err := safe.Int64(entry.RatTokenID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	racer := model.NormalizeAddress(entry.RacerAddress)
	owner := model.NormalizeAddress(entry.Stats.Owner)
	if owner == "" {
		owner = racer
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin enter race: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	if err := tx.QueryRow(ctx, `SELECT status FROM races WHERE race_id = $1 FOR UPDATE`, id).Scan(&status); err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("lock race %d: %w", raceID, err)
	}

	var existingRacer string
	err = tx.QueryRow(ctx, `SELECT racer_address FROM race_participants WHERE race_id = $1 AND rat_token_id = $2`, id, token).Scan(&existingRacer)
	switch {
	case err == nil && existingRacer == racer:
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("commit enter race: %w", err)
		}
		return r.loadRace(ctx, r.pool, id)
	case err == nil:
		return nil, storage.ErrDuplicateEntry
	case !isNotFoundError(err):
		return nil, fmt.Errorf("check entry: %w", err)
	}

	var entries int
	var racerEntered bool
	if err := tx.QueryRow(ctx,
		`SELECT count(*), coalesce(bool_or(racer_address = $2), false) FROM race_participants WHERE race_id = $1`,
		id, racer,
	).Scan(&entries, &racerEntered); err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	if racerEntered {
		return nil, storage.ErrDuplicateEntry
	}
	if model.RaceStatus(status) != model.RaceActive || entries >= model.RaceSize {
		return nil, storage.ErrRaceClosed
	}

	const lockRat = `
INSERT INTO rats (token_id, owner, current_race_id, races_entered, level)
VALUES ($1, $2, $3, 1, 1)
ON CONFLICT (token_id) DO UPDATE
SET current_race_id = EXCLUDED.current_race_id,
    owner = EXCLUDED.owner,
    races_entered = rats.races_entered + 1,
    updated_at = now()
WHERE rats.current_race_id IS NULL OR rats.current_race_id = EXCLUDED.current_race_id
RETURNING token_id`
	var locked int64
	if err := tx.QueryRow(ctx, lockRat, token, owner, id).Scan(&locked); err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrRatBusy
		}
		return nil, fmt.Errorf("lock rat %d: %w", entry.RatTokenID, err)
	}

	const insertParticipant = `
INSERT INTO race_participants (race_id, slot, racer_address, rat_token_id, owner, stamina, agility, speed, bloodline, entered_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := tx.Exec(ctx, insertParticipant,
		id, entries, racer, token, owner,
		entry.Stats.Stamina, entry.Stats.Agility, entry.Stats.Speed, string(entry.Stats.Bloodline),
		entry.EnteredAt,
	); err != nil {
		if isDuplicateKeyError(err) {
			return nil, storage.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("insert participant: %w", err)
	}

	feeText := amountString(fee)
	const upsertWallet = `
INSERT INTO wallets (address, races_entered, total_wagered)
VALUES ($1, 1, $2::numeric)
ON CONFLICT (address) DO UPDATE
SET races_entered = wallets.races_entered + 1,
    total_wagered = wallets.total_wagered + EXCLUDED.total_wagered,
    updated_at = now()`
	if _, err := tx.Exec(ctx, upsertWallet, racer, feeText); err != nil {
		return nil, fmt.Errorf("update wallet %s: %w", racer, err)
	}

	const fillRace = `
UPDATE races
SET prize_pool = prize_pool + $2::numeric,
    status = CASE WHEN $3 >= 6 THEN 'Full' ELSE status END
WHERE race_id = $1`
	if _, err := tx.Exec(ctx, fillRace, id, feeText, entries+1); err != nil {
		return nil, fmt.Errorf("update race %d pool: %w", raceID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit enter race: %w", err)
	}
	return r.loadRace(ctx, r.pool, id)
}

// StartRace moves a full field to Started.
func (r *RaceRepository) StartRace(ctx context.Context, raceID uint64, startedAt time.Time) (_ bool, err error) {
	started := time.Now()
	defer func() { r.observe("start_race", err, started) }()

	id, err := safe.Int64(raceID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	const query = `
UPDATE races
SET status = 'Started', started_at = $2
WHERE race_id = $1
  AND status IN ('Active', 'Full')
  AND (SELECT count(*) FROM race_participants p WHERE p.race_id = races.race_id) = 6`
	tag, err := r.pool.Exec(ctx, query, id, startedAt)
	if err != nil {
		return false, fmt.Errorf("start race %d: %w", raceID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.requireRace(ctx, id)
	}
	return true, nil
}

// SaveSimulation stores the results only if none exist yet.
func (r *RaceRepository) SaveSimulation(ctx context.Context, raceID uint64, sim *model.SimulationResult, settleAfter *time.Time) (_ bool, err error) {
	started := time.Now()
	defer func() { r.observe("save_simulation", err, started) }()

	if sim == nil {
		return false, storage.ErrInvalidInput
	}
	id, err := safe.Int64(raceID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	payload, err := json.Marshal(sim)
	if err != nil {
		return false, fmt.Errorf("encode simulation: %w", err)
	}

	const query = `
UPDATE races
SET simulation = $2, settle_after = $3
WHERE race_id = $1
  AND simulation IS NULL
  AND status NOT IN ('Finished', 'Cancelled')`
	tag, err := r.pool.Exec(ctx, query, id, payload, settleAfter)
	if err != nil {
		return false, fmt.Errorf("save simulation of race %d: %w", raceID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.requireRace(ctx, id)
	}
	return true, nil
}

// ClaimSettlement takes the settlement lease and counts an attempt.
func (r *RaceRepository) ClaimSettlement(ctx context.Context, raceID uint64, now time.Time, lease time.Duration) (_ bool, err error) {
	started := time.Now()
	defer func() { r.observe("claim_settlement", err, started) }()

	id, err := safe.Int64(raceID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	const query = `
UPDATE races
SET settlement_claimed_until = $3,
    settlement_attempts = settlement_attempts + 1
WHERE race_id = $1
  AND status = 'Started'
  AND simulation IS NOT NULL
  AND settlement_tx IS NULL
  AND (settlement_claimed_until IS NULL OR settlement_claimed_until <= $2)`
	tag, err := r.pool.Exec(ctx, query, id, now, now.Add(lease))
	if err != nil {
		return false, fmt.Errorf("claim settlement of race %d: %w", raceID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.requireRace(ctx, id)
	}
	return true, nil
}

// RecordSettlementTx stores the submitted transaction and clears any earlier failure.
func (r *RaceRepository) RecordSettlementTx(ctx context.Context, raceID uint64, txHash string) (err error) {
	started := time.Now()
	defer func() { r.observe("record_settlement_tx", err, started) }()

	id, err := safe.Int64(raceID)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE races SET settlement_tx = $2, finish_error = NULL, finish_error_at = NULL WHERE race_id = $1`,
		id, txHash,
	)
	if err != nil {
		return fmt.Errorf("record settlement tx of race %d: %w", raceID, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RecordFinishError stores a failed attempt, forgets any reverted transaction
// and releases the lease.
func (r *RaceRepository) RecordFinishError(ctx context.Context, raceID uint64, finishErr model.FinishError) (err error) {
	started := time.Now()
	defer func() { r.observe("record_finish_error", err, started) }()

	id, err := safe.Int64(raceID)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	const query = `
UPDATE races
SET finish_error = $2,
    finish_error_at = $3,
    settlement_tx = NULL,
    settlement_claimed_until = NULL
WHERE race_id = $1 AND status = 'Started'`
	tag, err := r.pool.Exec(ctx, query, id, finishErr.Message, finishErr.At)
	if err != nil {
		return fmt.Errorf("record finish error of race %d: %w", raceID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.requireRace(ctx, id)
	}
	return nil
}

// CompleteRace finalizes a started race, writes finish positions and updates
// rat and wallet aggregates, all exactly once.
func (r *RaceRepository) CompleteRace(ctx context.Context, raceID uint64, outcome model.RaceOutcome) (_ bool, err error) {
	started := time.Now()
	defer func() { r.observe("complete_race", err, started) }()

	id, err := safe.Int64(raceID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin complete race: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const finish = `
UPDATE races
SET status = 'Finished',
    settlement_tx = coalesce(settlement_tx, nullif($2, '')),
    completed_at = $3,
    settlement_claimed_until = NULL
WHERE race_id = $1 AND status = 'Started'`
	tag, err := tx.Exec(ctx, finish, id, outcome.SettlementTx, outcome.CompletedAt)
	if err != nil {
		return false, fmt.Errorf("finish race %d: %w", raceID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.requireRace(ctx, id)
	}

	for _, a := range outcome.Awards {
		token, err := safe.Int64(a.TokenID)
		if err != nil {
			return false, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE race_participants SET finish_position = $3 WHERE race_id = $1 AND rat_token_id = $2`,
			id, token, a.Position,
		); err != nil {
			return false, fmt.Errorf("set finish position of rat %d: %w", a.TokenID, err)
		}

		win, place, loss := resultCounters(a.Position)
		const updateRat = `
UPDATE rats
SET wins = wins + $3,
    places = places + $4,
    losses = losses + $5,
    xp = xp + $6,
    level = 1 + (xp + $6) / $7,
    current_race_id = CASE WHEN current_race_id = $2 THEN NULL ELSE current_race_id END,
    updated_at = now()
WHERE token_id = $1`
		if _, err := tx.Exec(ctx, updateRat, token, id, win, place, loss, a.XP, model.XPPerLevel); err != nil {
			return false, fmt.Errorf("update rat %d: %w", a.TokenID, err)
		}

		const updateWallet = `
INSERT INTO wallets (address, wins, places, total_won)
VALUES ($1, $2, $3, $4::numeric)
ON CONFLICT (address) DO UPDATE
SET wins = wallets.wins + EXCLUDED.wins,
    places = wallets.places + EXCLUDED.places,
    total_won = wallets.total_won + EXCLUDED.total_won,
    updated_at = now()`
		if _, err := tx.Exec(ctx, updateWallet, model.NormalizeAddress(a.Racer), win, place, amountString(a.Prize)); err != nil {
			return false, fmt.Errorf("update wallet %s: %w", a.Racer, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit complete race: %w", err)
	}
	return true, nil
}

func resultCounters(position int) (win, place, loss int) {
	switch {
	case position == 1:
		return 1, 1, 0
	case model.IsPlace(position):
		return 0, 1, 0
	default:
		return 0, 0, 1
	}
}

// CancelRace cancels an open race, empties the pool, refunds every entrant's
// wallet aggregates and releases every rat lock.
func (r *RaceRepository) CancelRace(ctx context.Context, raceID uint64, cancelledAt time.Time) (_ bool, err error) {
	started := time.Now()
	defer func() { r.observe("cancel_race", err, started) }()

	id, err := safe.Int64(raceID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin cancel race: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE races SET status = 'Cancelled', prize_pool = 0, completed_at = $2 WHERE race_id = $1 AND status IN ('Active', 'Full')`,
		id, cancelledAt,
	)
	if err != nil {
		return false, fmt.Errorf("cancel race %d: %w", raceID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.requireRace(ctx, id)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE rats SET current_race_id = NULL, updated_at = now() WHERE current_race_id = $1`,
		id,
	); err != nil {
		return false, fmt.Errorf("release rats of race %d: %w", raceID, err)
	}

	const refundWallets = `
UPDATE wallets AS w
SET races_entered = GREATEST(w.races_entered - 1, 0),
    total_wagered = GREATEST(w.total_wagered - r.entry_fee, 0),
    updated_at = now()
FROM race_participants AS p
JOIN races AS r ON r.race_id = p.race_id
WHERE p.race_id = $1 AND w.address = p.racer_address`
	if _, err := tx.Exec(ctx, refundWallets, id); err != nil {
		return false, fmt.Errorf("refund wallets of race %d: %w", raceID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit cancel race: %w", err)
	}
	return true, nil
}

// PendingSettlements lists started races that are due and have neither a
// settlement transaction, a recorded failure nor a live lease.
func (r *RaceRepository) PendingSettlements(ctx context.Context, now time.Time, maxAttempts, limit int) (_ []uint64, err error) {
	started := time.Now()
	defer func() { r.observe("pending_settlements", err, started) }()

	const query = `
SELECT race_id
FROM races
WHERE status = 'Started'
  AND simulation IS NOT NULL
  AND settlement_tx IS NULL
  AND finish_error IS NULL
  AND (settle_after IS NULL OR settle_after <= $1)
  AND ($2 <= 0 OR settlement_attempts < $2)
  AND (settlement_claimed_until IS NULL OR settlement_claimed_until <= $1)
ORDER BY race_id
LIMIT $3`
	return r.raceIDs(ctx, query, now, maxAttempts, queryLimit(limit))
}

// AwaitingConfirmation lists started races with a submitted settlement.
func (r *RaceRepository) AwaitingConfirmation(ctx context.Context, limit int) (_ []uint64, err error) {
	started := time.Now()
	defer func() { r.observe("awaiting_confirmation", err, started) }()

	const query = `
SELECT race_id
FROM races
WHERE status = 'Started' AND settlement_tx IS NOT NULL
ORDER BY race_id
LIMIT $1`
	return r.raceIDs(ctx, query, queryLimit(limit))
}

func (r *RaceRepository) raceIDs(ctx context.Context, query string, args ...any) ([]uint64, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query race ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect race ids: %w", err)
	}
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		u, err := safe.Uint64(id)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// FindRat returns the career record of a rat.
func (r *RaceRepository) FindRat(ctx context.Context, tokenID uint64) (_ *model.RatRecord, err error) {
	started := time.Now()
	defer func() { r.observe("find_rat", err, started) }()

	token, err := safe.Int64(tokenID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}
	var (
		rat     = model.RatRecord{TokenID: tokenID}
		current *int64
	)
	err = r.pool.QueryRow(ctx,
		`SELECT owner, current_race_id, races_entered, wins, places, losses, xp, level FROM rats WHERE token_id = $1`,
		token,
	).Scan(&rat.Owner, &current, &rat.RacesEntered, &rat.Wins, &rat.Places, &rat.Losses, &rat.XP, &rat.Level)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get rat %d: %w", tokenID, err)
	}
	if current != nil {
		id, err := safe.Uint64(*current)
		if err != nil {
			return nil, err
		}
		rat.CurrentRaceID = &id
	}
	return &rat, nil
}

// FindWallet returns the aggregates of a racer address.
func (r *RaceRepository) FindWallet(ctx context.Context, address string) (_ *model.WalletStats, err error) {
	started := time.Now()
	defer func() { r.observe("find_wallet", err, started) }()

	w := model.WalletStats{Address: model.NormalizeAddress(address)}
	err = r.pool.QueryRow(ctx,
		`SELECT races_entered, wins, places, total_wagered::text, total_won::text FROM wallets WHERE address = $1`,
		w.Address,
	).Scan(&w.RacesEntered, &w.Wins, &w.Places, &w.TotalWagered, &w.TotalWon)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get wallet %s: %w", w.Address, err)
	}
	return &w, nil
}

// requireRace turns a no-op conditional update into ErrNotFound when the race
// does not exist, and into nil otherwise.
func (r *RaceRepository) requireRace(ctx context.Context, id int64) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM races WHERE race_id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check race %d: %w", id, err)
	}
	if !exists {
		return storage.ErrNotFound
	}
	return nil
}

func (r *RaceRepository) observe(operation string, err error, started time.Time) {
	if r.metrics != nil {
		r.metrics.Observe(operation, err, started)
	}
}

func queryLimit(limit int) int {
	if limit <= 0 {
		return math.MaxInt32
	}
	return limit
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

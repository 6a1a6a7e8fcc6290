// Package memory provides in-memory race stores for tests and local runs.
package memory

import (
	"context"
	"math/big"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
	"github.com/goodnatureofminers/ratrace-oracle/internal/storage"
)

type raceEntry struct {
	race         *model.Race
	claimedUntil *time.Time
}

type walletEntry struct {
	stats   model.WalletStats
	wagered *big.Int
	won     *big.Int
}

// RaceStore is an in-memory implementation of the race repository.
type RaceStore struct {
	mu      sync.RWMutex
	races   map[uint64]*raceEntry
	rats    map[uint64]*model.RatRecord
	wallets map[string]*walletEntry
}

// NewRaceStore creates an empty store.
func NewRaceStore() *RaceStore {
	return &RaceStore{
		races:   make(map[uint64]*raceEntry),
		rats:    make(map[uint64]*model.RatRecord),
		wallets: make(map[string]*walletEntry),
	}
}

// FindByRaceID returns a copy of the race.
func (s *RaceStore) FindByRaceID(_ context.Context, raceID uint64) (*model.Race, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.races[raceID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return e.race.Clone(), nil
}

// UpsertRace stores race unless it already exists. Existing races are never
// overwritten.
func (s *RaceStore) UpsertRace(_ context.Context, race *model.Race) (bool, error) {
	if race == nil || !race.Status.Valid() {
		return false, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.races[race.RaceID]; exists {
		return false, nil
	}
	c := race.Clone()
	if c.PrizePool == nil {
		c.PrizePool = new(big.Int)
	}
	if c.EntryFee == nil {
		c.EntryFee = new(big.Int)
	}
	s.races[race.RaceID] = &raceEntry{race: c}
	return true, nil
}

// UpdateStatusIf moves the race to `to` when its status is one of from and the
// lifecycle allows it.
func (s *RaceStore) UpdateStatusIf(_ context.Context, raceID uint64, from []model.RaceStatus, to model.RaceStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.races[raceID]
	if !ok {
		return false, storage.ErrNotFound
	}
	if !slices.Contains(from, e.race.Status) || !e.race.Status.CanTransitionTo(to) {
		return false, nil
	}
	e.race.Status = to
	return true, nil
}

// EnterRace appends entry, adds fee to the pool and takes the rat's racing lock
// in one step. Re-entering the same racer and rat returns the race unchanged.
func (s *RaceStore) EnterRace(_ context.Context, raceID uint64, entry model.Participant, fee *big.Int) (*model.Race, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.races[raceID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	race := e.race

	if p, ok := race.Participant(entry.RatTokenID); ok {
		if model.SameAddress(p.RacerAddress, entry.RacerAddress) {
			return race.Clone(), nil
		}
		return nil, storage.ErrDuplicateEntry
	}
	if race.HasRacer(entry.RacerAddress) {
		return nil, storage.ErrDuplicateEntry
	}
	if race.Status != model.RaceActive || len(race.Participants) >= model.RaceSize {
		return nil, storage.ErrRaceClosed
	}

	rat := s.rat(entry.RatTokenID)
	if rat.CurrentRaceID != nil && *rat.CurrentRaceID != raceID {
		return nil, storage.ErrRatBusy
	}
	id := raceID
	rat.CurrentRaceID = &id
	rat.Owner = model.NormalizeAddress(entry.RacerAddress)
	rat.RacesEntered++

	if fee == nil {
		fee = new(big.Int)
	}
	w := s.wallet(entry.RacerAddress)
	w.stats.RacesEntered++
	w.wagered.Add(w.wagered, fee)

	entry.RacerAddress = model.NormalizeAddress(entry.RacerAddress)
	entry.FinishPosition = nil
	race.Participants = append(race.Participants, entry)
	race.PrizePool = new(big.Int).Add(race.PrizePool, fee)
	if len(race.Participants) == model.RaceSize {
		race.Status = model.RaceFull
	}
	return race.Clone(), nil
}

// StartRace moves a full field to Started.
func (s *RaceStore) StartRace(_ context.Context, raceID uint64, startedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.races[raceID]
	if !ok {
		return false, storage.ErrNotFound
	}
	r := e.race
	if (r.Status != model.RaceActive && r.Status != model.RaceFull) || len(r.Participants) != model.RaceSize {
		return false, nil
	}
	r.Status = model.RaceStarted
	r.StartedAt = &startedAt
	return true, nil
}

// SaveSimulation stores sim only if no result exists yet.
func (s *RaceStore) SaveSimulation(_ context.Context, raceID uint64, sim *model.SimulationResult, settleAfter *time.Time) (bool, error) {
	if sim == nil {
		return false, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.races[raceID]
	if !ok {
		return false, storage.ErrNotFound
	}
	if e.race.Simulation != nil || e.race.Status.Terminal() {
		return false, nil
	}
	e.race.Simulation = sim.Clone()
	if settleAfter != nil {
		at := *settleAfter
		e.race.SettleAfter = &at
	}
	return true, nil
}

// ClaimSettlement takes the settlement lease and counts an attempt.
func (s *RaceStore) ClaimSettlement(_ context.Context, raceID uint64, now time.Time, lease time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.races[raceID]
	if !ok {
		return false, storage.ErrNotFound
	}
	r := e.race
	if r.Status != model.RaceStarted || r.SettlementTx != "" || r.Simulation == nil {
		return false, nil
	}
	if e.claimedUntil != nil && e.claimedUntil.After(now) {
		return false, nil
	}
	until := now.Add(lease)
	e.claimedUntil = &until
	r.SettlementAttempts++
	return true, nil
}

// RecordSettlementTx stores the submitted transaction and clears any earlier failure.
func (s *RaceStore) RecordSettlementTx(_ context.Context, raceID uint64, txHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.races[raceID]
	if !ok {
		return storage.ErrNotFound
	}
	e.race.SettlementTx = txHash
	e.race.FinishError = nil
	return nil
}

// RecordFinishError stores a failed attempt and releases the lease.
func (s *RaceStore) RecordFinishError(_ context.Context, raceID uint64, finishErr model.FinishError) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.races[raceID]
	if !ok {
		return storage.ErrNotFound
	}
	if e.race.Status != model.RaceStarted {
		return nil
	}
	fe := finishErr
	e.race.FinishError = &fe
	e.race.SettlementTx = ""
	e.claimedUntil = nil
	return nil
}

// CompleteRace finalizes a started race exactly once.
func (s *RaceStore) CompleteRace(_ context.Context, raceID uint64, outcome model.RaceOutcome) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.races[raceID]
	if !ok {
		return false, storage.ErrNotFound
	}
	r := e.race
	if r.Status != model.RaceStarted {
		return false, nil
	}

	for _, a := range outcome.Awards {
		for i := range r.Participants {
			if r.Participants[i].RatTokenID == a.TokenID {
				pos := a.Position
				r.Participants[i].FinishPosition = &pos
			}
		}

		rat := s.rat(a.TokenID)
		switch {
		case a.Position == 1:
			rat.Wins++
			rat.Places++
		case model.IsPlace(a.Position):
			rat.Places++
		default:
			rat.Losses++
		}
		rat.XP += a.XP
		rat.Level = model.LevelForXP(rat.XP)
		if rat.CurrentRaceID != nil && *rat.CurrentRaceID == raceID {
			rat.CurrentRaceID = nil
		}

		w := s.wallet(a.Racer)
		if a.Position == 1 {
			w.stats.Wins++
		}
		if model.IsPlace(a.Position) {
			w.stats.Places++
		}
		if a.Prize != nil {
			w.won.Add(w.won, a.Prize)
		}
	}

	r.Status = model.RaceFinished
	if r.SettlementTx == "" {
		r.SettlementTx = outcome.SettlementTx
	}
	completed := outcome.CompletedAt
	r.CompletedAt = &completed
	e.claimedUntil = nil
	return true, nil
}

// CancelRace cancels an open race, empties the pool, refunds every entrant's
// wallet aggregates and releases every rat lock.
func (s *RaceStore) CancelRace(_ context.Context, raceID uint64, cancelledAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.races[raceID]
	if !ok {
		return false, storage.ErrNotFound
	}
	r := e.race
	if !r.Status.CanTransitionTo(model.RaceCancelled) {
		return false, nil
	}
	for _, p := range r.Participants {
		if rat, ok := s.rats[p.RatTokenID]; ok && rat.CurrentRaceID != nil && *rat.CurrentRaceID == raceID {
			rat.CurrentRaceID = nil
		}
		if w, ok := s.wallets[model.NormalizeAddress(p.RacerAddress)]; ok {
			if w.stats.RacesEntered > 0 {
				w.stats.RacesEntered--
			}
			if r.EntryFee != nil {
				w.wagered.Sub(w.wagered, r.EntryFee)
				if w.wagered.Sign() < 0 {
					w.wagered.SetInt64(0)
				}
			}
		}
	}
	r.Status = model.RaceCancelled
	r.PrizePool = new(big.Int)
	r.CompletedAt = &cancelledAt
	return true, nil
}

// PendingSettlements lists started races that are due and have neither a
// settlement transaction, a recorded failure nor a live lease.
func (s *RaceStore) PendingSettlements(_ context.Context, now time.Time, maxAttempts, limit int) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []uint64
	for id, e := range s.races {
		r := e.race
		switch {
		case r.Status != model.RaceStarted, r.Simulation == nil, r.SettlementTx != "", r.FinishError != nil:
			continue
		case r.SettleAfter != nil && r.SettleAfter.After(now):
			continue
		case maxAttempts > 0 && r.SettlementAttempts >= maxAttempts:
			continue
		case e.claimedUntil != nil && e.claimedUntil.After(now):
			continue
		}
		ids = append(ids, id)
	}
	return limitIDs(ids, limit), nil
}

// AwaitingConfirmation lists started races with a submitted settlement.
func (s *RaceStore) AwaitingConfirmation(_ context.Context, limit int) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []uint64
	for id, e := range s.races {
		if e.race.Status == model.RaceStarted && e.race.SettlementTx != "" {
			ids = append(ids, id)
		}
	}
	return limitIDs(ids, limit), nil
}

// FindRat returns the career record of a rat.
func (s *RaceStore) FindRat(_ context.Context, tokenID uint64) (*model.RatRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rat, ok := s.rats[tokenID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *rat
	if rat.CurrentRaceID != nil {
		id := *rat.CurrentRaceID
		c.CurrentRaceID = &id
	}
	return &c, nil
}

// FindWallet returns the aggregates of a racer address.
func (s *RaceStore) FindWallet(_ context.Context, address string) (*model.WalletStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wallets[model.NormalizeAddress(address)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := w.stats
	c.TotalWagered = w.wagered.String()
	c.TotalWon = w.won.String()
	return &c, nil
}

// rat must be called with the write lock held.
func (s *RaceStore) rat(tokenID uint64) *model.RatRecord {
	rat, ok := s.rats[tokenID]
	if !ok {
		rat = &model.RatRecord{TokenID: tokenID, Level: 1}
		s.rats[tokenID] = rat
	}
	return rat
}

// wallet must be called with the write lock held.
func (s *RaceStore) wallet(address string) *walletEntry {
	key := model.NormalizeAddress(address)
	w, ok := s.wallets[key]
	if !ok {
		w = &walletEntry{
			stats:   model.WalletStats{Address: key},
			wagered: new(big.Int),
			won:     new(big.Int),
		}
		s.wallets[key] = w
	}
	return w
}

func limitIDs(ids []uint64, limit int) []uint64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

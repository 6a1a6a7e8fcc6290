// Package model defines the race settlement domain models.
package model

import (
	"math/big"
	"time"
)

// RaceStatus describes the lifecycle stage of a race.
type RaceStatus string

var (
	// RaceActive marks a race that accepts entries.
	RaceActive RaceStatus = "Active"
	// RaceFull marks a race with all six slots taken.
	RaceFull RaceStatus = "Full"
	// RaceStarted marks a race whose start was observed on-chain.
	RaceStarted RaceStatus = "Started"
	// RaceFinished marks a race whose settlement is confirmed.
	RaceFinished RaceStatus = "Finished"
	// RaceCancelled marks a race cancelled before it started.
	RaceCancelled RaceStatus = "Cancelled"
)

// RaceSize is the number of entries a race needs before it can start.
const RaceSize = 6

var statusRank = map[RaceStatus]int{
	RaceActive:   0,
	RaceFull:     1,
	RaceStarted:  2,
	RaceFinished: 3,
}

// Valid reports whether s is a known status.
func (s RaceStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok || s == RaceCancelled
}

// Terminal reports whether no further transition is possible.
func (s RaceStatus) Terminal() bool {
	return s == RaceFinished || s == RaceCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Transitions are monotonic along Active, Full, Started, Finished; Cancelled is
// reachable only from Active or Full.
func (s RaceStatus) CanTransitionTo(next RaceStatus) bool {
	if next == RaceCancelled {
		return s == RaceActive || s == RaceFull
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Participant is a single entry in a race.
type Participant struct {
	RacerAddress   string
	RatTokenID     uint64
	FinishPosition *int
	Stats          RatStats
	EnteredAt      time.Time
}

// FinishError records a failed settlement attempt.
type FinishError struct {
	Message string
	At      time.Time
}

// Race is the aggregate root mirrored from the race contract.
type Race struct {
	RaceID     uint64
	TrackID    uint64
	EntryToken string
	EntryFee   *big.Int
	Creator    string

	Status       RaceStatus
	Participants []Participant
	PrizePool    *big.Int

	Simulation         *SimulationResult
	SettlementTx       string
	FinishError        *FinishError
	SettleAfter        *time.Time
	SettlementAttempts int

	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// Participant returns the entry for tokenID.
func (r *Race) Participant(tokenID uint64) (Participant, bool) {
	for _, p := range r.Participants {
		if p.RatTokenID == tokenID {
			return p, true
		}
	}
	return Participant{}, false
}

// HasRacer reports whether racer already holds a slot.
func (r *Race) HasRacer(racer string) bool {
	for _, p := range r.Participants {
		if SameAddress(p.RacerAddress, racer) {
			return true
		}
	}
	return false
}

// TokenIDs returns participant token ids in entry order.
func (r *Race) TokenIDs() []uint64 {
	ids := make([]uint64, 0, len(r.Participants))
	for _, p := range r.Participants {
		ids = append(ids, p.RatTokenID)
	}
	return ids
}

// Stats returns the entry-time stat snapshots in entry order.
func (r *Race) Stats() []RatStats {
	stats := make([]RatStats, 0, len(r.Participants))
	for _, p := range r.Participants {
		stats = append(stats, p.Stats)
	}
	return stats
}

// Clone returns a deep copy of the race.
func (r *Race) Clone() *Race {
	if r == nil {
		return nil
	}
	c := *r
	c.EntryFee = cloneInt(r.EntryFee)
	c.PrizePool = cloneInt(r.PrizePool)
	c.Participants = make([]Participant, len(r.Participants))
	for i, p := range r.Participants {
		c.Participants[i] = p
		if p.FinishPosition != nil {
			pos := *p.FinishPosition
			c.Participants[i].FinishPosition = &pos
		}
	}
	c.Simulation = r.Simulation.Clone()
	if r.FinishError != nil {
		fe := *r.FinishError
		c.FinishError = &fe
	}
	c.SettleAfter = cloneTime(r.SettleAfter)
	c.StartedAt = cloneTime(r.StartedAt)
	c.CompletedAt = cloneTime(r.CompletedAt)
	return &c
}

func cloneInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

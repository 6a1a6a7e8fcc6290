package model

import (
	"math/big"
	"time"
)

// PrizeSplit is the distribution of a prize pool.
type PrizeSplit struct {
	Total      *big.Int
	CreatorFee *big.Int
	// Prizes is indexed by finish position minus one; entries 3..5 are zero.
	Prizes [RaceSize]*big.Int
}

// Prize returns the payout for a 1-based finish position.
func (p PrizeSplit) Prize(position int) *big.Int {
	if position < 1 || position > RaceSize || p.Prizes[position-1] == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(p.Prizes[position-1])
}

// Award is the per-participant result applied when a race finalizes.
type Award struct {
	TokenID  uint64
	Racer    string
	Position int
	XP       int
	Prize    *big.Int
	Wagered  *big.Int
}

// RaceOutcome is everything needed to finalize a settled race.
type RaceOutcome struct {
	Positions    []uint64
	Prizes       PrizeSplit
	Awards       []Award
	SettlementTx string
	CompletedAt  time.Time
}

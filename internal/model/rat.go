package model

import (
	"fmt"
	"strings"
)

// Bloodline names a competitor archetype.
type Bloodline string

var (
	CitySlicker  Bloodline = "City Slicker"
	SewerDweller Bloodline = "Sewer Dweller"
	LabEscapee   Bloodline = "Lab Escapee"
	FieldMouse   Bloodline = "Field Mouse"
	HarborRat    Bloodline = "Harbor Rat"
	AlleyBrawler Bloodline = "Alley Brawler"
)

// Bloodlines lists the known archetypes in canonical order.
var Bloodlines = []Bloodline{CitySlicker, SewerDweller, LabEscapee, FieldMouse, HarborRat, AlleyBrawler}

const (
	// MinStat is the lowest valid stamina, agility or speed value.
	MinStat = 50
	// MaxStat is the highest valid stamina, agility or speed value.
	MaxStat = 100
)

// RatStats is the per-race simulation input for one rat.
type RatStats struct {
	TokenID   uint64    `json:"tokenId"`
	Owner     string    `json:"owner"`
	Stamina   int       `json:"stamina"`
	Agility   int       `json:"agility"`
	Speed     int       `json:"speed"`
	Bloodline Bloodline `json:"bloodline"`
}

// Validate checks that every stat lies in [MinStat, MaxStat].
func (s RatStats) Validate() error {
	for name, v := range map[string]int{"stamina": s.Stamina, "agility": s.Agility, "speed": s.Speed} {
		if v < MinStat || v > MaxStat {
			return fmt.Errorf("rat %d %s %d out of range [%d,%d]", s.TokenID, name, v, MinStat, MaxStat)
		}
	}
	return nil
}

// RatRecord is the persisted per-rat career record.
type RatRecord struct {
	TokenID       uint64
	Owner         string
	CurrentRaceID *uint64
	RacesEntered  int
	Wins          int
	Places        int
	Losses        int
	XP            int
	Level         int
}

// WalletStats aggregates a racer address across races.
type WalletStats struct {
	Address      string
	RacesEntered int
	Wins         int
	Places       int
	TotalWagered string
	TotalWon     string
}

// NormalizeAddress lower-cases a hex address for comparisons and storage keys.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// SameAddress compares two hex addresses case-insensitively.
func SameAddress(a, b string) bool {
	return NormalizeAddress(a) == NormalizeAddress(b)
}

// Package simulation computes race outcomes from competitor statistics.
package simulation

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
)

const (
	// SegmentLength is the length of each race segment in track units.
	SegmentLength = 100.0

	staminaWeight = 0.3
	agilityWeight = 0.4
	speedWeight   = 0.3

	// Variance half-width at agility 100 and the extra width added at agility 50.
	minVarianceBand   = 0.02
	agilityBandRange  = 0.06
	unknownBandWidth  = 0.05
	maxFatiguePenalty = 0.15

	podiumSize = 3
)

// Weighting documents the canonical base-score formula.
const Weighting = "stamina 0.3 / agility 0.4 / speed 0.3"

var (
	// ErrFieldSize is returned when the field does not have exactly six rats.
	ErrFieldSize = errors.New("race requires exactly six rats")
	// ErrDuplicateRat is returned when a token id appears twice.
	ErrDuplicateRat = errors.New("duplicate rat in field")
)

// Engine runs race simulations. It holds no state between calls.
type Engine struct{}

// New returns an Engine.
func New() *Engine {
	return &Engine{}
}

type runner struct {
	stats    model.RatStats
	profile  profile
	base     float64
	band     float64
	speeds   [model.SegmentCount]float64
	finish   float64
	matchups []model.Matchup
}

// Simulate computes the outcome of raceID for the six rats starting at start.
// Given the same inputs and seed the result is identical.
func (e *Engine) Simulate(raceID uint64, rats []model.RatStats, start time.Time, seed Seed) (*model.SimulationResult, error) {
	if len(rats) != model.RaceSize {
		return nil, fmt.Errorf("race %d: %w: got %d", raceID, ErrFieldSize, len(rats))
	}
	seen := make(map[uint64]struct{}, len(rats))
	for _, r := range rats {
		if _, dup := seen[r.TokenID]; dup {
			return nil, fmt.Errorf("race %d: %w: token %d", raceID, ErrDuplicateRat, r.TokenID)
		}
		seen[r.TokenID] = struct{}{}
	}

	// Draw order follows token id so the entry order cannot influence luck.
	field := make([]*runner, len(rats))
	for i, r := range rats {
		field[i] = &runner{stats: r, profile: profileFor(r.Bloodline)}
	}
	sort.Slice(field, func(i, j int) bool { return field[i].stats.TokenID < field[j].stats.TokenID })

	composition := compose(rats)
	tod := TimeOfDayFor(start)
	rng := rand.New(rand.NewChaCha8(seed))

	var warnings []string
	for _, r := range field {
		if !r.profile.known {
			warnings = append(warnings, fmt.Sprintf("rat %d has unknown bloodline %q: using neutral profile", r.stats.TokenID, r.stats.Bloodline))
		}
		r.base = baseScore(r.stats) * r.profile.multiplier
		r.band = varianceBand(r.stats.Agility, r.profile.known)
	}

	for _, r := range field {
		counter := counterMultiplier(r, field)
		for seg := 0; seg < model.SegmentCount; seg++ {
			variance := 1 + (rng.Float64()*2-1)*r.band
			speed := r.base *
				r.profile.segments[seg] *
				variance *
				fatigue(r.stats.Stamina, seg) *
				tod.Adjustment *
				counter
			r.speeds[seg] = speed
			r.finish += SegmentLength / speed
		}
	}

	sort.SliceStable(field, func(i, j int) bool {
		if field[i].finish != field[j].finish {
			return field[i].finish < field[j].finish
		}
		return field[i].stats.TokenID < field[j].stats.TokenID
	})

	res := &model.SimulationResult{
		Positions:     make([]uint64, 0, len(field)),
		SegmentSpeeds: make(map[uint64][model.SegmentCount]float64, len(field)),
		FinishTimes:   make(map[uint64]float64, len(field)),
		Analysis: model.Analysis{
			Seed:        seed.String(),
			Weighting:   Weighting,
			TimeOfDay:   tod,
			Composition: composition,
			Warnings:    warnings,
		},
	}
	for i, r := range field {
		id := r.stats.TokenID
		res.Positions = append(res.Positions, id)
		res.SegmentSpeeds[id] = r.speeds
		res.FinishTimes[id] = r.finish
		res.Analysis.Matchups = append(res.Analysis.Matchups, r.matchups...)
		if i < podiumSize {
			res.Winners = append(res.Winners, model.Winner{
				Position:   i + 1,
				TokenID:    id,
				Owner:      r.stats.Owner,
				Bloodline:  r.stats.Bloodline,
				FinishTime: r.finish,
			})
		}
	}
	return res, nil
}

func baseScore(s model.RatStats) float64 {
	return staminaWeight*float64(s.Stamina) + agilityWeight*float64(s.Agility) + speedWeight*float64(s.Speed)
}

// varianceBand narrows as agility rises: 0.02 at 100, 0.08 at 50.
func varianceBand(agility int, known bool) float64 {
	if !known {
		return unknownBandWidth
	}
	deficit := float64(model.MaxStat-clampStat(agility)) / float64(model.MaxStat-model.MinStat)
	return minVarianceBand + deficit*agilityBandRange
}

// fatigue grows with segment index and with missing stamina.
func fatigue(stamina, segment int) float64 {
	progress := float64(segment) / float64(model.SegmentCount-1)
	deficit := float64(model.MaxStat-clampStat(stamina)) / float64(model.MaxStat)
	return 1 - progress*deficit*maxFatiguePenalty
}

func counterMultiplier(r *runner, field []*runner) float64 {
	m := 1.0
	for _, opp := range field {
		if opp == r {
			continue
		}
		if c, ok := r.profile.counters[opp.stats.Bloodline]; ok {
			m *= c
			r.matchups = append(r.matchups, model.Matchup{
				TokenID:    r.stats.TokenID,
				Against:    opp.stats.Bloodline,
				Multiplier: c,
			})
		}
	}
	return m
}

func clampStat(v int) int {
	if v < model.MinStat {
		return model.MinStat
	}
	if v > model.MaxStat {
		return model.MaxStat
	}
	return v
}

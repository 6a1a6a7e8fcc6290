package simulation

import "github.com/goodnatureofminers/ratrace-oracle/internal/model"

// profile is the fixed behaviour of a bloodline.
type profile struct {
	multiplier float64
	// segments holds the per-segment perk multipliers.
	segments [model.SegmentCount]float64
	// counters maps an opposing bloodline to the multiplier applied once per
	// opposing rat of that bloodline.
	counters map[model.Bloodline]float64
	known    bool
}

var profiles = map[model.Bloodline]profile{
	// Balanced city runner, slight edge over open-field rats.
	model.CitySlicker: {
		multiplier: 1.00,
		segments:   [model.SegmentCount]float64{1.00, 1.02, 1.02, 1.00, 0.98},
		counters:   map[model.Bloodline]float64{model.FieldMouse: 1.03},
		known:      true,
	},
	// Weak start, surges late.
	model.SewerDweller: {
		multiplier: 0.98,
		segments:   [model.SegmentCount]float64{0.94, 0.97, 1.00, 1.05, 1.09},
		counters:   map[model.Bloodline]float64{model.LabEscapee: 1.04, model.AlleyBrawler: 0.98},
		known:      true,
	},
	// Explosive early, fades.
	model.LabEscapee: {
		multiplier: 1.03,
		segments:   [model.SegmentCount]float64{1.10, 1.06, 1.00, 0.95, 0.91},
		counters:   map[model.Bloodline]float64{model.CitySlicker: 1.03},
		known:      true,
	},
	// Peaks mid-race.
	model.FieldMouse: {
		multiplier: 0.99,
		segments:   [model.SegmentCount]float64{0.98, 1.04, 1.07, 1.01, 0.95},
		counters:   map[model.Bloodline]float64{model.HarborRat: 1.04},
		known:      true,
	},
	// Steady grinder.
	model.HarborRat: {
		multiplier: 1.01,
		segments:   [model.SegmentCount]float64{0.97, 0.99, 1.01, 1.03, 1.04},
		counters:   map[model.Bloodline]float64{model.AlleyBrawler: 1.03, model.LabEscapee: 0.98},
		known:      true,
	},
	// Fast out of the gate, holds on.
	model.AlleyBrawler: {
		multiplier: 1.02,
		segments:   [model.SegmentCount]float64{1.06, 1.03, 0.99, 0.98, 1.00},
		counters:   map[model.Bloodline]float64{model.SewerDweller: 1.04},
		known:      true,
	},
}

var flatProfile = profile{
	multiplier: 1.0,
	segments:   [model.SegmentCount]float64{1, 1, 1, 1, 1},
}

func profileFor(b model.Bloodline) profile {
	if p, ok := profiles[b]; ok {
		return p
	}
	return flatProfile
}

// Known reports whether b is one of the six archetypes.
func Known(b model.Bloodline) bool {
	return profileFor(b).known
}

package model

// SegmentCount is the number of fixed-length race segments.
const SegmentCount = 5

// Winner summarises one podium finisher.
type Winner struct {
	Position   int       `json:"position"`
	TokenID    uint64    `json:"tokenId"`
	Owner      string    `json:"owner"`
	Bloodline  Bloodline `json:"bloodline"`
	FinishTime float64   `json:"finishTime"`
}

// TimeOfDay is the start-time window applied to every segment.
type TimeOfDay struct {
	Name       string  `json:"name"`
	Effect     string  `json:"effect"`
	Adjustment float64 `json:"adjustment"`
}

// Composition describes the field a race was run with.
type Composition struct {
	BloodlineCounts map[Bloodline]int `json:"bloodlineCounts"`
	AvgStamina      float64           `json:"avgStamina"`
	AvgAgility      float64           `json:"avgAgility"`
	AvgSpeed        float64           `json:"avgSpeed"`
	Insights        []string          `json:"insights"`
}

// Matchup records a counter multiplier that applied during the race.
type Matchup struct {
	TokenID    uint64    `json:"tokenId"`
	Against    Bloodline `json:"against"`
	Multiplier float64   `json:"multiplier"`
}

// Analysis carries the explanatory part of a simulation.
type Analysis struct {
	Seed        string      `json:"seed"`
	Weighting   string      `json:"weighting"`
	TimeOfDay   TimeOfDay   `json:"timeOfDay"`
	Composition Composition `json:"composition"`
	Matchups    []Matchup   `json:"matchups,omitempty"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// SimulationResult is the computed outcome of a race.
type SimulationResult struct {
	Positions     []uint64                         `json:"positions"`
	SegmentSpeeds map[uint64][SegmentCount]float64 `json:"segmentSpeeds"`
	FinishTimes   map[uint64]float64               `json:"finishTimes"`
	Winners       []Winner                         `json:"winners"`
	Analysis      Analysis                         `json:"analysis"`
}

// PositionOf returns the 1-based finish position of tokenID, or 0.
func (r *SimulationResult) PositionOf(tokenID uint64) int {
	for i, id := range r.Positions {
		if id == tokenID {
			return i + 1
		}
	}
	return 0
}

// Clone returns a deep copy of the result.
func (r *SimulationResult) Clone() *SimulationResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Positions = append([]uint64(nil), r.Positions...)
	c.SegmentSpeeds = make(map[uint64][SegmentCount]float64, len(r.SegmentSpeeds))
	for k, v := range r.SegmentSpeeds {
		c.SegmentSpeeds[k] = v
	}
	c.FinishTimes = make(map[uint64]float64, len(r.FinishTimes))
	for k, v := range r.FinishTimes {
		c.FinishTimes[k] = v
	}
	c.Winners = append([]Winner(nil), r.Winners...)
	c.Analysis.Composition.BloodlineCounts = make(map[Bloodline]int, len(r.Analysis.Composition.BloodlineCounts))
	for k, v := range r.Analysis.Composition.BloodlineCounts {
		c.Analysis.Composition.BloodlineCounts[k] = v
	}
	c.Analysis.Composition.Insights = append([]string(nil), r.Analysis.Composition.Insights...)
	c.Analysis.Matchups = append([]Matchup(nil), r.Analysis.Matchups...)
	c.Analysis.Warnings = append([]string(nil), r.Analysis.Warnings...)
	return &c
}

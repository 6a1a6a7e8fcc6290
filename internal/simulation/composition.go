package simulation

import (
	"fmt"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
)

const (
	dominanceThreshold = 3
	lowStamina         = 65.0
	highAgility        = 85.0
	highSpeed          = 85.0
)

func compose(rats []model.RatStats) model.Composition {
	c := model.Composition{
		BloodlineCounts: make(map[model.Bloodline]int),
	}
	if len(rats) == 0 {
		return c
	}

	var stamina, agility, speed int
	for _, r := range rats {
		c.BloodlineCounts[r.Bloodline]++
		stamina += r.Stamina
		agility += r.Agility
		speed += r.Speed
	}
	n := float64(len(rats))
	c.AvgStamina = float64(stamina) / n
	c.AvgAgility = float64(agility) / n
	c.AvgSpeed = float64(speed) / n

	// Iterate in canonical order so insights are stable.
	for _, b := range model.Bloodlines {
		count := c.BloodlineCounts[b]
		switch {
		case count == len(rats):
			c.Insights = append(c.Insights, fmt.Sprintf("Mirror match: all %d racers are %s, expect a photo finish", count, b))
		case count >= dominanceThreshold:
			c.Insights = append(c.Insights, fmt.Sprintf("%s dominates the field (%d of %d): counter-picks may perform well", b, count, len(rats)))
		}
		if count > 0 {
			for _, countered := range countersOf(b) {
				if c.BloodlineCounts[countered] > 0 {
					c.Insights = append(c.Insights, fmt.Sprintf("%s holds a matchup edge over %s in this field", b, countered))
				}
			}
		}
	}
	if c.AvgStamina < lowStamina {
		c.Insights = append(c.Insights, "Low-stamina field: expect a late-race fade")
	}
	if c.AvgAgility >= highAgility {
		c.Insights = append(c.Insights, "Agile field: tight variance, form should hold")
	}
	if c.AvgSpeed >= highSpeed {
		c.Insights = append(c.Insights, "Fast field: early segments will be decisive")
	}
	return c
}

// countersOf returns the bloodlines b beats, in canonical order.
func countersOf(b model.Bloodline) []model.Bloodline {
	p := profileFor(b)
	var out []model.Bloodline
	for _, other := range model.Bloodlines {
		if m, ok := p.counters[other]; ok && m > 1 {
			out = append(out, other)
		}
	}
	return out
}

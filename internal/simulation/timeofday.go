package simulation

import (
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
)

type window struct {
	fromHour int // inclusive
	toHour   int // exclusive
	tod      model.TimeOfDay
}

var windows = []window{
	{0, 5, model.TimeOfDay{Name: "Witching Hour", Effect: "Cold track, the whole field runs slightly slower", Adjustment: 0.98}},
	{5, 11, model.TimeOfDay{Name: "Morning Rush", Effect: "Fresh legs and cool air give every racer a boost", Adjustment: 1.03}},
	{11, 16, model.TimeOfDay{Name: "Midday Heat", Effect: "Heat saps every racer's pace", Adjustment: 0.95}},
	{16, 20, model.TimeOfDay{Name: "Golden Hour", Effect: "Ideal conditions, a small lift for everyone", Adjustment: 1.01}},
	{20, 24, model.TimeOfDay{Name: "Night Racing", Effect: "Floodlit track, neutral conditions", Adjustment: 1.00}},
}

// TimeOfDayFor returns the window covering start's UTC hour.
func TimeOfDayFor(start time.Time) model.TimeOfDay {
	hour := start.UTC().Hour()
	for _, w := range windows {
		if hour >= w.fromHour && hour < w.toHour {
			return w.tod
		}
	}
	return windows[len(windows)-1].tod
}

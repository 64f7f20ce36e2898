package history

import (
	"strings"
	"time"
)

// AggregateReadings combines readings from multiple sources into one.
// Numeric fields are averaged; the description is selected by majority
// (first seen wins a tie); the newest timestamp is kept.
func AggregateReadings(readings []Reading) Reading {
	if len(readings) == 0 {
		return Reading{Timestamp: time.Now().UTC()}
	}

	var (
		sumTemp  float64
		sumFeels float64
		sumHum   float64
		sumPress float64
		sumWind  float64
	)

	descCounts := make(map[string]int)
	bestDesc := ""
	bestCount := 0

	sources := make([]string, 0, len(readings))
	var newestTS time.Time

	for _, r := range readings {
		sumTemp += r.Temperature
		sumFeels += r.FeelsLike
		sumHum += r.Humidity
		sumPress += r.Pressure
		sumWind += r.WindSpeed

		descCounts[r.Description]++
		if descCounts[r.Description] > bestCount {
			bestCount = descCounts[r.Description]
			bestDesc = r.Description
		}

		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}
		sources = append(sources, r.Source)
	}

	n := float64(len(readings))
	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	return Reading{
		Source:      strings.Join(sources, "+"),
		Timestamp:   newestTS,
		Temperature: sumTemp / n,
		FeelsLike:   sumFeels / n,
		Humidity:    sumHum / n,
		Pressure:    sumPress / n,
		WindSpeed:   sumWind / n,
		Description: bestDesc,
	}
}

package history

import (
	"math"
)

// ComputeStatistics summarizes a window of observations for trend display.
// The trend compares the newest temperature against the oldest. An empty
// window yields a zero-count result with an empty trend.
func ComputeStatistics(obs []Observation) Statistics {
	if len(obs) == 0 {
		return Statistics{}
	}

	min := obs[0].Temperature
	max := obs[0].Temperature
	sum := 0.0

	for _, o := range obs {
		if o.Temperature < min {
			min = o.Temperature
		}
		if o.Temperature > max {
			max = o.Temperature
		}
		sum += o.Temperature
	}

	first := obs[0].Temperature
	last := obs[len(obs)-1].Temperature

	trend := TrendSteady
	switch {
	case last > first:
		trend = TrendRising
	case last < first:
		trend = TrendFalling
	}

	avg := sum / float64(len(obs))

	return Statistics{
		Count:   len(obs),
		Average: math.Round(avg*10) / 10,
		Minimum: min,
		Maximum: max,
		Trend:   trend,
	}
}

package history

import (
	"math"
	"time"
)

// Derived holds feature values computed from a raw reading. Raw measurements
// tell only part of the story; these are the values the display layer shows
// next to them.
type Derived struct {
	HeatIndexC          float64 `json:"heatIndexC"`
	WindChillC          float64 `json:"windChillC"`
	ComfortIndex        float64 `json:"comfortIndex"`
	Severity            float64 `json:"severity"`
	TemperatureCategory string  `json:"temperatureCategory"`
	HumidityCategory    string  `json:"humidityCategory"`
}

// DeriveFeatures computes all derived features for a reading.
func DeriveFeatures(r Reading) Derived {
	return Derived{
		HeatIndexC:          HeatIndexC(r.Temperature, r.Humidity),
		WindChillC:          WindChillC(r.Temperature, r.WindSpeed),
		ComfortIndex:        ComfortIndex(r.Temperature, r.Humidity, r.WindSpeed),
		Severity:            WeatherSeverity(r.Temperature, r.WindSpeed, r.Humidity, r.Pressure),
		TemperatureCategory: TemperatureCategory(r.Temperature),
		HumidityCategory:    HumidityCategory(r.Humidity),
	}
}

// HeatIndexC computes how hot it feels given humidity, in Celsius. The
// regression operates in Fahrenheit; below 80 °F the air temperature is
// returned unchanged.
func HeatIndexC(tempC, humidity float64) float64 {
	tempF := tempC*9/5 + 32
	if tempF < 80 {
		return tempC
	}

	hi := 0.5 * (tempF + 61.0 + (tempF-68.0)*1.2 + humidity*0.094)
	if hi > 79 {
		hi = -42.379 + 2.04901523*tempF + 10.14333127*humidity -
			0.22475541*tempF*humidity - 0.00683783*tempF*tempF -
			0.05481717*humidity*humidity + 0.00122874*tempF*tempF*humidity +
			0.00085282*tempF*humidity*humidity - 0.00000199*tempF*tempF*humidity*humidity
	}

	return (hi - 32) * 5 / 9
}

// WindChillC computes how cold it feels given wind, in Celsius. The formula
// operates in Fahrenheit and mph and applies only below 50 °F with wind of
// at least 3 mph.
func WindChillC(tempC, windSpeedMS float64) float64 {
	tempF := tempC*9/5 + 32
	windMph := windSpeedMS * 2.237
	if tempF > 50 || windMph < 3 {
		return tempC
	}

	wc := 35.74 + 0.6215*tempF - 35.75*math.Pow(windMph, 0.16) +
		0.4275*tempF*math.Pow(windMph, 0.16)

	return (wc - 32) * 5 / 9
}

// ComfortIndex scores conditions from 0 (very uncomfortable) to 100 (very
// comfortable). Ideal conditions: 22.5 °C, 50 % humidity, a 2 m/s breeze.
func ComfortIndex(tempC, humidity, windSpeedMS float64) float64 {
	tempComfort := 100 - math.Abs(tempC-22.5)*4
	humidityComfort := 100 - math.Abs(humidity-50)*2
	windComfort := 100 - math.Abs(windSpeedMS-2)*10

	comfort := tempComfort*0.5 + humidityComfort*0.3 + windComfort*0.2
	return math.Max(0, math.Min(100, comfort))
}

// WeatherSeverity scores extreme conditions from 0 to 100.
func WeatherSeverity(tempC, windSpeedMS, humidity, pressure float64) float64 {
	severity := 0.0

	if tempC < -10 || tempC > 40 {
		severity += math.Abs(tempC-15) * 0.5
	}
	if windSpeedMS > 10 {
		severity += (windSpeedMS - 10) * 2
	}
	if humidity < 20 || humidity > 80 {
		severity += math.Abs(humidity-50) * 0.3
	}
	if pressure != 0 && (pressure < 1000 || pressure > 1030) {
		severity += math.Abs(pressure-1015) * 0.2
	}

	return math.Min(100, severity)
}

// TemperatureCategory buckets a temperature for display. Bin edges are
// right-inclusive.
func TemperatureCategory(tempC float64) string {
	switch {
	case tempC <= 0:
		return "Freezing"
	case tempC <= 10:
		return "Cold"
	case tempC <= 20:
		return "Cool"
	case tempC <= 30:
		return "Warm"
	default:
		return "Hot"
	}
}

// HumidityCategory buckets relative humidity for display.
func HumidityCategory(humidity float64) string {
	switch {
	case humidity <= 30:
		return "Dry"
	case humidity <= 60:
		return "Comfortable"
	case humidity <= 80:
		return "Humid"
	default:
		return "Very Humid"
	}
}

// DailySummary aggregates one calendar day of observations for a city.
type DailySummary struct {
	Date           string  `json:"date"`
	Count          int     `json:"count"`
	TemperatureAvg float64 `json:"temperatureAvg"`
	TemperatureMin float64 `json:"temperatureMin"`
	TemperatureMax float64 `json:"temperatureMax"`
}

// DailyAggregate groups observations by UTC calendar day, oldest day first.
// Averages are rounded to two decimals.
func DailyAggregate(obs []Observation) []DailySummary {
	type bucket struct {
		sum, min, max float64
		count         int
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for _, o := range obs {
		day := o.Timestamp.UTC().Format(time.DateOnly)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{min: o.Temperature, max: o.Temperature}
			buckets[day] = b
			order = append(order, day)
		}
		b.sum += o.Temperature
		b.count++
		if o.Temperature < b.min {
			b.min = o.Temperature
		}
		if o.Temperature > b.max {
			b.max = o.Temperature
		}
	}

	// Observations arrive in insertion order, which is chronological for an
	// append-only log, so first-seen day order is date order.
	out := make([]DailySummary, 0, len(order))
	for _, day := range order {
		b := buckets[day]
		out = append(out, DailySummary{
			Date:           day,
			Count:          b.count,
			TemperatureAvg: math.Round(b.sum/float64(b.count)*100) / 100,
			TemperatureMin: b.min,
			TemperatureMax: b.max,
		})
	}
	return out
}

package history

import (
	"math"
)

// Plausible ranges for a cleaned reading, in metric units.
const (
	minTemperatureC = -50
	maxTemperatureC = 60
)

// ValidateReading checks a provider reading against plausible physical
// ranges before it is accepted for storage.
func ValidateReading(r Reading) error {
	if math.IsNaN(r.Temperature) || math.IsInf(r.Temperature, 0) {
		return &ValidationError{Field: "temperature", Value: r.Temperature, Message: "must be a finite number"}
	}
	if r.Temperature < minTemperatureC || r.Temperature > maxTemperatureC {
		return &ValidationError{Field: "temperature", Value: r.Temperature, Message: "out of plausible range"}
	}
	if r.Humidity < 0 || r.Humidity > 100 {
		return &ValidationError{Field: "humidity", Value: r.Humidity, Message: "out of range 0-100"}
	}
	return nil
}

package history

import (
	"time"
)

// Location represents a logical place for which we track weather.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Observation is one recorded weather reading for a city, as persisted in
// the history log. Observations are immutable once written.
type Observation struct {
	Timestamp   time.Time `json:"timestamp"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
}

// Reading is a full normalized reading from a single weather data source.
// It carries more detail than the logged Observation; the extra fields go
// to the archive.
type Reading struct {
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"` // always UTC
	Temperature float64   `json:"temperatureC"`
	FeelsLike   float64   `json:"feelsLikeC"`
	Humidity    float64   `json:"humidityPercent"`
	Pressure    float64   `json:"pressureHpa"`
	WindSpeed   float64   `json:"windSpeedMs"`
	Description string    `json:"description"`
}

// Observation converts the reading to the compact logged form.
func (r Reading) Observation(city string) Observation {
	return Observation{
		Timestamp:   r.Timestamp,
		City:        city,
		Temperature: r.Temperature,
		Description: r.Description,
	}
}

// Statistics summarizes a history window for trend display.
type Statistics struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
	Trend   string  `json:"trend"`
}

// Trend values reported by ComputeStatistics.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendSteady  = "steady"
)

// Collection outcome recorded in the collection log.
const (
	StatusSuccess      = "success"
	StatusAPIError     = "api_error"
	StatusStorageError = "storage_error"
)

// CollectionEntry records one collection attempt for monitoring purposes.
type CollectionEntry struct {
	RunID          string    `json:"runId"`
	Timestamp      time.Time `json:"timestamp"`
	Location       Location  `json:"location"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	ResponseTimeMS int64     `json:"responseTimeMs"`
}

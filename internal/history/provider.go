package history

import (
	"context"
)

// Provider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI).
// Failures of the upstream source (network error, invalid response, rate
// limiting) stay inside the provider and its caller; they never reach the
// stores.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Reading, error)
}

// HistoryStore is the contract for the append-only observation log.
type HistoryStore interface {
	// Append writes one observation to the end of the log. It rejects an
	// empty city or a non-finite temperature with a *ValidationError before
	// any write occurs.
	Append(obs Observation) error

	// Recent returns up to count observations for the city, oldest first.
	// A city with no observations yields an empty slice, not an error.
	Recent(city string, count int) ([]Observation, error)
}

// Archiver is the contract for the richer reading archive and the
// collection-monitoring tables behind it.
type Archiver interface {
	SaveReading(loc Location, r Reading) error
	LatestReading(loc Location) (Reading, error)
	AddLocation(loc Location, lat, lon *float64) error
	ActiveLocations() ([]Location, error)
	LogCollection(e CollectionEntry) error
	CollectionLog(limit int) ([]CollectionEntry, error)
}

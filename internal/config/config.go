package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okrayum/weather-history/internal/history"
)

// AppConfig is the immutable process configuration, loaded once at startup
// and passed into the store and its collaborators at construction.
type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GeocoderAPIKey    string

	// HistoryFile is the append-only CSV observation log.
	HistoryFile string
	// ArchiveFile is the SQLite database holding full readings,
	// locations and the collection log.
	ArchiveFile string

	// FetchInterval controls how often scheduled collection runs.
	FetchInterval time.Duration

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	// HistoryWindow is the default number of observations served to the
	// chart and display consumers.
	HistoryWindow int

	// Locations seeded into the registry at startup.
	Locations []history.Location

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	cfg.HistoryFile = getenvDefault("WEATHER_HISTORY_FILE", "data/weather_history.csv")
	cfg.ArchiveFile = getenvDefault("WEATHER_ARCHIVE_FILE", "data/weather_archive.db")

	intervalStr := getenvDefault("FETCH_INTERVAL", "30m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.HistoryWindow = getenvInt("HISTORY_WINDOW", 7)
	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadSeedLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

func loadSeedLocations() ([]history.Location, error) {
	city := os.Getenv("WEATHER_LOCATION_CITY")
	if city == "" {
		return nil, nil
	}
	country := os.Getenv("WEATHER_LOCATION_COUNTRY")

	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if country != "" && len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}

	var locs []history.Location
	for i := range cities {
		loc := history.Location{City: strings.TrimSpace(cities[i])}
		if country != "" {
			loc.Country = strings.TrimSpace(countries[i])
		}
		locs = append(locs, loc)
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

package history

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kelvins/geocoder"
)

// Service orchestrates fetching from providers and persisting observations.
type Service struct {
	log       HistoryStore
	archive   Archiver
	providers []Provider

	// geocoderKey enables coordinate lookup for new locations when set.
	geocoderKey string
}

// NewService creates a new Service. geocoderAPIKey may be empty, in which
// case locations are registered without coordinates.
func NewService(logStore HistoryStore, archive Archiver, providers []Provider, geocoderAPIKey string) *Service {
	return &Service{
		log:         logStore,
		archive:     archive,
		providers:   providers,
		geocoderKey: geocoderAPIKey,
	}
}

// Collect fetches the current weather for loc from all providers
// concurrently, aggregates the readings that pass validation, appends the
// resulting observation to the history log and archives the full reading.
// Every attempt leaves a collection-log entry. Returns ErrNoData when no
// provider produced a usable reading; the log is left untouched in that case.
func (s *Service) Collect(ctx context.Context, loc Location) (Observation, error) {
	runID := uuid.NewString()
	start := time.Now()

	if loc.City == "" {
		return Observation{}, &ValidationError{Field: "city", Value: loc.City, Message: "must not be empty"}
	}
	if len(s.providers) == 0 {
		return Observation{}, ErrNoData
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []Reading
		failures []string
	)

	for _, p := range s.providers {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := p.Fetch(ctx, loc)
			if err != nil {
				// Log and continue; we want partial success when possible.
				log.Printf("provider %s fetch failed for %s: %v", p.Name(), loc.Key(), err)
				mu.Lock()
				failures = append(failures, p.Name()+": "+err.Error())
				mu.Unlock()
				return
			}
			if err := ValidateReading(r); err != nil {
				log.Printf("provider %s reading rejected for %s: %v", p.Name(), loc.Key(), err)
				mu.Lock()
				failures = append(failures, p.Name()+": "+err.Error())
				mu.Unlock()
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(readings) == 0 {
		s.logAttempt(runID, loc, StatusAPIError, strings.Join(failures, "; "), start)
		return Observation{}, ErrNoData
	}

	agg := AggregateReadings(readings)
	obs := agg.Observation(loc.City)

	if err := s.log.Append(obs); err != nil {
		s.logAttempt(runID, loc, StatusStorageError, err.Error(), start)
		return Observation{}, err
	}
	if err := s.archive.SaveReading(loc, agg); err != nil {
		s.logAttempt(runID, loc, StatusStorageError, err.Error(), start)
		return Observation{}, err
	}

	s.logAttempt(runID, loc, StatusSuccess, "", start)
	return obs, nil
}

func (s *Service) logAttempt(runID string, loc Location, status, msg string, start time.Time) {
	entry := CollectionEntry{
		RunID:          runID,
		Timestamp:      time.Now().UTC(),
		Location:       loc,
		Status:         status,
		Error:          msg,
		ResponseTimeMS: time.Since(start).Milliseconds(),
	}
	if err := s.archive.LogCollection(entry); err != nil {
		log.Printf("failed to record collection attempt for %s: %v", loc.Key(), err)
	}
}

// Recent returns the history window for a city, oldest first.
func (s *Service) Recent(city string, count int) ([]Observation, error) {
	return s.log.Recent(city, count)
}

// Stats computes summary statistics over the history window for a city.
func (s *Service) Stats(city string, count int) (Statistics, error) {
	obs, err := s.log.Recent(city, count)
	if err != nil {
		return Statistics{}, err
	}
	return ComputeStatistics(obs), nil
}

// Daily aggregates the history window for a city into per-day summaries.
func (s *Service) Daily(city string, count int) ([]DailySummary, error) {
	obs, err := s.log.Recent(city, count)
	if err != nil {
		return nil, err
	}
	return DailyAggregate(obs), nil
}

// Latest returns the most recent archived reading for a location.
func (s *Service) Latest(loc Location) (Reading, error) {
	return s.archive.LatestReading(loc)
}

// AddLocation registers a location for scheduled collection. When a
// geocoder key is configured, coordinates are resolved best-effort; a
// geocoding failure does not block registration.
func (s *Service) AddLocation(loc Location) error {
	if loc.City == "" {
		return &ValidationError{Field: "city", Value: loc.City, Message: "must not be empty"}
	}

	var lat, lon *float64
	if s.geocoderKey != "" {
		geocoder.ApiKey = s.geocoderKey
		addr := geocoder.Address{City: loc.City, Country: loc.Country}
		if coords, err := geocoder.Geocoding(addr); err != nil {
			log.Printf("geocoding failed for %s: %v", loc.Key(), err)
		} else {
			lat = &coords.Latitude
			lon = &coords.Longitude
		}
	}

	return s.archive.AddLocation(loc, lat, lon)
}

// Locations returns all locations currently enabled for collection.
func (s *Service) Locations() ([]Location, error) {
	return s.archive.ActiveLocations()
}

// CollectionLog returns the most recent collection attempts, newest first.
func (s *Service) CollectionLog(limit int) ([]CollectionEntry, error) {
	return s.archive.CollectionLog(limit)
}

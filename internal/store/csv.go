package store

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/okrayum/weather-history/internal/history"
)

// csvFields is the fixed record layout: timestamp, city, temperature,
// description.
const csvFields = 4

// CSVStore is the append-only history log backed by a flat CSV file, one
// observation per line, human-readable. Records are never updated or
// deleted. A mutex serializes access since the scheduler and HTTP handlers
// share one store.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore opens (or creates) the history log at path, creating the
// parent directory as needed. The file is touched on construction so that a
// later missing file is reported as a storage failure rather than an empty
// history.
func NewCSVStore(path string) (*CSVStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &history.PersistenceError{Op: "create dir", Path: path, Err: err}
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, &history.PersistenceError{Op: "open", Path: path, Err: err}
	}
	f.Close()

	return &CSVStore{path: path}, nil
}

// Append writes one observation to the end of the log. An empty city or a
// non-finite temperature is rejected with a ValidationError before any
// write occurs.
func (s *CSVStore) Append(obs history.Observation) error {
	if obs.City == "" {
		return &history.ValidationError{Field: "city", Value: obs.City, Message: "must not be empty"}
	}
	if math.IsNaN(obs.Temperature) || math.IsInf(obs.Temperature, 0) {
		return &history.ValidationError{Field: "temperature", Value: obs.Temperature, Message: "must be a finite number"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &history.PersistenceError{Op: "append", Path: s.path, Err: err}
	}
	defer f.Close()

	ts := obs.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	w := csv.NewWriter(f)
	record := []string{
		ts.UTC().Format(time.RFC3339),
		obs.City,
		strconv.FormatFloat(obs.Temperature, 'f', -1, 64),
		obs.Description,
	}
	if err := w.Write(record); err != nil {
		return &history.PersistenceError{Op: "append", Path: s.path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &history.PersistenceError{Op: "append", Path: s.path, Err: err}
	}

	return nil
}

// Recent returns up to count observations for the city, oldest first.
// Fewer stored records than count returns them all; none at all returns an
// empty slice. A missing or unparseable backing file surfaces a
// PersistenceError.
func (s *CSVStore) Recent(city string, count int) ([]history.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &history.PersistenceError{Op: "read", Path: s.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = csvFields

	var matched []history.Observation
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &history.PersistenceError{Op: "read", Path: s.path, Err: err}
		}

		if record[1] != city {
			continue
		}

		ts, err := time.Parse(time.RFC3339, record[0])
		if err != nil {
			return nil, &history.PersistenceError{Op: "read", Path: s.path, Err: err}
		}
		temp, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, &history.PersistenceError{Op: "read", Path: s.path, Err: err}
		}

		matched = append(matched, history.Observation{
			Timestamp:   ts,
			City:        record[1],
			Temperature: temp,
			Description: record[3],
		})
	}

	if count > 0 && len(matched) > count {
		matched = matched[len(matched)-count:]
	}
	if matched == nil {
		matched = []history.Observation{}
	}

	return matched, nil
}

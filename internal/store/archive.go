package store

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okrayum/weather-history/internal/history"
)

// ErrNotFound is returned when no archived reading exists for a location.
var ErrNotFound = errors.New("no weather data for location")

const archiveSchema = `
CREATE TABLE IF NOT EXISTS weather_readings (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp   TEXT NOT NULL,
	city        TEXT NOT NULL,
	country     TEXT NOT NULL,
	temperature REAL NOT NULL,
	feels_like  REAL,
	humidity    REAL,
	pressure    REAL,
	wind_speed  REAL,
	description TEXT,
	source      TEXT,
	created_at  TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_readings_city ON weather_readings(city, country);
CREATE INDEX IF NOT EXISTS idx_readings_timestamp ON weather_readings(timestamp);

CREATE TABLE IF NOT EXISTS locations (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	city       TEXT NOT NULL,
	country    TEXT NOT NULL,
	latitude   REAL,
	longitude  REAL,
	is_active  INTEGER DEFAULT 1,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(city, country)
);

CREATE TABLE IF NOT EXISTS collection_log (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id           TEXT NOT NULL,
	timestamp        TEXT NOT NULL,
	city             TEXT NOT NULL,
	country          TEXT NOT NULL,
	status           TEXT NOT NULL,
	error_message    TEXT,
	response_time_ms INTEGER,
	created_at       TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_collection_log_timestamp ON collection_log(timestamp);
`

// Archive persists full readings, the location registry and the collection
// log in SQLite (pure Go driver).
type Archive struct {
	db *sql.DB
}

// NewArchive opens (or creates) the archive database at path and applies
// the schema.
func NewArchive(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &history.PersistenceError{Op: "create dir", Path: path, Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &history.PersistenceError{Op: "open", Path: path, Err: err}
	}

	// WAL improves concurrency for small interleaved writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("warning: could not set WAL mode:", err)
	}

	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, &history.PersistenceError{Op: "migrate", Path: path, Err: err}
	}

	return &Archive{db: db}, nil
}

// SaveReading archives one full reading for a location.
func (a *Archive) SaveReading(loc history.Location, r history.Reading) error {
	_, err := a.db.Exec(`
		INSERT INTO weather_readings (
			timestamp, city, country, temperature, feels_like,
			humidity, pressure, wind_speed, description, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Timestamp.UTC().Format(time.RFC3339),
		loc.City, loc.Country,
		r.Temperature, r.FeelsLike, r.Humidity, r.Pressure, r.WindSpeed,
		r.Description, r.Source,
	)
	if err != nil {
		return &history.PersistenceError{Op: "save reading", Path: "weather_readings", Err: err}
	}
	return nil
}

// LatestReading returns the most recent archived reading for a location.
func (a *Archive) LatestReading(loc history.Location) (history.Reading, error) {
	row := a.db.QueryRow(`
		SELECT timestamp, temperature, feels_like, humidity, pressure, wind_speed, description, source
		FROM weather_readings
		WHERE city = ? AND country = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`,
		loc.City, loc.Country,
	)

	var r history.Reading
	var ts string
	err := row.Scan(&ts, &r.Temperature, &r.FeelsLike, &r.Humidity, &r.Pressure, &r.WindSpeed, &r.Description, &r.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Reading{}, ErrNotFound
	}
	if err != nil {
		return history.Reading{}, &history.PersistenceError{Op: "latest reading", Path: "weather_readings", Err: err}
	}

	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		r.Timestamp = t
	}
	return r, nil
}

// AddLocation registers (or re-activates) a location for collection.
// Coordinates are optional.
func (a *Archive) AddLocation(loc history.Location, lat, lon *float64) error {
	_, err := a.db.Exec(`
		INSERT INTO locations (city, country, latitude, longitude, is_active)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(city, country) DO UPDATE SET
			is_active = 1,
			latitude  = COALESCE(excluded.latitude, latitude),
			longitude = COALESCE(excluded.longitude, longitude)`,
		loc.City, loc.Country, lat, lon,
	)
	if err != nil {
		return &history.PersistenceError{Op: "add location", Path: "locations", Err: err}
	}
	return nil
}

// Coordinates returns the stored coordinates for a location. ok is false
// when the location is unknown or was registered without coordinates.
func (a *Archive) Coordinates(loc history.Location) (float64, float64, bool, error) {
	row := a.db.QueryRow(`SELECT latitude, longitude FROM locations WHERE city = ? AND country = ?`,
		loc.City, loc.Country)

	var lat, lon sql.NullFloat64
	err := row.Scan(&lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, &history.PersistenceError{Op: "coordinates", Path: "locations", Err: err}
	}
	if !lat.Valid || !lon.Valid {
		return 0, 0, false, nil
	}
	return lat.Float64, lon.Float64, true, nil
}

// ActiveLocations returns all locations enabled for scheduled collection.
func (a *Archive) ActiveLocations() ([]history.Location, error) {
	rows, err := a.db.Query(`SELECT city, country FROM locations WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, &history.PersistenceError{Op: "list locations", Path: "locations", Err: err}
	}
	defer rows.Close()

	out := make([]history.Location, 0)
	for rows.Next() {
		var loc history.Location
		if err := rows.Scan(&loc.City, &loc.Country); err != nil {
			return nil, &history.PersistenceError{Op: "list locations", Path: "locations", Err: err}
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, &history.PersistenceError{Op: "list locations", Path: "locations", Err: err}
	}
	return out, nil
}

// LogCollection records one collection attempt.
func (a *Archive) LogCollection(e history.CollectionEntry) error {
	_, err := a.db.Exec(`
		INSERT INTO collection_log (run_id, timestamp, city, country, status, error_message, response_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID,
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Location.City, e.Location.Country,
		e.Status, e.Error, e.ResponseTimeMS,
	)
	if err != nil {
		return &history.PersistenceError{Op: "log collection", Path: "collection_log", Err: err}
	}
	return nil
}

// CollectionLog returns the most recent collection attempts, newest first.
func (a *Archive) CollectionLog(limit int) ([]history.CollectionEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := a.db.Query(`
		SELECT run_id, timestamp, city, country, status, error_message, response_time_ms
		FROM collection_log
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, &history.PersistenceError{Op: "read log", Path: "collection_log", Err: err}
	}
	defer rows.Close()

	out := make([]history.CollectionEntry, 0)
	for rows.Next() {
		var e history.CollectionEntry
		var ts string
		if err := rows.Scan(&e.RunID, &ts, &e.Location.City, &e.Location.Country, &e.Status, &e.Error, &e.ResponseTimeMS); err != nil {
			return nil, &history.PersistenceError{Op: "read log", Path: "collection_log", Err: err}
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.Timestamp = t
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &history.PersistenceError{Op: "read log", Path: "collection_log", Err: err}
	}
	return out, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

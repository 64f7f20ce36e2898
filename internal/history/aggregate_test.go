package history

import (
	"testing"
	"time"
)

func TestAggregateReadingsAveragesAndMajority(t *testing.T) {
	older := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	newer := older.Add(30 * time.Minute)

	readings := []Reading{
		{Source: "openweathermap", Timestamp: older, Temperature: 10, Humidity: 60, Description: "light rain"},
		{Source: "weatherapi", Timestamp: newer, Temperature: 14, Humidity: 70, Description: "light rain"},
		{Source: "other", Timestamp: older, Temperature: 12, Humidity: 65, Description: "overcast"},
	}

	agg := AggregateReadings(readings)

	if agg.Temperature != 12 {
		t.Errorf("expected averaged temperature 12, got %v", agg.Temperature)
	}
	if agg.Humidity != 65 {
		t.Errorf("expected averaged humidity 65, got %v", agg.Humidity)
	}
	if agg.Description != "light rain" {
		t.Errorf("expected majority description, got %q", agg.Description)
	}
	if !agg.Timestamp.Equal(newer) {
		t.Errorf("expected newest timestamp %v, got %v", newer, agg.Timestamp)
	}
	if agg.Source != "openweathermap+weatherapi+other" {
		t.Errorf("unexpected source list: %q", agg.Source)
	}
}

func TestAggregateReadingsTieKeepsFirstSeen(t *testing.T) {
	ts := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	readings := []Reading{
		{Source: "a", Timestamp: ts, Temperature: 10, Description: "clear"},
		{Source: "b", Timestamp: ts, Temperature: 12, Description: "overcast"},
	}

	agg := AggregateReadings(readings)
	if agg.Description != "clear" {
		t.Errorf("expected first-seen description on tie, got %q", agg.Description)
	}
}

func TestAggregateReadingsEmpty(t *testing.T) {
	agg := AggregateReadings(nil)
	if agg.Timestamp.IsZero() {
		t.Error("expected a non-zero timestamp for empty input")
	}
	if agg.Description != "" || agg.Temperature != 0 {
		t.Errorf("expected zero-valued reading, got %+v", agg)
	}
}

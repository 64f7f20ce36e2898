package history

import (
	"testing"
	"time"
)

func TestHeatIndexC(t *testing.T) {
	// Below the 80 °F threshold the air temperature is returned unchanged.
	if got := HeatIndexC(20, 90); got != 20 {
		t.Errorf("expected unchanged temperature below threshold, got %v", got)
	}

	// 32.5 °C at 70 % humidity feels considerably hotter than measured.
	got := HeatIndexC(32.5, 70)
	if got <= 32.5 {
		t.Errorf("expected heat index above air temperature, got %v", got)
	}
	if got < 38 || got > 46 {
		t.Errorf("heat index outside plausible band: %v", got)
	}

	// More humidity feels hotter.
	if HeatIndexC(32.5, 80) <= HeatIndexC(32.5, 50) {
		t.Error("expected heat index to rise with humidity")
	}
}

func TestWindChillC(t *testing.T) {
	// Warm or calm conditions leave the temperature unchanged.
	if got := WindChillC(15, 10); got != 15 {
		t.Errorf("expected unchanged temperature above threshold, got %v", got)
	}
	if got := WindChillC(-5, 0.5); got != -5 {
		t.Errorf("expected unchanged temperature in calm wind, got %v", got)
	}

	// Cold and windy feels colder than measured.
	got := WindChillC(-5, 10)
	if got >= -5 {
		t.Errorf("expected wind chill below air temperature, got %v", got)
	}
	if got < -20 || got > -8 {
		t.Errorf("wind chill outside plausible band: %v", got)
	}

	// More wind feels colder.
	if WindChillC(-5, 15) >= WindChillC(-5, 5) {
		t.Error("expected wind chill to drop with wind speed")
	}
}

func TestComfortIndex(t *testing.T) {
	// Ideal conditions score a perfect 100.
	if got := ComfortIndex(22.5, 50, 2); got != 100 {
		t.Errorf("expected 100 for ideal conditions, got %v", got)
	}

	// Extreme conditions clamp at 0.
	if got := ComfortIndex(-20, 100, 25); got != 0 {
		t.Errorf("expected 0 for extreme conditions, got %v", got)
	}

	// Mild deviation lands in between.
	got := ComfortIndex(18, 60, 3)
	if got <= 0 || got >= 100 {
		t.Errorf("expected intermediate comfort, got %v", got)
	}
}

func TestWeatherSeverity(t *testing.T) {
	// Benign conditions score zero.
	if got := WeatherSeverity(15, 5, 50, 1015); got != 0 {
		t.Errorf("expected 0 severity for benign conditions, got %v", got)
	}

	// Extremes accumulate and cap at 100.
	if got := WeatherSeverity(50, 50, 95, 980); got != 100 {
		t.Errorf("expected capped severity 100, got %v", got)
	}

	// A single extreme contributes on its own.
	if got := WeatherSeverity(15, 15, 50, 1015); got != 10 {
		t.Errorf("expected wind-only severity 10, got %v", got)
	}
}

func TestCategories(t *testing.T) {
	tempTests := []struct {
		temp float64
		want string
	}{
		{-5, "Freezing"},
		{0, "Freezing"},
		{10, "Cold"},
		{15, "Cool"},
		{30, "Warm"},
		{35, "Hot"},
	}
	for _, tt := range tempTests {
		if got := TemperatureCategory(tt.temp); got != tt.want {
			t.Errorf("TemperatureCategory(%v) = %q, want %q", tt.temp, got, tt.want)
		}
	}

	humidityTests := []struct {
		humidity float64
		want     string
	}{
		{10, "Dry"},
		{30, "Dry"},
		{50, "Comfortable"},
		{75, "Humid"},
		{90, "Very Humid"},
	}
	for _, tt := range humidityTests {
		if got := HumidityCategory(tt.humidity); got != tt.want {
			t.Errorf("HumidityCategory(%v) = %q, want %q", tt.humidity, got, tt.want)
		}
	}
}

func TestDeriveFeatures(t *testing.T) {
	d := DeriveFeatures(Reading{Temperature: 22.5, Humidity: 50, WindSpeed: 2, Pressure: 1015})

	if d.ComfortIndex != 100 || d.Severity != 0 {
		t.Errorf("unexpected derived values: %+v", d)
	}
	if d.TemperatureCategory != "Warm" || d.HumidityCategory != "Comfortable" {
		t.Errorf("unexpected categories: %+v", d)
	}
	if d.HeatIndexC != 22.5 || d.WindChillC != 22.5 {
		t.Errorf("expected feel temperatures to match air temperature, got %+v", d)
	}
}

func TestDailyAggregate(t *testing.T) {
	day1 := time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	obs := []Observation{
		{Timestamp: day1, City: "Oslo", Temperature: 10},
		{Timestamp: day1.Add(6 * time.Hour), City: "Oslo", Temperature: 15},
		{Timestamp: day1.Add(12 * time.Hour), City: "Oslo", Temperature: 11},
		{Timestamp: day2, City: "Oslo", Temperature: 20},
	}

	got := DailyAggregate(obs)
	if len(got) != 2 {
		t.Fatalf("expected 2 daily summaries, got %d", len(got))
	}

	first := got[0]
	if first.Date != "2025-06-09" || first.Count != 3 {
		t.Errorf("unexpected first day: %+v", first)
	}
	if first.TemperatureMin != 10 || first.TemperatureMax != 15 || first.TemperatureAvg != 12 {
		t.Errorf("unexpected first-day aggregates: %+v", first)
	}

	second := got[1]
	if second.Date != "2025-06-10" || second.Count != 1 || second.TemperatureAvg != 20 {
		t.Errorf("unexpected second day: %+v", second)
	}

	if len(DailyAggregate(nil)) != 0 {
		t.Error("expected empty aggregate for empty input")
	}
}

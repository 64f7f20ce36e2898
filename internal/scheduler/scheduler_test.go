package scheduler

import (
	"testing"
	"time"

	"github.com/okrayum/weather-history/internal/history"
)

type noopLog struct{}

func (noopLog) Append(history.Observation) error { return nil }

func (noopLog) Recent(string, int) ([]history.Observation, error) {
	return []history.Observation{}, nil
}

type noopArchive struct{}

func (noopArchive) SaveReading(history.Location, history.Reading) error { return nil }

func (noopArchive) LatestReading(history.Location) (history.Reading, error) {
	return history.Reading{}, nil
}

func (noopArchive) AddLocation(history.Location, *float64, *float64) error { return nil }

func (noopArchive) ActiveLocations() ([]history.Location, error) {
	return []history.Location{}, nil
}

func (noopArchive) LogCollection(history.CollectionEntry) error { return nil }

func (noopArchive) CollectionLog(int) ([]history.CollectionEntry, error) {
	return []history.CollectionEntry{}, nil
}

func newTestService() *history.Service {
	return history.NewService(noopLog{}, noopArchive{}, nil, "")
}

func TestStartHonorsSubMinuteInterval(t *testing.T) {
	s := New(45*time.Second, newTestService())
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	jobs := s.scheduler.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 scheduled job, got %d", len(jobs))
	}

	next := jobs[0].NextRun()
	if next.IsZero() {
		t.Fatal("expected a scheduled next run")
	}
	// A 45s interval must not silently widen to the 30-minute default.
	if until := time.Until(next); until > time.Minute {
		t.Errorf("expected next run within a minute, got %v", until)
	}
}

func TestStartDefaultsNonPositiveInterval(t *testing.T) {
	s := New(0, newTestService())
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	jobs := s.scheduler.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 scheduled job, got %d", len(jobs))
	}
	if until := time.Until(jobs[0].NextRun()); until > 31*time.Minute {
		t.Errorf("expected default 30m interval, next run in %v", until)
	}
}

package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/okrayum/weather-history/internal/history"
)

// Scheduler periodically collects weather data for every active location in
// the registry. The location list is read at job time, so locations added
// over the API are picked up without a restart.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *history.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, service *history.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The configured interval is honored as-is; only a non-positive value falls
// back to the default.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runOnce() {
	locs, err := s.service.Locations()
	if err != nil {
		log.Printf("scheduler: failed to load locations: %v", err)
		return
	}
	if len(locs) == 0 {
		log.Println("scheduler: no active locations; nothing to collect")
		return
	}

	log.Printf("scheduler: collecting weather for %d locations", len(locs))

	var wg sync.WaitGroup
	for _, loc := range locs {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if _, err := s.service.Collect(ctx, loc); err != nil {
				if errors.Is(err, history.ErrNoData) {
					log.Printf("scheduler: no data collected for %s", loc.Key())
					return
				}
				log.Printf("scheduler: collection failed for %s: %v", loc.Key(), err)
			}
		}()
	}
	wg.Wait()

	log.Println("scheduler: completed collection run")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/i474232898/forecast-report/internal/weather"
)

// Refresher re-runs the collect/store/write pipeline for one location.
// A failed refresh must leave the previous report in place.
type Refresher interface {
	Refresh(ctx context.Context, loc weather.Location) error
}

// Scheduler periodically refreshes the report for the configured location
// while the process runs in serve mode.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	location  weather.Location
	interval  time.Duration
}

// New creates a new Scheduler.
func New(loc weather.Location, interval time.Duration, refresher Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		location:  loc,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Printf("INFO: scheduler: refreshing report for %s", s.location.Key())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.refresher.Refresh(ctx, s.location); err != nil {
			log.Printf("ERROR: scheduler: refresh failed for %s: %v", s.location.Key(), err)
			return
		}
		log.Printf("INFO: scheduler: refresh completed for %s", s.location.Key())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

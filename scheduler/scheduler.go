// Package scheduler implements the periodic background refresh
package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"weatherdash.app/config"
)

// RefreshTrigger starts a refresh cycle out-of-band; triggers fired while a
// refresh is in flight coalesce with it.
type RefreshTrigger interface {
	TriggerAsync()
}

// Scheduler periodically triggers weather data refreshes.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher RefreshTrigger
	config    *config.SchedulerConfig
}

// NewScheduler creates and configures a new refresh scheduler
func NewScheduler(cfg *config.SchedulerConfig, refresher RefreshTrigger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		config:    cfg,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. Disabled configuration is a no-op.
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		slog.Info("Periodic refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.config.IntervalMinutes).Minutes().Do(func() {
		slog.Info("Scheduled refresh triggered")
		s.refresher.TriggerAsync()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("Periodic refresh scheduled", "interval_minutes", s.config.IntervalMinutes)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

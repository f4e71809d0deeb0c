// Package scheduler implements background job scheduling
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"weatherdash.app/config"
	"weatherdash.app/service"
)

// Scheduler runs the periodic weather-alert check.
type Scheduler struct {
	config  *config.Config
	alerts  service.AlertServiceInterface
	stop    chan struct{}
	done    chan struct{}
	started bool
}

// NewScheduler creates and configures a new task scheduler
func NewScheduler(config *config.Config, alerts service.AlertServiceInterface) *Scheduler {
	return &Scheduler{
		config: config,
		alerts: alerts,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start begins the scheduler's operations
func (s *Scheduler) Start() {
	s.started = true
	go s.run(s.config.Alerts.CheckInterval())
}

// Stop terminates the scheduler and waits for the loop to exit. A no-op
// when the scheduler was never started.
func (s *Scheduler) Stop() {
	if !s.started {
		return
	}
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run(interval time.Duration) {
	defer close(s.done)

	s.checkAlerts()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.checkAlerts()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) checkAlerts() {
	if err := s.alerts.CheckAndNotify(context.Background()); err != nil {
		slog.Error("weather alert check failed", "error", err)
	}
}

package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

// Trigger starts a fetch cycle; *dashboard.Machine satisfies it.
type Trigger interface {
	Trigger(ctx context.Context) (dashboard.ViewState, error)
}

// Scheduler periodically refreshes the dashboard. Each run goes through the
// same Trigger as the user's refresh action.
type Scheduler struct {
	scheduler *gocron.Scheduler
	trigger   Trigger
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, trigger Trigger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		trigger:   trigger,
		interval:  interval,
	}
}

// Start schedules the refresh job. A non-positive interval leaves the
// scheduler idle.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh interval not set; automatic refresh disabled")
		return nil
	}

	s.scheduler.SingletonModeAll()
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Println("scheduler: running dashboard refresh")
	state, err := s.trigger.Trigger(context.Background())
	if errors.Is(err, dashboard.ErrCycleInFlight) {
		log.Println("scheduler: a fetch cycle is already running; skipping")
		return
	}
	log.Printf("scheduler: refresh finished with status %s", state.Status)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

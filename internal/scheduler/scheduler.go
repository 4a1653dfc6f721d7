// Package scheduler runs the periodic cache sweep.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a task on a fixed period for the process lifetime.
type Scheduler struct {
	cron   *cron.Cron
	period time.Duration
	task   func()
}

func New(period time.Duration, task func()) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		period: period,
		task:   task,
	}
}

// Start registers the task on an @every schedule and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.period), s.task); err != nil {
		return fmt.Errorf("failed to schedule task: %w", err)
	}
	s.cron.Start()
	log.Printf("scheduler started, task runs every %s", s.period)
	return nil
}

// Stop halts the schedule and waits for a running task to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	log.Printf("scheduler stopped")
}

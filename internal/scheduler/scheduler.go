package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"gutvbooker/internal/jobs"
	"gutvbooker/internal/logger"
)

// Specs are six-field cron expressions (with seconds), evaluated in UTC.
type Specs struct {
	PromoteOsnova string
}

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner, specs Specs) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{cron: c, jobs: jobRunner}

	if _, err := s.cron.AddFunc(specs.PromoteOsnova, s.jobs.PromoteOsnova); err != nil {
		return nil, fmt.Errorf("register PromoteOsnova job: %w", err)
	}

	logger.Info("All cron jobs registered", "count", len(s.cron.Entries()))
	return s, nil
}

func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

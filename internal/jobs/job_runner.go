package jobs

import (
	"context"
	"time"

	"gutvbooker/internal/logger"
)

type UserRepository interface {
	PromoteEligibleOsnova(ctx context.Context, now time.Time) (int64, error)
}

// JobRunner holds the dependencies of scheduled jobs.
type JobRunner struct {
	users UserRepository
	now   func() time.Time
}

func NewJobRunner(users UserRepository) *JobRunner {
	return &JobRunner{users: users, now: time.Now}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// PromoteOsnova grants Osnova to every member who joined at least a year ago.
func (jr *JobRunner) PromoteOsnova() {
	jr.runWithRecovery("PromoteOsnova", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := jr.users.PromoteEligibleOsnova(ctx, jr.now())
		if err != nil {
			logger.Error("Failed to promote users to Osnova", "error", err)
			return
		}
		logger.Info("Osnova promotion finished", "promoted", n)
	})
}

// RunAll runs every job once (for manual execution).
func (jr *JobRunner) RunAll() {
	jr.PromoteOsnova()
}

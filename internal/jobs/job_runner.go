package jobs

import (
	"vibe-backend/internal/config"
	"vibe-backend/internal/email"
	"vibe-backend/internal/logger"
	"vibe-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store      *postgres.Store
	dispatcher *email.Dispatcher
	config     *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, dispatcher *email.Dispatcher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:      store,
		dispatcher: dispatcher,
		config:     cfg,
	}
}

// Config exposes the runner's configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
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

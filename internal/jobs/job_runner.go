package jobs

import (
	"database/sql"
	"time"

	"leadhub-backend/internal/config"
	"leadhub-backend/internal/logger"
	"leadhub-backend/internal/repository/postgres"
	"leadhub-backend/internal/service"
)

// JobRunner coordinates all scheduled scans.
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
	now      func() time.Time
	dryRun   bool
}

// Services holds the service dependencies the scans fan out through.
type Services struct {
	Email        service.EmailService
	Notification service.NotificationService
}

// NewJobRunner creates a new job runner with all dependencies.
func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
		now:      time.Now,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// SetDryRun makes every scan report what it would do without writing
// notifications or sending email.
func (jr *JobRunner) SetDryRun(dryRun bool) {
	jr.dryRun = dryRun
}

// SetClock overrides the scan clock. Tests use it; production keeps time.Now.
func (jr *JobRunner) SetClock(now func() time.Time) {
	jr.now = now
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName, "dry_run", jr.dryRun)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every scan once, for manual execution.
func (jr *JobRunner) RunAll() {
	jr.CheckLeadNoOrder()
	jr.CheckOrderDay()
	jr.CheckTaskDeadlines(jr.config.Notifications.DeadlineDays...)
}

package jobs

import (
	"time"

	"dues-tracker-backend/internal/config"
	"dues-tracker-backend/internal/logger"
	"dues-tracker-backend/internal/repository"
	"dues-tracker-backend/internal/service"
)

// JobRunner coordinates all scheduled reminder jobs
type JobRunner struct {
	members repository.MemberRepository
	stats   service.StatsService
	gateway service.NotificationGateway
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(members repository.MemberRepository, stats service.StatsService, gateway service.NotificationGateway, cfg *config.Config) *JobRunner {
	return &JobRunner{
		members: members,
		stats:   stats,
		gateway: gateway,
		config:  cfg,
		now:     time.Now,
	}
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

// RunAllReminderJobs runs every reminder job once (for manual execution)
func (jr *JobRunner) RunAllReminderJobs() {
	jr.SendOverdueReminders()
	jr.SendPendingReminders()
	jr.SendWeeklySummary()
	jr.SendDeadlineReminder()
}

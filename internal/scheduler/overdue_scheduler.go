package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/pkg/logger"
)

const (
	overdueSchedulerCode = "MARK_OVERDUE_BILLINGS"

	statusStart   = "START"
	statusSuccess = "SUCCESS"
	statusFailed  = "FAILED"

	// jobTimeout bounds a single run so a stuck query cannot pile up runs
	jobTimeout = 5 * time.Minute
)

// OverdueScheduler periodically moves pending bills past their due date to overdue
type OverdueScheduler struct {
	billingService   service.BillingService
	logSchedulerRepo repository.LogSchedulerRepository
	logger           *logger.Logger
	cron             *cron.Cron
	cronExpression   string
}

// NewOverdueScheduler creates a new overdue scheduler
func NewOverdueScheduler(billingService service.BillingService, logSchedulerRepo repository.LogSchedulerRepository, logger *logger.Logger, cronExpression string) *OverdueScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &OverdueScheduler{
		billingService:   billingService,
		logSchedulerRepo: logSchedulerRepo,
		logger:           logger,
		cron:             c,
		cronExpression:   cronExpression,
	}
}

// Start schedules the job and starts the cron runner
func (s *OverdueScheduler) Start() error {
	s.logger.Info("Starting overdue scheduler...")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	_, err := s.cron.AddFunc(s.cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_, _ = s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule overdue job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("cron_expression", s.cronExpression).Info("Overdue scheduler started successfully")

	return nil
}

// Stop waits for a running job to finish and stops the scheduler
func (s *OverdueScheduler) Stop() {
	s.logger.Info("Stopping overdue scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Overdue scheduler stopped successfully")
}

// RunOnce marks overdue bills and records the run in log_schedulers. It returns the run id.
func (s *OverdueScheduler) RunOnce(ctx context.Context) (string, error) {
	runID := uuid.New().String()
	log := s.logger.WithField("run_id", runID)

	s.logScheduler(ctx, runID, "Marking pending billings past their due date as overdue", statusStart)

	n, err := s.billingService.MarkOverdue(ctx)
	if err != nil {
		s.logScheduler(ctx, runID, fmt.Sprintf("Failed to mark overdue billings: %v", err), statusFailed)
		log.WithError(err).Error("Overdue job failed")
		return runID, err
	}

	s.logScheduler(ctx, runID, fmt.Sprintf("Marked %d billings overdue", n), statusSuccess)
	log.WithField("count", n).Info("Overdue job completed")

	return runID, nil
}

// logScheduler writes one state row; a failed write is logged and otherwise ignored
func (s *OverdueScheduler) logScheduler(ctx context.Context, runID, message, status string) {
	entry := &models.LogScheduler{
		RunID:         runID,
		SchedulerCode: overdueSchedulerCode,
		Message:       message,
		Status:        status,
	}

	if err := s.logSchedulerRepo.CreateLogScheduler(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}

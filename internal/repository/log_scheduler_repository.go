package repository

import (
	"context"

	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
)

// LogSchedulerRepository defines the interface for log scheduler data operations
type LogSchedulerRepository interface {
	CreateLogScheduler(ctx context.Context, log *models.LogScheduler) error
	ListByRunID(ctx context.Context, runID string) ([]*models.LogScheduler, error)
}

// logSchedulerRepository implements LogSchedulerRepository
type logSchedulerRepository struct {
	db *gorm.DB
}

// NewLogSchedulerRepository creates a new instance of LogSchedulerRepository
func NewLogSchedulerRepository(db *gorm.DB) LogSchedulerRepository {
	return &logSchedulerRepository{
		db: db,
	}
}

// CreateLogScheduler creates a new log scheduler record
func (r *logSchedulerRepository) CreateLogScheduler(ctx context.Context, log *models.LogScheduler) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByRunID retrieves the rows written by one scheduler run in insertion order
func (r *logSchedulerRepository) ListByRunID(ctx context.Context, runID string) ([]*models.LogScheduler, error) {
	var logs []*models.LogScheduler
	err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

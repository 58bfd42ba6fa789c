package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// recentReadingsWindow is how far back ListRecent looks
const recentReadingsWindow = 30 * 24 * time.Hour

// ReadingInput is a new meter reading; ReadingDate defaults to now
type ReadingInput struct {
	ReadingValue decimal.Decimal `json:"reading_value" swaggertype:"string" example:"1542.5"`
	ReadingDate  *time.Time      `json:"reading_date,omitempty" example:"2025-06-01T08:00:00Z"`
	Notes        *string         `json:"notes,omitempty"`
}

// MeterReadingService defines the interface for meter reading business operations
type MeterReadingService interface {
	ListByMeter(ctx context.Context, s session.Session, meterID string) ([]*models.MeterReading, error)
	ListRecent(ctx context.Context, s session.Session) ([]*models.MeterReading, error)
	Create(ctx context.Context, s session.Session, meterID string, in ReadingInput) (*models.MeterReading, error)
}

// meterReadingService implements MeterReadingService
type meterReadingService struct {
	readingRepo repository.MeterReadingRepository
	meterRepo   repository.MeterRepository
	db          *gorm.DB
	logger      *logger.Logger
	now         func() time.Time
}

// NewMeterReadingService creates a new instance of MeterReadingService
func NewMeterReadingService(
	readingRepo repository.MeterReadingRepository,
	meterRepo repository.MeterRepository,
	db *gorm.DB,
	logger *logger.Logger,
) MeterReadingService {
	return &meterReadingService{
		readingRepo: readingRepo,
		meterRepo:   meterRepo,
		db:          db,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ListByMeter retrieves the reading log of a meter, newest first
func (s *meterReadingService) ListByMeter(ctx context.Context, sess session.Session, meterID string) ([]*models.MeterReading, error) {
	if _, err := s.meterRepo.GetByID(ctx, sess, meterID); err != nil {
		return nil, notFoundOr(err, "meter")
	}

	readings, err := s.readingRepo.ListByMeter(ctx, sess, meterID)
	if err != nil {
		s.logger.WithError(err).WithField("meter_id", meterID).Error("Failed to list meter readings")
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	return readings, nil
}

// ListRecent retrieves readings of the last 30 days across all meters
func (s *meterReadingService) ListRecent(ctx context.Context, sess session.Session) ([]*models.MeterReading, error) {
	readings, err := s.readingRepo.ListSince(ctx, sess, s.now().Add(-recentReadingsWindow))
	if err != nil {
		s.logger.WithError(err).Error("Failed to list recent readings")
		return nil, fmt.Errorf("failed to list recent readings: %w", err)
	}
	return readings, nil
}

// Create appends a reading. previous_reading is copied from the latest reading of the
// meter and the meter's last reading is updated in the same transaction.
func (s *meterReadingService) Create(ctx context.Context, sess session.Session, meterID string, in ReadingInput) (*models.MeterReading, error) {
	if in.ReadingValue.IsNegative() {
		return nil, invalidf("reading_value must not be negative")
	}
	if _, err := s.meterRepo.GetByID(ctx, sess, meterID); err != nil {
		return nil, notFoundOr(err, "meter")
	}

	readAt := s.now()
	if in.ReadingDate != nil && !in.ReadingDate.IsZero() {
		readAt = in.ReadingDate.UTC()
	}
	recordedBy := sess.LandlordID

	reading := &models.MeterReading{
		MeterID:      meterID,
		ReadingValue: in.ReadingValue,
		ReadingDate:  readAt,
		RecordedBy:   &recordedBy,
		Notes:        in.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		readings := repository.NewMeterReadingRepository(tx)

		previous, err := readings.LatestValue(ctx, meterID)
		if err != nil {
			return fmt.Errorf("failed to read previous reading: %w", err)
		}
		if in.ReadingValue.LessThan(previous) {
			return invalidf("reading_value %s is below the previous reading %s", in.ReadingValue, previous)
		}

		reading.PreviousReading = previous
		reading.Consumption = in.ReadingValue.Sub(previous)

		if err := readings.Create(ctx, reading); err != nil {
			return fmt.Errorf("failed to create reading: %w", err)
		}
		if err := readings.UpdateMeterLastReading(ctx, meterID, reading.ReadingValue, reading.ReadingDate); err != nil {
			return fmt.Errorf("failed to update meter: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithField("meter_id", meterID).Error("Failed to record meter reading")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"meter_id":    meterID,
		"reading_id":  reading.ID,
		"consumption": reading.Consumption.String(),
	}).Info("Meter reading recorded")

	return reading, nil
}

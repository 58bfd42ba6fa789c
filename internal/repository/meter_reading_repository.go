package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/session"
)

// MeterReadingRepository defines the interface for meter reading data operations
type MeterReadingRepository interface {
	ListByMeter(ctx context.Context, s session.Session, meterID string) ([]*models.MeterReading, error)
	ListSince(ctx context.Context, s session.Session, since time.Time) ([]*models.MeterReading, error)
	ListLatest(ctx context.Context, s session.Session, limit int) ([]*models.MeterReading, error)
	LatestValue(ctx context.Context, meterID string) (decimal.Decimal, error)
	Create(ctx context.Context, reading *models.MeterReading) error
	UpdateMeterLastReading(ctx context.Context, meterID string, value decimal.Decimal, at time.Time) error
}

// meterReadingRepository implements MeterReadingRepository
type meterReadingRepository struct {
	db *gorm.DB
}

// NewMeterReadingRepository creates a new instance of MeterReadingRepository
func NewMeterReadingRepository(db *gorm.DB) MeterReadingRepository {
	return &meterReadingRepository{
		db: db,
	}
}

// ListByMeter retrieves the readings of a meter, newest first
func (r *meterReadingRepository) ListByMeter(ctx context.Context, s session.Session, meterID string) ([]*models.MeterReading, error) {
	var readings []*models.MeterReading
	db := r.db.WithContext(ctx)

	err := db.Preload("Meter").
		Where("meter_id = ? AND meter_id IN (?)", meterID, ownedMeterIDs(db, s)).
		Order("reading_date DESC").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	return readings, nil
}

// ListSince retrieves readings taken at or after since, with meter, property and tenant
func (r *meterReadingRepository) ListSince(ctx context.Context, s session.Session, since time.Time) ([]*models.MeterReading, error) {
	var readings []*models.MeterReading
	db := r.db.WithContext(ctx)

	err := db.Preload("Meter.Property").Preload("Meter.Tenant").
		Where("reading_date >= ? AND meter_id IN (?)", since, ownedMeterIDs(db, s)).
		Order("reading_date DESC").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	return readings, nil
}

// ListLatest retrieves the most recent readings across all of the landlord's meters
func (r *meterReadingRepository) ListLatest(ctx context.Context, s session.Session, limit int) ([]*models.MeterReading, error) {
	var readings []*models.MeterReading
	db := r.db.WithContext(ctx)

	err := db.Where("meter_id IN (?)", ownedMeterIDs(db, s)).
		Order("reading_date DESC").
		Limit(limit).
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	return readings, nil
}

// LatestValue returns the value of the most recent reading of a meter, zero when there is none
func (r *meterReadingRepository) LatestValue(ctx context.Context, meterID string) (decimal.Decimal, error) {
	var latest models.MeterReading

	err := r.db.WithContext(ctx).
		Where("meter_id = ?", meterID).
		Order("reading_date DESC").
		Order("created_at DESC").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	return latest.ReadingValue, nil
}

// Create inserts a reading
func (r *meterReadingRepository) Create(ctx context.Context, reading *models.MeterReading) error {
	return r.db.WithContext(ctx).Omit("Meter").Create(reading).Error
}

// UpdateMeterLastReading stamps the meter with its newest reading
func (r *meterReadingRepository) UpdateMeterLastReading(ctx context.Context, meterID string, value decimal.Decimal, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Meter{}).
		Where("id = ?", meterID).
		Updates(map[string]interface{}{
			"last_reading_value": value,
			"last_reading_date":  at,
		})
	return notFoundIfNone(result)
}

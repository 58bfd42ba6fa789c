package repository

import (
	"context"

	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/session"
)

// MeterRepository defines the interface for meter data operations
type MeterRepository interface {
	List(ctx context.Context, s session.Session) ([]*models.Meter, error)
	ListByProperty(ctx context.Context, s session.Session, propertyID string) ([]*models.Meter, error)
	ListAvailable(ctx context.Context, s session.Session) ([]*models.Meter, error)
	GetByID(ctx context.Context, s session.Session, id string) (*models.Meter, error)
	Create(ctx context.Context, meter *models.Meter) error
	Update(ctx context.Context, s session.Session, id string, fields map[string]interface{}) error
	SetAssignment(ctx context.Context, s session.Session, id string, tenantID *string, status models.MeterStatus) error
	Delete(ctx context.Context, s session.Session, id string) error
}

// meterRepository implements MeterRepository
type meterRepository struct {
	db *gorm.DB
}

// NewMeterRepository creates a new instance of MeterRepository
func NewMeterRepository(db *gorm.DB) MeterRepository {
	return &meterRepository{
		db: db,
	}
}

// List retrieves all meters with property and tenant, newest first
func (r *meterRepository) List(ctx context.Context, s session.Session) ([]*models.Meter, error) {
	var meters []*models.Meter
	db := r.db.WithContext(ctx)

	err := db.Preload("Property").Preload("Tenant").
		Where("property_id IN (?)", ownedPropertyIDs(db, s)).
		Order("created_at DESC").
		Find(&meters).Error
	if err != nil {
		return nil, err
	}

	return meters, nil
}

// ListByProperty retrieves the meters of one property ordered by meter number
func (r *meterRepository) ListByProperty(ctx context.Context, s session.Session, propertyID string) ([]*models.Meter, error) {
	var meters []*models.Meter
	db := r.db.WithContext(ctx)

	err := db.Preload("Property").Preload("Tenant").
		Where("property_id = ? AND property_id IN (?)", propertyID, ownedPropertyIDs(db, s)).
		Order("meter_number").
		Find(&meters).Error
	if err != nil {
		return nil, err
	}

	return meters, nil
}

// ListAvailable retrieves unassigned meters in the available state
func (r *meterRepository) ListAvailable(ctx context.Context, s session.Session) ([]*models.Meter, error) {
	var meters []*models.Meter
	db := r.db.WithContext(ctx)

	err := db.Preload("Property").
		Where("tenant_id IS NULL AND status = ?", models.MeterStatusAvailable).
		Where("property_id IN (?)", ownedPropertyIDs(db, s)).
		Order("meter_number").
		Find(&meters).Error
	if err != nil {
		return nil, err
	}

	return meters, nil
}

// GetByID retrieves a meter by ID with property and tenant
func (r *meterRepository) GetByID(ctx context.Context, s session.Session, id string) (*models.Meter, error) {
	var meter models.Meter
	db := r.db.WithContext(ctx)

	err := db.Preload("Property").Preload("Tenant").
		Where("id = ? AND property_id IN (?)", id, ownedPropertyIDs(db, s)).
		First(&meter).Error
	if err != nil {
		return nil, err
	}

	return &meter, nil
}

// Create inserts a meter
func (r *meterRepository) Create(ctx context.Context, meter *models.Meter) error {
	return r.db.WithContext(ctx).Omit("Property", "Tenant").Create(meter).Error
}

// Update replaces the editable fields of a meter
func (r *meterRepository) Update(ctx context.Context, s session.Session, id string, fields map[string]interface{}) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.Meter{}).
		Where("id = ? AND property_id IN (?)", id, ownedPropertyIDs(db, s)).
		Updates(fields)
	return notFoundIfNone(result)
}

// SetAssignment writes tenant_id and status together; a nil tenantID clears the assignment
func (r *meterRepository) SetAssignment(ctx context.Context, s session.Session, id string, tenantID *string, status models.MeterStatus) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.Meter{}).
		Where("id = ? AND property_id IN (?)", id, ownedPropertyIDs(db, s)).
		Updates(map[string]interface{}{
			"tenant_id": tenantID,
			"status":    status,
		})
	return notFoundIfNone(result)
}

// Delete removes a meter
func (r *meterRepository) Delete(ctx context.Context, s session.Session, id string) error {
	db := r.db.WithContext(ctx)
	result := db.Where("id = ? AND property_id IN (?)", id, ownedPropertyIDs(db, s)).
		Delete(&models.Meter{})
	return notFoundIfNone(result)
}

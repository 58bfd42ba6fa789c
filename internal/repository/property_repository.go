package repository

import (
	"context"

	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/session"
)

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	List(ctx context.Context, s session.Session) ([]*models.Property, error)
	GetByID(ctx context.Context, s session.Session, id string) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	Update(ctx context.Context, s session.Session, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, s session.Session, id string) error
}

// propertyRepository implements PropertyRepository
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new instance of PropertyRepository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

// List retrieves the landlord's properties, newest first
func (r *propertyRepository) List(ctx context.Context, s session.Session) ([]*models.Property, error) {
	var properties []*models.Property

	err := r.db.WithContext(ctx).
		Where("landlord_id = ?", s.LandlordID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}

	return properties, nil
}

// GetByID retrieves a property by ID
func (r *propertyRepository) GetByID(ctx context.Context, s session.Session, id string) (*models.Property, error) {
	var property models.Property

	err := r.db.WithContext(ctx).
		Where("id = ? AND landlord_id = ?", id, s.LandlordID).
		First(&property).Error
	if err != nil {
		return nil, err
	}

	return &property, nil
}

// Create inserts a property
func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// Update replaces the editable fields of a property
func (r *propertyRepository) Update(ctx context.Context, s session.Session, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ? AND landlord_id = ?", id, s.LandlordID).
		Updates(fields)
	return notFoundIfNone(result)
}

// Delete removes a property; dependent rows are removed by the foreign keys
func (r *propertyRepository) Delete(ctx context.Context, s session.Session, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND landlord_id = ?", id, s.LandlordID).
		Delete(&models.Property{})
	return notFoundIfNone(result)
}

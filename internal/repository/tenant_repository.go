package repository

import (
	"context"

	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/session"
)

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	List(ctx context.Context, s session.Session) ([]*models.Tenant, error)
	ListByProperty(ctx context.Context, s session.Session, propertyID string) ([]*models.Tenant, error)
	GetByID(ctx context.Context, s session.Session, id string) (*models.Tenant, error)
	Create(ctx context.Context, tenant *models.Tenant) error
	Update(ctx context.Context, s session.Session, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, s session.Session, id string) error
}

// tenantRepository implements TenantRepository
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new instance of TenantRepository
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{
		db: db,
	}
}

// List retrieves all tenants with their property, newest first
func (r *tenantRepository) List(ctx context.Context, s session.Session) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	db := r.db.WithContext(ctx)

	err := db.Preload("Property").
		Where("property_id IN (?)", ownedPropertyIDs(db, s)).
		Order("created_at DESC").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}

	return tenants, nil
}

// ListByProperty retrieves the tenants of one property ordered by unit number
func (r *tenantRepository) ListByProperty(ctx context.Context, s session.Session, propertyID string) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	db := r.db.WithContext(ctx)

	err := db.Preload("Property").
		Where("property_id = ? AND property_id IN (?)", propertyID, ownedPropertyIDs(db, s)).
		Order("unit_number").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}

	return tenants, nil
}

// GetByID retrieves a tenant by ID with its property
func (r *tenantRepository) GetByID(ctx context.Context, s session.Session, id string) (*models.Tenant, error) {
	var tenant models.Tenant
	db := r.db.WithContext(ctx)

	err := db.Preload("Property").
		Where("id = ? AND property_id IN (?)", id, ownedPropertyIDs(db, s)).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}

	return &tenant, nil
}

// Create inserts a tenant
func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Omit("Property").Create(tenant).Error
}

// Update replaces the editable fields of a tenant
func (r *tenantRepository) Update(ctx context.Context, s session.Session, id string, fields map[string]interface{}) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.Tenant{}).
		Where("id = ? AND property_id IN (?)", id, ownedPropertyIDs(db, s)).
		Updates(fields)
	return notFoundIfNone(result)
}

// Delete removes a tenant
func (r *tenantRepository) Delete(ctx context.Context, s session.Session, id string) error {
	db := r.db.WithContext(ctx)
	result := db.Where("id = ? AND property_id IN (?)", id, ownedPropertyIDs(db, s)).
		Delete(&models.Tenant{})
	return notFoundIfNone(result)
}

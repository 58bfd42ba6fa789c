package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/session"
)

// BillingFilter narrows billing list queries
type BillingFilter struct {
	TenantID *string
	Status   *models.BillingStatus
}

// BillingRepository defines the interface for billing data operations
type BillingRepository interface {
	List(ctx context.Context, s session.Session, filter BillingFilter) ([]*models.Billing, error)
	ListPending(ctx context.Context, s session.Session) ([]*models.Billing, error)
	GetByID(ctx context.Context, s session.Session, id string) (*models.Billing, error)
	GetByIDForUpdate(ctx context.Context, s session.Session, id string) (*models.Billing, error)
	Create(ctx context.Context, billing *models.Billing) error
	Update(ctx context.Context, s session.Session, id string, fields map[string]interface{}) error
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// billingRepository implements BillingRepository
type billingRepository struct {
	db *gorm.DB
}

// NewBillingRepository creates a new instance of BillingRepository
func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{
		db: db,
	}
}

func (r *billingRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Tenant.Property").Preload("Meter")
}

// List retrieves bills with tenant, property and meter, newest first
func (r *billingRepository) List(ctx context.Context, s session.Session, filter BillingFilter) ([]*models.Billing, error) {
	var billings []*models.Billing
	db := r.db.WithContext(ctx)

	query := r.withRelations(db).Where("tenant_id IN (?)", ownedTenantIDs(db, s))
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Order("created_at DESC").Find(&billings).Error; err != nil {
		return nil, err
	}

	return billings, nil
}

// ListPending retrieves pending bills ordered by due date, earliest first
func (r *billingRepository) ListPending(ctx context.Context, s session.Session) ([]*models.Billing, error) {
	var billings []*models.Billing
	db := r.db.WithContext(ctx)

	err := r.withRelations(db).
		Where("status = ? AND tenant_id IN (?)", models.BillingStatusPending, ownedTenantIDs(db, s)).
		Order("due_date ASC").
		Find(&billings).Error
	if err != nil {
		return nil, err
	}

	return billings, nil
}

// GetByID retrieves a bill by ID
func (r *billingRepository) GetByID(ctx context.Context, s session.Session, id string) (*models.Billing, error) {
	var billing models.Billing
	db := r.db.WithContext(ctx)

	err := r.withRelations(db).
		Where("id = ? AND tenant_id IN (?)", id, ownedTenantIDs(db, s)).
		First(&billing).Error
	if err != nil {
		return nil, err
	}

	return &billing, nil
}

// GetByIDForUpdate reads a bill without relations, locking the row where the dialect supports it
func (r *billingRepository) GetByIDForUpdate(ctx context.Context, s session.Session, id string) (*models.Billing, error) {
	var billing models.Billing
	db := r.db.WithContext(ctx)

	query := db.Where("id = ? AND tenant_id IN (?)", id, ownedTenantIDs(db, s))
	if db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&billing).Error; err != nil {
		return nil, err
	}

	return &billing, nil
}

// Create inserts a bill
func (r *billingRepository) Create(ctx context.Context, billing *models.Billing) error {
	return r.db.WithContext(ctx).Omit("Tenant", "Meter").Create(billing).Error
}

// Update replaces the editable fields of a bill
func (r *billingRepository) Update(ctx context.Context, s session.Session, id string, fields map[string]interface{}) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.Billing{}).
		Where("id = ? AND tenant_id IN (?)", id, ownedTenantIDs(db, s)).
		Updates(fields)
	return notFoundIfNone(result)
}

// MarkPaid sets a bill to paid and stamps paid_date
func (r *billingRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Billing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    models.BillingStatusPaid,
			"paid_date": paidAt,
		})
	return notFoundIfNone(result)
}

// MarkOverdue moves every pending bill whose due date has passed to overdue
func (r *billingRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Billing{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", models.BillingStatusPending, now).
		Update("status", models.BillingStatusOverdue)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

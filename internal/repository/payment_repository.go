package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/session"
)

// PaymentAmountFilter selects the payment amounts fed into statistics
type PaymentAmountFilter struct {
	Status *models.PaymentStatus
	Since  *time.Time
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	List(ctx context.Context, s session.Session, page, perPage int) ([]*models.Payment, int64, error)
	ListByTenant(ctx context.Context, s session.Session, tenantID string) ([]*models.Payment, error)
	GetByID(ctx context.Context, s session.Session, id string) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) error
	SetMpesaTransactionID(ctx context.Context, id, transactionID string) error
	Amounts(ctx context.Context, s session.Session, filter PaymentAmountFilter) ([]decimal.Decimal, error)
}

// paymentRepository implements PaymentRepository
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// List retrieves one page of payments with bill, tenant and property, newest first, and the total count
func (r *paymentRepository) List(ctx context.Context, s session.Session, page, perPage int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64
	db := r.db.WithContext(ctx)

	query := db.Model(&models.Payment{}).Where("tenant_id IN (?)", ownedTenantIDs(db, s)).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	err := query.Preload("Billing.Tenant.Property").Preload("Tenant.Property").
		Order("created_at DESC").
		Offset(offset).
		Limit(perPage).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// ListByTenant retrieves the payments of one tenant, newest first
func (r *paymentRepository) ListByTenant(ctx context.Context, s session.Session, tenantID string) ([]*models.Payment, error) {
	var payments []*models.Payment
	db := r.db.WithContext(ctx)

	err := db.Preload("Billing").Preload("Tenant.Property").
		Where("tenant_id = ? AND tenant_id IN (?)", tenantID, ownedTenantIDs(db, s)).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// GetByID retrieves a payment with its bill and tenant
func (r *paymentRepository) GetByID(ctx context.Context, s session.Session, id string) (*models.Payment, error) {
	var payment models.Payment
	db := r.db.WithContext(ctx)

	err := db.Preload("Billing").Preload("Tenant.Property").
		Where("id = ? AND tenant_id IN (?)", id, ownedTenantIDs(db, s)).
		First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// Create inserts a payment
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Omit("Billing", "Tenant").Create(payment).Error
}

// UpdateStatus sets the status of a payment
func (r *paymentRepository) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("payment_status", status)
	return notFoundIfNone(result)
}

// SetMpesaTransactionID links a payment to the provider's transaction identifier
func (r *paymentRepository) SetMpesaTransactionID(ctx context.Context, id, transactionID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("mpesa_transaction_id", transactionID)
	return notFoundIfNone(result)
}

// Amounts returns the amount column of the matching payments
func (r *paymentRepository) Amounts(ctx context.Context, s session.Session, filter PaymentAmountFilter) ([]decimal.Decimal, error) {
	var amounts []decimal.Decimal
	db := r.db.WithContext(ctx)

	query := db.Model(&models.Payment{}).Where("tenant_id IN (?)", ownedTenantIDs(db, s))
	if filter.Status != nil {
		query = query.Where("payment_status = ?", *filter.Status)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}

	if err := query.Pluck("amount", &amounts).Error; err != nil {
		return nil, err
	}

	return amounts, nil
}

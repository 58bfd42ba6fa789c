package repository

import (
	"context"

	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
)

// MpesaTransactionRepository defines the interface for STK push bookkeeping
type MpesaTransactionRepository interface {
	Create(ctx context.Context, txn *models.MpesaTransaction) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	GetByPaymentID(ctx context.Context, paymentID string) (*models.MpesaTransaction, error)
}

// mpesaTransactionRepository implements MpesaTransactionRepository
type mpesaTransactionRepository struct {
	db *gorm.DB
}

// NewMpesaTransactionRepository creates a new instance of MpesaTransactionRepository
func NewMpesaTransactionRepository(db *gorm.DB) MpesaTransactionRepository {
	return &mpesaTransactionRepository{
		db: db,
	}
}

// Create inserts a transaction row
func (r *mpesaTransactionRepository) Create(ctx context.Context, txn *models.MpesaTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// Update writes the given columns of a transaction
func (r *mpesaTransactionRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.MpesaTransaction{}).
		Where("id = ?", id).
		Updates(fields)
	return notFoundIfNone(result)
}

// GetByPaymentID retrieves the latest transaction of a payment
func (r *mpesaTransactionRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.MpesaTransaction, error) {
	var txn models.MpesaTransaction

	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("created_at DESC").
		First(&txn).Error
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

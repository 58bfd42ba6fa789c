package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents the payments table
type Payment struct {
	ID                 string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	BillingID          string          `json:"billing_id" gorm:"type:varchar(36);index;not null"`
	TenantID           string          `json:"tenant_id" gorm:"type:varchar(36);index;not null"`
	Amount             decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaymentMethod      PaymentMethod   `json:"payment_method" gorm:"type:varchar(20);not null"`
	PaymentStatus      PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);index;not null;default:pending"`
	PaymentReference   string          `json:"payment_reference" gorm:"type:varchar(64);uniqueIndex;not null"`
	MpesaTransactionID *string         `json:"mpesa_transaction_id,omitempty" gorm:"type:varchar(64)"`
	PaymentDate        time.Time       `json:"payment_date" gorm:"not null"`
	ConfirmedAt        *time.Time      `json:"confirmed_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Billing *Billing `json:"billing,omitempty" gorm:"foreignKey:BillingID;constraint:OnDelete:CASCADE"`
	Tenant  *Tenant  `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName sets the insert table name for Payment
func (Payment) TableName() string {
	return "payments"
}

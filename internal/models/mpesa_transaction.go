package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MpesaTransaction represents the mpesa_transactions table, one row per STK push
type MpesaTransaction struct {
	ID                 string                 `json:"id" gorm:"type:varchar(36);primaryKey"`
	PaymentID          *string                `json:"payment_id,omitempty" gorm:"type:varchar(36);index"`
	MerchantRequestID  string                 `json:"merchant_request_id" gorm:"type:varchar(64)"`
	CheckoutRequestID  string                 `json:"checkout_request_id" gorm:"type:varchar(64);index"`
	Amount             decimal.Decimal        `json:"amount" gorm:"type:decimal(12,2);not null"`
	PhoneNumber        string                 `json:"phone_number" gorm:"type:varchar(20);not null"`
	AccountReference   string                 `json:"account_reference" gorm:"type:varchar(32)"`
	TransactionDesc    string                 `json:"transaction_desc"`
	MpesaReceiptNumber *string                `json:"mpesa_receipt_number,omitempty" gorm:"type:varchar(32)"`
	ResultCode         *int                   `json:"result_code,omitempty"`
	ResultDesc         *string                `json:"result_desc,omitempty"`
	TransactionDate    *time.Time             `json:"transaction_date,omitempty"`
	Status             MpesaTransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:initiated"`
	RawResponse        datatypes.JSON         `json:"raw_response,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// TableName sets the insert table name for MpesaTransaction
func (MpesaTransaction) TableName() string {
	return "mpesa_transactions"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing represents the billing table
type Billing struct {
	ID                 string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID           string          `json:"tenant_id" gorm:"type:varchar(36);index;not null"`
	MeterID            string          `json:"meter_id" gorm:"type:varchar(36);index;not null"`
	BillingPeriodStart time.Time       `json:"billing_period_start" gorm:"type:date;not null"`
	BillingPeriodEnd   time.Time       `json:"billing_period_end" gorm:"type:date;not null"`
	WaterConsumption   decimal.Decimal `json:"water_consumption" gorm:"type:decimal(14,3);not null;default:0"`
	RatePerUnit        decimal.Decimal `json:"rate_per_unit" gorm:"type:decimal(12,2);not null"`
	WaterCharges       decimal.Decimal `json:"water_charges" gorm:"type:decimal(12,2);not null"`
	ServiceCharges     decimal.Decimal `json:"service_charges" gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount        decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Status             BillingStatus   `json:"status" gorm:"type:varchar(20);index;not null;default:pending"`
	DueDate            *time.Time      `json:"due_date,omitempty"`
	PaidDate           *time.Time      `json:"paid_date,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Meter  *Meter  `json:"meter,omitempty" gorm:"foreignKey:MeterID;constraint:OnDelete:CASCADE"`
}

// TableName sets the insert table name for Billing
func (Billing) TableName() string {
	return "billing"
}

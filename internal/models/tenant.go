package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tenant represents the tenants table
type Tenant struct {
	ID             string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	PropertyID     string          `json:"property_id" gorm:"type:varchar(36);index;not null"`
	UserID         *string         `json:"user_id,omitempty" gorm:"type:varchar(64)"`
	UnitNumber     string          `json:"unit_number" gorm:"not null"`
	LeaseStartDate time.Time       `json:"lease_start_date" gorm:"type:date;not null"`
	LeaseEndDate   time.Time       `json:"lease_end_date" gorm:"type:date;not null"`
	MonthlyRent    decimal.Decimal `json:"monthly_rent" gorm:"type:decimal(12,2);not null"`
	Status         TenantStatus    `json:"status" gorm:"type:varchar(20);not null;default:active"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	Email          *string         `json:"email,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// TableName sets the insert table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}

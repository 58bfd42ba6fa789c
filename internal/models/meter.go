package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meter represents the meters table
type Meter struct {
	ID               string              `json:"id" gorm:"type:varchar(36);primaryKey"`
	PropertyID       string              `json:"property_id" gorm:"type:varchar(36);index;not null"`
	TenantID         *string             `json:"tenant_id,omitempty" gorm:"type:varchar(36);index"`
	MeterNumber      string              `json:"meter_number" gorm:"not null"`
	MeterType        MeterType           `json:"meter_type" gorm:"type:varchar(20);not null"`
	Location         string              `json:"location"`
	InstallationDate time.Time           `json:"installation_date" gorm:"type:date"`
	LastReadingDate  *time.Time          `json:"last_reading_date,omitempty"`
	LastReadingValue decimal.NullDecimal `json:"last_reading_value" gorm:"type:decimal(14,3)"`
	Status           MeterStatus         `json:"status" gorm:"type:varchar(20);not null;default:available"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Tenant   *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:SET NULL"`
}

// TableName sets the insert table name for Meter
func (Meter) TableName() string {
	return "meters"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MeterReading represents the meter_readings table; rows are append-only
type MeterReading struct {
	ID              string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	MeterID         string          `json:"meter_id" gorm:"type:varchar(36);index:idx_meter_readings_meter_date;not null"`
	ReadingValue    decimal.Decimal `json:"reading_value" gorm:"type:decimal(14,3);not null"`
	ReadingDate     time.Time       `json:"reading_date" gorm:"index:idx_meter_readings_meter_date;not null"`
	PreviousReading decimal.Decimal `json:"previous_reading" gorm:"type:decimal(14,3);not null;default:0"`
	Consumption     decimal.Decimal `json:"consumption" gorm:"type:decimal(14,3);not null;default:0"`
	RecordedBy      *string         `json:"recorded_by,omitempty" gorm:"type:varchar(64)"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`

	Meter *Meter `json:"meter,omitempty" gorm:"foreignKey:MeterID;constraint:OnDelete:CASCADE"`
}

// TableName sets the insert table name for MeterReading
func (MeterReading) TableName() string {
	return "meter_readings"
}

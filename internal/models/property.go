package models

import (
	"time"
)

// Property represents the properties table
type Property struct {
	ID           string       `json:"id" gorm:"type:varchar(36);primaryKey"`
	LandlordID   string       `json:"landlord_id" gorm:"type:varchar(64);index;not null"`
	Name         string       `json:"name" gorm:"not null"`
	Address      string       `json:"address" gorm:"not null"`
	PropertyType PropertyType `json:"property_type" gorm:"type:varchar(20);not null"`
	TotalUnits   int          `json:"total_units" gorm:"not null;default:0"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName sets the insert table name for Property
func (Property) TableName() string {
	return "properties"
}

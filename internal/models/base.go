package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllModels lists every table owned by the service, in dependency order
func AllModels() []interface{} {
	return []interface{}{
		&Property{},
		&Tenant{},
		&Meter{},
		&MeterReading{},
		&Billing{},
		&Payment{},
		&MpesaTransaction{},
		&LogScheduler{},
	}
}

// assignID sets a new UUID primary key when the caller did not provide one
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// BeforeCreate assigns the property id
func (p *Property) BeforeCreate(tx *gorm.DB) error { assignID(&p.ID); return nil }

// BeforeCreate assigns the tenant id
func (t *Tenant) BeforeCreate(tx *gorm.DB) error { assignID(&t.ID); return nil }

// BeforeCreate assigns the meter id
func (m *Meter) BeforeCreate(tx *gorm.DB) error { assignID(&m.ID); return nil }

// BeforeCreate assigns the reading id
func (r *MeterReading) BeforeCreate(tx *gorm.DB) error { assignID(&r.ID); return nil }

// BeforeCreate assigns the bill id
func (b *Billing) BeforeCreate(tx *gorm.DB) error { assignID(&b.ID); return nil }

// BeforeCreate assigns the payment id
func (p *Payment) BeforeCreate(tx *gorm.DB) error { assignID(&p.ID); return nil }

// BeforeCreate assigns the transaction id
func (m *MpesaTransaction) BeforeCreate(tx *gorm.DB) error { assignID(&m.ID); return nil }

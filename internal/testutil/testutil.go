// Package testutil provides an in-memory database and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smarta-landlord-svc/internal/config"
	"smarta-landlord-svc/internal/database"
	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/session"
)

// NewTestDB opens a migrated, isolated in-memory sqlite database
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewDatabase(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())

	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

// Session returns a session for a fresh landlord id
func Session() session.Session {
	return session.Session{LandlordID: uuid.NewString(), Phone: "254712345678"}
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateProperty inserts a residential property owned by the session landlord
func CreateProperty(t *testing.T, db *gorm.DB, s session.Session, name string) *models.Property {
	t.Helper()
	p := &models.Property{
		LandlordID:   s.LandlordID,
		Name:         name,
		Address:      "Ngong Road, Nairobi",
		PropertyType: models.PropertyTypeResidential,
		TotalUnits:   10,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateTenant inserts an active tenant in the property
func CreateTenant(t *testing.T, db *gorm.DB, propertyID, unit string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		PropertyID:     propertyID,
		UnitNumber:     unit,
		LeaseStartDate: Date(2025, time.January, 1),
		LeaseEndDate:   Date(2026, time.January, 1),
		MonthlyRent:    decimal.NewFromInt(25000),
		Status:         models.TenantStatusActive,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

// CreateMeter inserts a water meter, assigned when tenantID is non-nil
func CreateMeter(t *testing.T, db *gorm.DB, propertyID string, tenantID *string, number string) *models.Meter {
	t.Helper()
	status := models.MeterStatusAvailable
	if tenantID != nil {
		status = models.MeterStatusActive
	}
	m := &models.Meter{
		PropertyID:       propertyID,
		TenantID:         tenantID,
		MeterNumber:      number,
		MeterType:        models.MeterTypeWater,
		Location:         "Ground floor",
		InstallationDate: Date(2024, time.June, 1),
		Status:           status,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

// CreateBilling inserts a bill with the given total and status
func CreateBilling(t *testing.T, db *gorm.DB, tenantID, meterID string, total int64, status models.BillingStatus, due *time.Time) *models.Billing {
	t.Helper()
	b := &models.Billing{
		TenantID:           tenantID,
		MeterID:            meterID,
		BillingPeriodStart: Date(2025, time.May, 1),
		BillingPeriodEnd:   Date(2025, time.May, 31),
		WaterConsumption:   decimal.NewFromInt(10),
		RatePerUnit:        decimal.NewFromInt(total / 10),
		WaterCharges:       decimal.NewFromInt(total),
		ServiceCharges:     decimal.Zero,
		TotalAmount:        decimal.NewFromInt(total),
		Status:             status,
		DueDate:            due,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

// CreatePayment inserts a payment with an explicit created_at
func CreatePayment(t *testing.T, db *gorm.DB, bill *models.Billing, amount int64, status models.PaymentStatus, createdAt time.Time) *models.Payment {
	t.Helper()
	p := &models.Payment{
		BillingID:        bill.ID,
		TenantID:         bill.TenantID,
		Amount:           decimal.NewFromInt(amount),
		PaymentMethod:    models.PaymentMethodCash,
		PaymentStatus:    status,
		PaymentReference: "REF-" + uuid.NewString(),
		PaymentDate:      createdAt,
		CreatedAt:        createdAt,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

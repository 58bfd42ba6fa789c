package repository

import (
	"context"

	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/session"
)

// MeterCounts holds the meter totals shown on the dashboard
type MeterCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// DashboardRepository defines the interface for dashboard data operations
type DashboardRepository interface {
	CountProperties(ctx context.Context, s session.Session) (int64, error)
	CountTenantsByStatus(ctx context.Context, s session.Session, status models.TenantStatus) (int64, error)
	GetMeterCounts(ctx context.Context, s session.Session) (*MeterCounts, error)
}

// dashboardRepository implements DashboardRepository
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// CountProperties counts the landlord's properties
func (r *dashboardRepository) CountProperties(ctx context.Context, s session.Session) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("landlord_id = ?", s.LandlordID).
		Count(&count).Error
	return count, err
}

// CountTenantsByStatus counts the landlord's tenants in the given status
func (r *dashboardRepository) CountTenantsByStatus(ctx context.Context, s session.Session, status models.TenantStatus) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx)
	err := db.Model(&models.Tenant{}).
		Where("status = ? AND property_id IN (?)", status, ownedPropertyIDs(db, s)).
		Count(&count).Error
	return count, err
}

// GetMeterCounts retrieves the total and active meter counts in one pass
func (r *dashboardRepository) GetMeterCounts(ctx context.Context, s session.Session) (*MeterCounts, error) {
	var result MeterCounts

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN m.status = ? THEN 1 END) AS active
		FROM meters m
		JOIN properties p
			ON p.id = m.property_id
		   AND p.landlord_id = ?
	`

	err := r.db.WithContext(ctx).Raw(query, models.MeterStatusActive, s.LandlordID).Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

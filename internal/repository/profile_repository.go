package repository

import (
	"context"

	"gorm.io/gorm"

	"smarta-landlord-svc/internal/session"
)

// PortfolioSummary counts what a landlord manages
type PortfolioSummary struct {
	TotalProperties int64
	TotalTenants    int64
	TotalMeters     int64
}

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	GetPortfolioSummary(ctx context.Context, s session.Session) (*PortfolioSummary, error)
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// GetPortfolioSummary retrieves property, tenant and meter counts for the landlord
func (r *profileRepository) GetPortfolioSummary(ctx context.Context, s session.Session) (*PortfolioSummary, error) {
	var summary PortfolioSummary

	query := `
		select
			(select count(*) from properties p where p.landlord_id = ?) as total_properties,
			(select count(*) from tenants t
				inner join properties p on p.id = t.property_id
				where p.landlord_id = ?) as total_tenants,
			(select count(*) from meters m
				inner join properties p on p.id = m.property_id
				where p.landlord_id = ?) as total_meters
	`

	err := r.db.WithContext(ctx).Raw(query, s.LandlordID, s.LandlordID, s.LandlordID).Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

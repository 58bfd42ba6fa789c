package service

import (
	"context"

	"smarta-landlord-svc/internal/models/response"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// landlordRole is the only role this service serves
const landlordRole = "landlord"

// ProfileService interface defines profile service methods
type ProfileService interface {
	GetProfile(ctx context.Context, s session.Session) (*response.ProfileResponse, error)
}

// profileService implements ProfileService interface
type profileService struct {
	profileRepo repository.ProfileRepository
	logger      *logger.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// GetProfile returns the signed-in landlord with a count of what they manage
func (s *profileService) GetProfile(ctx context.Context, sess session.Session) (*response.ProfileResponse, error) {
	if !sess.Valid() {
		return nil, invalidf("session has no landlord")
	}

	summary, err := s.profileRepo.GetPortfolioSummary(ctx, sess)
	if err != nil {
		s.logger.WithError(err).WithField("landlord_id", sess.LandlordID).Error("Failed to get portfolio summary")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"landlord_id":      sess.LandlordID,
		"total_properties": summary.TotalProperties,
	}).Debug("Profile retrieved successfully")

	return &response.ProfileResponse{
		LandlordID:      sess.LandlordID,
		Phone:           sess.Phone,
		Role:            landlordRole,
		TotalProperties: summary.TotalProperties,
		TotalTenants:    summary.TotalTenants,
		TotalMeters:     summary.TotalMeters,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/models/response"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// PropertyInput is the editable part of a property
type PropertyInput struct {
	Name         string              `json:"name" binding:"required" example:"Kilimani Court"`
	Address      string              `json:"address" binding:"required" example:"Argwings Kodhek Rd, Nairobi"`
	PropertyType models.PropertyType `json:"property_type" binding:"required" example:"residential"`
	TotalUnits   int                 `json:"total_units" example:"12"`
}

func (in *PropertyInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)

	switch {
	case in.Name == "":
		return invalidf("name is required")
	case in.Address == "":
		return invalidf("address is required")
	case !in.PropertyType.Valid():
		return invalidf("property_type must be residential, commercial or mixed")
	case in.TotalUnits < 0:
		return invalidf("total_units must not be negative")
	}
	return nil
}

// PropertyService defines the interface for property business operations
type PropertyService interface {
	List(ctx context.Context, s session.Session) ([]*models.Property, error)
	GetByID(ctx context.Context, s session.Session, id string) (*models.Property, error)
	Create(ctx context.Context, s session.Session, in PropertyInput) (*models.Property, error)
	Update(ctx context.Context, s session.Session, id string, in PropertyInput) (*models.Property, error)
	Delete(ctx context.Context, s session.Session, id string) error
	GetOverview(ctx context.Context, s session.Session, id string) (*response.PropertyOverviewResponse, error)
}

// propertyService implements PropertyService
type propertyService struct {
	propertyRepo repository.PropertyRepository
	tenantRepo   repository.TenantRepository
	meterRepo    repository.MeterRepository
	logger       *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService
func NewPropertyService(
	propertyRepo repository.PropertyRepository,
	tenantRepo repository.TenantRepository,
	meterRepo repository.MeterRepository,
	logger *logger.Logger,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		meterRepo:    meterRepo,
		logger:       logger,
	}
}

// List retrieves the landlord's properties
func (s *propertyService) List(ctx context.Context, sess session.Session) ([]*models.Property, error) {
	properties, err := s.propertyRepo.List(ctx, sess)
	if err != nil {
		s.logger.WithError(err).WithField("landlord_id", sess.LandlordID).Error("Failed to list properties")
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// GetByID retrieves one property
func (s *propertyService) GetByID(ctx context.Context, sess session.Session, id string) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, sess, id)
	if err != nil {
		return nil, notFoundOr(err, "property")
	}
	return property, nil
}

// Create stores a new property owned by the session landlord
func (s *propertyService) Create(ctx context.Context, sess session.Session, in PropertyInput) (*models.Property, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	property := &models.Property{
		LandlordID:   sess.LandlordID,
		Name:         in.Name,
		Address:      in.Address,
		PropertyType: in.PropertyType,
		TotalUnits:   in.TotalUnits,
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		s.logger.WithError(err).WithField("landlord_id", sess.LandlordID).Error("Failed to create property")
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"property_id": property.ID,
		"landlord_id": sess.LandlordID,
	}).Info("Property created")

	return property, nil
}

// Update replaces the editable fields of a property
func (s *propertyService) Update(ctx context.Context, sess session.Session, id string, in PropertyInput) (*models.Property, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	err := s.propertyRepo.Update(ctx, sess, id, map[string]interface{}{
		"name":          in.Name,
		"address":       in.Address,
		"property_type": in.PropertyType,
		"total_units":   in.TotalUnits,
	})
	if err != nil {
		return nil, notFoundOr(err, "property")
	}

	return s.GetByID(ctx, sess, id)
}

// Delete removes a property together with its tenants, meters and their history
func (s *propertyService) Delete(ctx context.Context, sess session.Session, id string) error {
	if err := s.propertyRepo.Delete(ctx, sess, id); err != nil {
		return notFoundOr(err, "property")
	}

	s.logger.WithField("property_id", id).Info("Property deleted")
	return nil
}

// GetOverview loads a property with its tenants and meters concurrently; any failed read fails the call
func (s *propertyService) GetOverview(ctx context.Context, sess session.Session, id string) (*response.PropertyOverviewResponse, error) {
	overview := &response.PropertyOverviewResponse{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		property, err := s.propertyRepo.GetByID(gctx, sess, id)
		if err != nil {
			return notFoundOr(err, "property")
		}
		overview.Property = property
		return nil
	})
	g.Go(func() error {
		tenants, err := s.tenantRepo.ListByProperty(gctx, sess, id)
		if err != nil {
			return fmt.Errorf("failed to list tenants: %w", err)
		}
		overview.Tenants = tenants
		return nil
	})
	g.Go(func() error {
		meters, err := s.meterRepo.ListByProperty(gctx, sess, id)
		if err != nil {
			return fmt.Errorf("failed to list meters: %w", err)
		}
		overview.Meters = meters
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithField("property_id", id).Warn("Failed to load property overview")
		return nil, err
	}

	return overview, nil
}

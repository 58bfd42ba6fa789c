package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// TenantInput is the editable part of a tenancy
type TenantInput struct {
	PropertyID     string              `json:"property_id" binding:"required"`
	UnitNumber     string              `json:"unit_number" binding:"required" example:"A4"`
	LeaseStartDate string              `json:"lease_start_date" binding:"required" example:"2025-01-01"`
	LeaseEndDate   string              `json:"lease_end_date" binding:"required" example:"2025-12-31"`
	MonthlyRent    decimal.Decimal     `json:"monthly_rent" swaggertype:"string" example:"25000"`
	Status         models.TenantStatus `json:"status" example:"active"`
	PhoneNumber    *string             `json:"phone_number,omitempty" example:"0712345678"`
	Email          *string             `json:"email,omitempty" example:"tenant@example.com"`
	UserID         *string             `json:"user_id,omitempty"`
}

// toModel validates the input and returns the tenant it describes
func (in *TenantInput) toModel() (*models.Tenant, error) {
	in.UnitNumber = strings.TrimSpace(in.UnitNumber)
	if in.UnitNumber == "" {
		return nil, invalidf("unit_number is required")
	}
	if in.MonthlyRent.IsNegative() {
		return nil, invalidf("monthly_rent must not be negative")
	}
	if in.Status == "" {
		in.Status = models.TenantStatusActive
	}
	if !in.Status.Valid() {
		return nil, invalidf("status must be active, inactive or pending")
	}

	start, err := parseDate("lease_start_date", in.LeaseStartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("lease_end_date", in.LeaseEndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, invalidf("lease_end_date must not be before lease_start_date")
	}

	return &models.Tenant{
		PropertyID:     in.PropertyID,
		UnitNumber:     in.UnitNumber,
		LeaseStartDate: start,
		LeaseEndDate:   end,
		MonthlyRent:    in.MonthlyRent.Round(minorUnitPlaces),
		Status:         in.Status,
		PhoneNumber:    in.PhoneNumber,
		Email:          in.Email,
		UserID:         in.UserID,
	}, nil
}

func tenantColumns(t *models.Tenant) map[string]interface{} {
	return map[string]interface{}{
		"property_id":      t.PropertyID,
		"unit_number":      t.UnitNumber,
		"lease_start_date": t.LeaseStartDate,
		"lease_end_date":   t.LeaseEndDate,
		"monthly_rent":     t.MonthlyRent,
		"status":           t.Status,
		"phone_number":     t.PhoneNumber,
		"email":            t.Email,
		"user_id":          t.UserID,
	}
}

// TenantService defines the interface for tenant business operations
type TenantService interface {
	List(ctx context.Context, s session.Session) ([]*models.Tenant, error)
	ListByProperty(ctx context.Context, s session.Session, propertyID string) ([]*models.Tenant, error)
	GetByID(ctx context.Context, s session.Session, id string) (*models.Tenant, error)
	Create(ctx context.Context, s session.Session, in TenantInput) (*models.Tenant, error)
	Update(ctx context.Context, s session.Session, id string, in TenantInput) (*models.Tenant, error)
	Delete(ctx context.Context, s session.Session, id string) error
}

// tenantService implements TenantService
type tenantService struct {
	tenantRepo   repository.TenantRepository
	propertyRepo repository.PropertyRepository
	logger       *logger.Logger
}

// NewTenantService creates a new instance of TenantService
func NewTenantService(tenantRepo repository.TenantRepository, propertyRepo repository.PropertyRepository, logger *logger.Logger) TenantService {
	return &tenantService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// List retrieves every tenant of the landlord with their property
func (s *tenantService) List(ctx context.Context, sess session.Session) ([]*models.Tenant, error) {
	tenants, err := s.tenantRepo.List(ctx, sess)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list tenants")
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

// ListByProperty retrieves the tenants of one property
func (s *tenantService) ListByProperty(ctx context.Context, sess session.Session, propertyID string) ([]*models.Tenant, error) {
	if _, err := s.propertyRepo.GetByID(ctx, sess, propertyID); err != nil {
		return nil, notFoundOr(err, "property")
	}

	tenants, err := s.tenantRepo.ListByProperty(ctx, sess, propertyID)
	if err != nil {
		s.logger.WithError(err).WithField("property_id", propertyID).Error("Failed to list tenants by property")
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

// GetByID retrieves one tenant
func (s *tenantService) GetByID(ctx context.Context, sess session.Session, id string) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, sess, id)
	if err != nil {
		return nil, notFoundOr(err, "tenant")
	}
	return tenant, nil
}

// Create stores a tenant in one of the landlord's properties
func (s *tenantService) Create(ctx context.Context, sess session.Session, in TenantInput) (*models.Tenant, error) {
	tenant, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.GetByID(ctx, sess, in.PropertyID); err != nil {
		return nil, notFoundOr(err, "property")
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		s.logger.WithError(err).WithField("property_id", in.PropertyID).Error("Failed to create tenant")
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id":   tenant.ID,
		"property_id": tenant.PropertyID,
	}).Info("Tenant created")

	return s.GetByID(ctx, sess, tenant.ID)
}

// Update replaces the editable fields of a tenant
func (s *tenantService) Update(ctx context.Context, sess session.Session, id string, in TenantInput) (*models.Tenant, error) {
	tenant, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.GetByID(ctx, sess, in.PropertyID); err != nil {
		return nil, notFoundOr(err, "property")
	}

	if err := s.tenantRepo.Update(ctx, sess, id, tenantColumns(tenant)); err != nil {
		return nil, notFoundOr(err, "tenant")
	}

	return s.GetByID(ctx, sess, id)
}

// Delete removes a tenant; their meters are released and their bills and payments removed
func (s *tenantService) Delete(ctx context.Context, sess session.Session, id string) error {
	if err := s.tenantRepo.Delete(ctx, sess, id); err != nil {
		return notFoundOr(err, "tenant")
	}

	s.logger.WithField("tenant_id", id).Info("Tenant deleted")
	return nil
}

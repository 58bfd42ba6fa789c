package service

import (
	"context"
	"fmt"
	"strings"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// MeterInput is the editable part of a meter. TenantID is honoured on create only.
type MeterInput struct {
	PropertyID       string             `json:"property_id" binding:"required"`
	TenantID         *string            `json:"tenant_id,omitempty"`
	MeterNumber      string             `json:"meter_number" binding:"required" example:"WM-0042"`
	MeterType        models.MeterType   `json:"meter_type" binding:"required" example:"water"`
	Location         string             `json:"location" example:"Block A, ground floor"`
	InstallationDate string             `json:"installation_date" binding:"required" example:"2024-06-01"`
	Status           models.MeterStatus `json:"status,omitempty" example:"available"`
}

func (in *MeterInput) validate() error {
	in.MeterNumber = strings.TrimSpace(in.MeterNumber)
	if in.MeterNumber == "" {
		return invalidf("meter_number is required")
	}
	if !in.MeterType.Valid() {
		return invalidf("meter_type must be water, electricity or gas")
	}
	if in.Status != "" && !in.Status.Valid() {
		return invalidf("status must be active, available, maintenance or inactive")
	}
	return nil
}

// AssignMeterInput names the tenant a meter is assigned to
type AssignMeterInput struct {
	TenantID string `json:"tenant_id" binding:"required"`
}

// MeterService defines the interface for meter business operations
type MeterService interface {
	List(ctx context.Context, s session.Session) ([]*models.Meter, error)
	ListByProperty(ctx context.Context, s session.Session, propertyID string) ([]*models.Meter, error)
	ListAvailable(ctx context.Context, s session.Session) ([]*models.Meter, error)
	GetByID(ctx context.Context, s session.Session, id string) (*models.Meter, error)
	Create(ctx context.Context, s session.Session, in MeterInput) (*models.Meter, error)
	Update(ctx context.Context, s session.Session, id string, in MeterInput) (*models.Meter, error)
	Delete(ctx context.Context, s session.Session, id string) error
	Assign(ctx context.Context, s session.Session, meterID, tenantID string) (*models.Meter, error)
	Unassign(ctx context.Context, s session.Session, meterID string) (*models.Meter, error)
}

// meterService implements MeterService
type meterService struct {
	meterRepo    repository.MeterRepository
	propertyRepo repository.PropertyRepository
	tenantRepo   repository.TenantRepository
	logger       *logger.Logger
}

// NewMeterService creates a new instance of MeterService
func NewMeterService(
	meterRepo repository.MeterRepository,
	propertyRepo repository.PropertyRepository,
	tenantRepo repository.TenantRepository,
	logger *logger.Logger,
) MeterService {
	return &meterService{
		meterRepo:    meterRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		logger:       logger,
	}
}

// List retrieves every meter of the landlord
func (s *meterService) List(ctx context.Context, sess session.Session) ([]*models.Meter, error) {
	meters, err := s.meterRepo.List(ctx, sess)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list meters")
		return nil, fmt.Errorf("failed to list meters: %w", err)
	}
	return meters, nil
}

// ListByProperty retrieves the meters of one property
func (s *meterService) ListByProperty(ctx context.Context, sess session.Session, propertyID string) ([]*models.Meter, error) {
	if _, err := s.propertyRepo.GetByID(ctx, sess, propertyID); err != nil {
		return nil, notFoundOr(err, "property")
	}

	meters, err := s.meterRepo.ListByProperty(ctx, sess, propertyID)
	if err != nil {
		s.logger.WithError(err).WithField("property_id", propertyID).Error("Failed to list meters by property")
		return nil, fmt.Errorf("failed to list meters: %w", err)
	}
	return meters, nil
}

// ListAvailable retrieves meters that can be assigned
func (s *meterService) ListAvailable(ctx context.Context, sess session.Session) ([]*models.Meter, error) {
	meters, err := s.meterRepo.ListAvailable(ctx, sess)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list available meters")
		return nil, fmt.Errorf("failed to list available meters: %w", err)
	}
	return meters, nil
}

// GetByID retrieves one meter
func (s *meterService) GetByID(ctx context.Context, sess session.Session, id string) (*models.Meter, error) {
	meter, err := s.meterRepo.GetByID(ctx, sess, id)
	if err != nil {
		return nil, notFoundOr(err, "meter")
	}
	return meter, nil
}

// Create stores a meter; a meter created with a tenant starts active, otherwise available
func (s *meterService) Create(ctx context.Context, sess session.Session, in MeterInput) (*models.Meter, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	installed, err := parseDate("installation_date", in.InstallationDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.GetByID(ctx, sess, in.PropertyID); err != nil {
		return nil, notFoundOr(err, "property")
	}

	meter := &models.Meter{
		PropertyID:       in.PropertyID,
		MeterNumber:      in.MeterNumber,
		MeterType:        in.MeterType,
		Location:         in.Location,
		InstallationDate: installed,
	}

	if in.TenantID != nil && *in.TenantID != "" {
		if _, err := s.tenantRepo.GetByID(ctx, sess, *in.TenantID); err != nil {
			return nil, notFoundOr(err, "tenant")
		}
		meter.TenantID = in.TenantID
		meter.Status = models.MeterStatusActive
	} else {
		meter.Status = unassignedStatus(in.Status)
	}

	if err := s.meterRepo.Create(ctx, meter); err != nil {
		s.logger.WithError(err).WithField("property_id", in.PropertyID).Error("Failed to create meter")
		return nil, fmt.Errorf("failed to create meter: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"meter_id":     meter.ID,
		"meter_number": meter.MeterNumber,
		"status":       meter.Status,
	}).Info("Meter created")

	return s.GetByID(ctx, sess, meter.ID)
}

// unassignedStatus picks the status of a meter without a tenant; it can never be active
func unassignedStatus(requested models.MeterStatus) models.MeterStatus {
	switch requested {
	case models.MeterStatusMaintenance, models.MeterStatusInactive:
		return requested
	}
	return models.MeterStatusAvailable
}

// Update replaces the editable fields of a meter. The assignment is left untouched;
// status may be moved to maintenance or inactive by hand, while active and available
// must agree with whether the meter has a tenant.
func (s *meterService) Update(ctx context.Context, sess session.Session, id string, in MeterInput) (*models.Meter, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	installed, err := parseDate("installation_date", in.InstallationDate)
	if err != nil {
		return nil, err
	}

	current, err := s.meterRepo.GetByID(ctx, sess, id)
	if err != nil {
		return nil, notFoundOr(err, "meter")
	}
	if in.PropertyID != current.PropertyID {
		if _, err := s.propertyRepo.GetByID(ctx, sess, in.PropertyID); err != nil {
			return nil, notFoundOr(err, "property")
		}
	}

	status := in.Status
	if status == "" {
		status = current.Status
	}
	assigned := current.TenantID != nil
	switch {
	case status == models.MeterStatusActive && !assigned:
		return nil, invalidf("an unassigned meter cannot be active; assign a tenant instead")
	case status == models.MeterStatusAvailable && assigned:
		return nil, invalidf("an assigned meter cannot be available; unassign it instead")
	}

	err = s.meterRepo.Update(ctx, sess, id, map[string]interface{}{
		"property_id":       in.PropertyID,
		"meter_number":      in.MeterNumber,
		"meter_type":        in.MeterType,
		"location":          in.Location,
		"installation_date": installed,
		"status":            status,
	})
	if err != nil {
		return nil, notFoundOr(err, "meter")
	}

	return s.GetByID(ctx, sess, id)
}

// Delete removes a meter with its readings and bills
func (s *meterService) Delete(ctx context.Context, sess session.Session, id string) error {
	if err := s.meterRepo.Delete(ctx, sess, id); err != nil {
		return notFoundOr(err, "meter")
	}

	s.logger.WithField("meter_id", id).Info("Meter deleted")
	return nil
}

// Assign attaches a meter to a tenant and makes it active, replacing any previous tenant
func (s *meterService) Assign(ctx context.Context, sess session.Session, meterID, tenantID string) (*models.Meter, error) {
	meter, err := s.meterRepo.GetByID(ctx, sess, meterID)
	if err != nil {
		return nil, notFoundOr(err, "meter")
	}
	if _, err := s.tenantRepo.GetByID(ctx, sess, tenantID); err != nil {
		return nil, notFoundOr(err, "tenant")
	}

	if err := s.meterRepo.SetAssignment(ctx, sess, meterID, &tenantID, models.MeterStatusActive); err != nil {
		return nil, notFoundOr(err, "meter")
	}

	fields := map[string]interface{}{
		"meter_id":  meterID,
		"tenant_id": tenantID,
	}
	if meter.TenantID != nil && *meter.TenantID != tenantID {
		fields["previous_tenant_id"] = *meter.TenantID
	}
	s.logger.WithFields(fields).Info("Meter assigned")

	return s.GetByID(ctx, sess, meterID)
}

// Unassign detaches a meter from its tenant and makes it available, whatever its prior status
func (s *meterService) Unassign(ctx context.Context, sess session.Session, meterID string) (*models.Meter, error) {
	meter, err := s.meterRepo.GetByID(ctx, sess, meterID)
	if err != nil {
		return nil, notFoundOr(err, "meter")
	}

	if err := s.meterRepo.SetAssignment(ctx, sess, meterID, nil, models.MeterStatusAvailable); err != nil {
		return nil, notFoundOr(err, "meter")
	}

	if meter.Status == models.MeterStatusMaintenance || meter.Status == models.MeterStatusInactive {
		s.logger.WithFields(map[string]interface{}{
			"meter_id":     meterID,
			"prior_status": meter.Status,
		}).Warn("Unassigned meter moved to available from a manual status")
	}
	s.logger.WithField("meter_id", meterID).Info("Meter unassigned")

	return s.GetByID(ctx, sess, meterID)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"smarta-landlord-svc/internal/metrics"
	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// BillingDetails are the fields of a bill that can be edited after creation
type BillingDetails struct {
	BillingPeriodStart string          `json:"billing_period_start" binding:"required" example:"2025-05-01"`
	BillingPeriodEnd   string          `json:"billing_period_end" binding:"required" example:"2025-05-31"`
	WaterConsumption   decimal.Decimal `json:"water_consumption" swaggertype:"string" example:"120"`
	RatePerUnit        decimal.Decimal `json:"rate_per_unit" swaggertype:"string" example:"15"`
	ServiceCharges     decimal.Decimal `json:"service_charges" swaggertype:"string" example:"200"`
	DueDate            *string         `json:"due_date,omitempty" example:"2025-06-10"`
}

// BillingInput creates a bill for a tenant's meter
type BillingInput struct {
	TenantID string `json:"tenant_id" binding:"required"`
	MeterID  string `json:"meter_id" binding:"required"`
	BillingDetails
}

// priced validates the details and returns the bill columns they determine
func (in BillingDetails) priced() (*models.Billing, error) {
	start, err := parseDate("billing_period_start", in.BillingPeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("billing_period_end", in.BillingPeriodEnd)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, invalidf("billing_period_end must not be before billing_period_start")
	}
	due, err := parseOptionalDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}

	charges, err := ComputeCharges(in.WaterConsumption, in.RatePerUnit, in.ServiceCharges)
	if err != nil {
		return nil, err
	}

	return &models.Billing{
		BillingPeriodStart: start,
		BillingPeriodEnd:   end,
		WaterConsumption:   in.WaterConsumption,
		RatePerUnit:        in.RatePerUnit,
		WaterCharges:       charges.WaterCharges,
		ServiceCharges:     in.ServiceCharges.Round(minorUnitPlaces),
		TotalAmount:        charges.TotalAmount,
		DueDate:            due,
	}, nil
}

// BillingService defines the interface for billing business operations
type BillingService interface {
	List(ctx context.Context, s session.Session, filter repository.BillingFilter) ([]*models.Billing, error)
	ListByTenant(ctx context.Context, s session.Session, tenantID string) ([]*models.Billing, error)
	ListPending(ctx context.Context, s session.Session) ([]*models.Billing, error)
	GetByID(ctx context.Context, s session.Session, id string) (*models.Billing, error)
	Create(ctx context.Context, s session.Session, in BillingInput) (*models.Billing, error)
	Update(ctx context.Context, s session.Session, id string, in BillingDetails) (*models.Billing, error)
	MarkOverdue(ctx context.Context) (int64, error)
	ExportToExcel(ctx context.Context, s session.Session, filter repository.BillingFilter) ([]byte, string, error)
}

// billingService implements BillingService
type billingService struct {
	billingRepo repository.BillingRepository
	tenantRepo  repository.TenantRepository
	meterRepo   repository.MeterRepository
	currency    string
	logger      *logger.Logger
	now         func() time.Time
}

// NewBillingService creates a new instance of BillingService
func NewBillingService(
	billingRepo repository.BillingRepository,
	tenantRepo repository.TenantRepository,
	meterRepo repository.MeterRepository,
	currency string,
	logger *logger.Logger,
) BillingService {
	return &billingService{
		billingRepo: billingRepo,
		tenantRepo:  tenantRepo,
		meterRepo:   meterRepo,
		currency:    currency,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List retrieves bills, optionally narrowed by tenant and status
func (s *billingService) List(ctx context.Context, sess session.Session, filter repository.BillingFilter) ([]*models.Billing, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, invalidf("status must be pending, paid, overdue or cancelled")
	}

	billings, err := s.billingRepo.List(ctx, sess, filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list billings")
		return nil, fmt.Errorf("failed to list billings: %w", err)
	}
	return billings, nil
}

// ListByTenant retrieves the bills of one tenant
func (s *billingService) ListByTenant(ctx context.Context, sess session.Session, tenantID string) ([]*models.Billing, error) {
	if _, err := s.tenantRepo.GetByID(ctx, sess, tenantID); err != nil {
		return nil, notFoundOr(err, "tenant")
	}
	return s.List(ctx, sess, repository.BillingFilter{TenantID: &tenantID})
}

// ListPending retrieves pending bills, earliest due first
func (s *billingService) ListPending(ctx context.Context, sess session.Session) ([]*models.Billing, error) {
	billings, err := s.billingRepo.ListPending(ctx, sess)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list pending billings")
		return nil, fmt.Errorf("failed to list pending billings: %w", err)
	}
	return billings, nil
}

// GetByID retrieves one bill
func (s *billingService) GetByID(ctx context.Context, sess session.Session, id string) (*models.Billing, error) {
	billing, err := s.billingRepo.GetByID(ctx, sess, id)
	if err != nil {
		return nil, notFoundOr(err, "billing")
	}
	return billing, nil
}

// Create prices and stores a bill; new bills are always pending
func (s *billingService) Create(ctx context.Context, sess session.Session, in BillingInput) (*models.Billing, error) {
	billing, err := in.priced()
	if err != nil {
		return nil, err
	}
	if _, err := s.tenantRepo.GetByID(ctx, sess, in.TenantID); err != nil {
		return nil, notFoundOr(err, "tenant")
	}
	if _, err := s.meterRepo.GetByID(ctx, sess, in.MeterID); err != nil {
		return nil, notFoundOr(err, "meter")
	}

	billing.TenantID = in.TenantID
	billing.MeterID = in.MeterID
	billing.Status = models.BillingStatusPending

	if err := s.billingRepo.Create(ctx, billing); err != nil {
		s.logger.WithError(err).WithField("tenant_id", in.TenantID).Error("Failed to create billing")
		return nil, fmt.Errorf("failed to create billing: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"billing_id":   billing.ID,
		"tenant_id":    billing.TenantID,
		"total_amount": billing.TotalAmount.String(),
	}).Info("Billing created")

	return s.GetByID(ctx, sess, billing.ID)
}

// Update replaces the editable fields of a bill and recomputes its charges
func (s *billingService) Update(ctx context.Context, sess session.Session, id string, in BillingDetails) (*models.Billing, error) {
	billing, err := in.priced()
	if err != nil {
		return nil, err
	}

	err = s.billingRepo.Update(ctx, sess, id, map[string]interface{}{
		"billing_period_start": billing.BillingPeriodStart,
		"billing_period_end":   billing.BillingPeriodEnd,
		"water_consumption":    billing.WaterConsumption,
		"rate_per_unit":        billing.RatePerUnit,
		"water_charges":        billing.WaterCharges,
		"service_charges":      billing.ServiceCharges,
		"total_amount":         billing.TotalAmount,
		"due_date":             billing.DueDate,
	})
	if err != nil {
		return nil, notFoundOr(err, "billing")
	}

	return s.GetByID(ctx, sess, id)
}

// MarkOverdue moves every pending bill past its due date to overdue, for all landlords
func (s *billingService) MarkOverdue(ctx context.Context) (int64, error) {
	n, err := s.billingRepo.MarkOverdue(ctx, s.now())
	if err != nil {
		s.logger.WithError(err).Error("Failed to mark overdue billings")
		return 0, fmt.Errorf("failed to mark overdue billings: %w", err)
	}

	metrics.RecordOverdue(n)
	s.logger.WithField("count", n).Info("Overdue billings marked")

	return n, nil
}

// ExportToExcel writes the filtered bills to an .xlsx workbook
func (s *billingService) ExportToExcel(ctx context.Context, sess session.Session, filter repository.BillingFilter) ([]byte, string, error) {
	billings, err := s.List(ctx, sess, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Warn("Error closing Excel file")
		}
	}()

	sheetName := "Billing"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"No", "Property", "Unit", "Meter", "Period Start", "Period End",
		"Consumption", "Rate", "Water Charges", "Service Charges",
		"Total (" + s.currency + ")", "Status", "Due Date", "Paid Date",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheetName, "A1", lastCol, headerStyle)
	}

	for i, b := range billings {
		var property, unit, meter string
		if b.Tenant != nil {
			unit = b.Tenant.UnitNumber
			if b.Tenant.Property != nil {
				property = b.Tenant.Property.Name
			}
		}
		if b.Meter != nil {
			meter = b.Meter.MeterNumber
		}

		row := []interface{}{
			i + 1,
			property,
			unit,
			meter,
			b.BillingPeriodStart.Format(dateLayout),
			b.BillingPeriodEnd.Format(dateLayout),
			b.WaterConsumption.InexactFloat64(),
			b.RatePerUnit.InexactFloat64(),
			b.WaterCharges.InexactFloat64(),
			b.ServiceCharges.InexactFloat64(),
			b.TotalAmount.InexactFloat64(),
			string(b.Status),
			formatOptionalDate(b.DueDate),
			formatOptionalDate(b.PaidDate),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 16)
	}

	if f.GetSheetName(0) == "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	filename := fmt.Sprintf("billing_export_%s.xlsx", s.now().Format("20060102_150405"))

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"rows":     len(billings),
		"filename": filename,
	}).Info("Billing export generated")

	return buffer.Bytes(), filename, nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

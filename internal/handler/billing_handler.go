package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/pkg/logger"
	"smarta-landlord-svc/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BillingHandler handles billing-related HTTP requests
type BillingHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

// NewBillingHandler creates a new BillingHandler instance
func NewBillingHandler(billingService service.BillingService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// billingFilter reads the optional status and tenant_id query params
func billingFilter(c *gin.Context) repository.BillingFilter {
	var filter repository.BillingFilter
	if status := c.Query("status"); status != "" {
		st := models.BillingStatus(status)
		filter.Status = &st
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		filter.TenantID = &tenantID
	}
	return filter
}

// ListBillings handles GET /api/v1/billings
// @Summary List bills
// @Description List bills newest first with tenant, property and meter, optionally filtered
// @Tags billings
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, paid, overdue or cancelled"
// @Param tenant_id query string false "Tenant ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Billing} "Billings retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid status filter"
// @Router /api/v1/billings [get]
func (h *BillingHandler) ListBillings(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	billings, err := h.billingService.List(c.Request.Context(), s, billingFilter(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve billings")
		return
	}

	utils.SuccessResponse(c, "Billings retrieved successfully", billings)
}

// ListPendingBillings handles GET /api/v1/billings/pending
// @Summary List pending bills
// @Description Pending bills ordered by due date, earliest first
// @Tags billings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.Billing} "Pending billings retrieved successfully"
// @Router /api/v1/billings/pending [get]
func (h *BillingHandler) ListPendingBillings(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	billings, err := h.billingService.ListPending(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve pending billings")
		return
	}

	utils.SuccessResponse(c, "Pending billings retrieved successfully", billings)
}

// GetBilling handles GET /api/v1/billings/:id
// @Summary Get a bill
// @Tags billings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Billing ID"
// @Success 200 {object} utils.APIResponse{data=models.Billing} "Billing retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Billing not found"
// @Router /api/v1/billings/{id} [get]
func (h *BillingHandler) GetBilling(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	billing, err := h.billingService.GetByID(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve billing")
		return
	}

	utils.SuccessResponse(c, "Billing retrieved successfully", billing)
}

// CreateBilling handles POST /api/v1/billings
// @Summary Create a bill
// @Description Water charges and total are computed from consumption, rate and service charges. New bills are pending.
// @Tags billings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.BillingInput true "Bill"
// @Success 201 {object} utils.APIResponse{data=models.Billing} "Billing created successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Tenant or meter not found"
// @Router /api/v1/billings [post]
func (h *BillingHandler) CreateBilling(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.BillingInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	billing, err := h.billingService.Create(c.Request.Context(), s, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create billing")
		return
	}

	utils.CreatedResponse(c, "Billing created successfully", billing)
}

// UpdateBilling handles PUT /api/v1/billings/:id
// @Summary Update a bill
// @Description Charges are recomputed from the submitted figures
// @Tags billings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Billing ID"
// @Param request body service.BillingDetails true "Bill details"
// @Success 200 {object} utils.APIResponse{data=models.Billing} "Billing updated successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Billing not found"
// @Router /api/v1/billings/{id} [put]
func (h *BillingHandler) UpdateBilling(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.BillingDetails
	if !bindJSON(c, h.logger, &req) {
		return
	}

	billing, err := h.billingService.Update(c.Request.Context(), s, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update billing")
		return
	}

	utils.SuccessResponse(c, "Billing updated successfully", billing)
}

// ExportBillings handles GET /api/v1/billings/export
// @Summary Export bills to Excel
// @Description Downloads the filtered bill list as an xlsx workbook
// @Tags billings
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param status query string false "pending, paid, overdue or cancelled"
// @Param tenant_id query string false "Tenant ID"
// @Success 200 {file} file "Excel file"
// @Failure 400 {object} utils.APIResponse "Invalid status filter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/billings/export [get]
func (h *BillingHandler) ExportBillings(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	content, filename, err := h.billingService.ExportToExcel(c.Request.Context(), s, billingFilter(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to export billings")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}

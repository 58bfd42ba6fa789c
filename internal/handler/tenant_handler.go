package handler

import (
	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/pkg/logger"
	"smarta-landlord-svc/pkg/utils"
)

// TenantHandler handles tenant-related HTTP requests
type TenantHandler struct {
	tenantService  service.TenantService
	billingService service.BillingService
	paymentService service.PaymentService
	logger         *logger.Logger
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(
	tenantService service.TenantService,
	billingService service.BillingService,
	paymentService service.PaymentService,
	logger *logger.Logger,
) *TenantHandler {
	return &TenantHandler{
		tenantService:  tenantService,
		billingService: billingService,
		paymentService: paymentService,
		logger:         logger,
	}
}

// ListTenants handles GET /api/v1/tenants
// @Summary List tenants
// @Description List tenants across all of the landlord's properties with their property
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.Tenant} "Tenants retrieved successfully"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	tenants, err := h.tenantService.List(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve tenants")
		return
	}

	utils.SuccessResponse(c, "Tenants retrieved successfully", tenants)
}

// CreateTenant handles POST /api/v1/tenants
// @Summary Create a tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.TenantInput true "Tenant"
// @Success 201 {object} utils.APIResponse{data=models.Tenant} "Tenant created successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.TenantInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), s, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create tenant")
		return
	}

	utils.CreatedResponse(c, "Tenant created successfully", tenant)
}

// UpdateTenant handles PUT /api/v1/tenants/:id
// @Summary Update a tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Param request body service.TenantInput true "Tenant"
// @Success 200 {object} utils.APIResponse{data=models.Tenant} "Tenant updated successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Tenant not found"
// @Router /api/v1/tenants/{id} [put]
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.TenantInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), s, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update tenant")
		return
	}

	utils.SuccessResponse(c, "Tenant updated successfully", tenant)
}

// DeleteTenant handles DELETE /api/v1/tenants/:id
// @Summary Delete a tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} utils.APIResponse "Tenant deleted successfully"
// @Failure 404 {object} utils.APIResponse "Tenant not found"
// @Router /api/v1/tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), s, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete tenant")
		return
	}

	utils.SuccessResponse(c, "Tenant deleted successfully", nil)
}

// ListTenantBillings handles GET /api/v1/tenants/:id/billings
// @Summary List the bills of a tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Billing} "Billings retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Tenant not found"
// @Router /api/v1/tenants/{id}/billings [get]
func (h *TenantHandler) ListTenantBillings(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	billings, err := h.billingService.ListByTenant(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve billings")
		return
	}

	utils.SuccessResponse(c, "Billings retrieved successfully", billings)
}

// ListTenantPayments handles GET /api/v1/tenants/:id/payments
// @Summary List the payments of a tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Payment} "Payments retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Tenant not found"
// @Router /api/v1/tenants/{id}/payments [get]
func (h *TenantHandler) ListTenantPayments(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByTenant(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve payments")
		return
	}

	utils.SuccessResponse(c, "Payments retrieved successfully", payments)
}

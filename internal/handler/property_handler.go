package handler

import (
	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/pkg/logger"
	"smarta-landlord-svc/pkg/utils"
)

// PropertyHandler handles property-related HTTP requests
type PropertyHandler struct {
	propertyService service.PropertyService
	tenantService   service.TenantService
	meterService    service.MeterService
	logger          *logger.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(
	propertyService service.PropertyService,
	tenantService service.TenantService,
	meterService service.MeterService,
	logger *logger.Logger,
) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		tenantService:   tenantService,
		meterService:    meterService,
		logger:          logger,
	}
}

// ListProperties handles GET /api/v1/properties
// @Summary List properties
// @Description List the landlord's properties, newest first
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.Property} "Properties retrieved successfully"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/properties [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	properties, err := h.propertyService.List(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve properties")
		return
	}

	utils.SuccessResponse(c, "Properties retrieved successfully", properties)
}

// GetProperty handles GET /api/v1/properties/:id
// @Summary Get a property
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Success 200 {object} utils.APIResponse{data=models.Property} "Property retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve property")
		return
	}

	utils.SuccessResponse(c, "Property retrieved successfully", property)
}

// CreateProperty handles POST /api/v1/properties
// @Summary Create a property
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PropertyInput true "Property"
// @Success 201 {object} utils.APIResponse{data=models.Property} "Property created successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.PropertyInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), s, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create property")
		return
	}

	utils.CreatedResponse(c, "Property created successfully", property)
}

// UpdateProperty handles PUT /api/v1/properties/:id
// @Summary Update a property
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body service.PropertyInput true "Property"
// @Success 200 {object} utils.APIResponse{data=models.Property} "Property updated successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.PropertyInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), s, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update property")
		return
	}

	utils.SuccessResponse(c, "Property updated successfully", property)
}

// DeleteProperty handles DELETE /api/v1/properties/:id
// @Summary Delete a property
// @Description Deletes the property together with its tenants, meters, readings, bills and payments
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Success 200 {object} utils.APIResponse "Property deleted successfully"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), s, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete property")
		return
	}

	utils.SuccessResponse(c, "Property deleted successfully", nil)
}

// GetPropertyOverview handles GET /api/v1/properties/:id/overview
// @Summary Get a property with its tenants and meters
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Success 200 {object} utils.APIResponse{data=response.PropertyOverviewResponse} "Property overview retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/properties/{id}/overview [get]
func (h *PropertyHandler) GetPropertyOverview(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	overview, err := h.propertyService.GetOverview(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve property overview")
		return
	}

	utils.SuccessResponse(c, "Property overview retrieved successfully", overview)
}

// ListPropertyTenants handles GET /api/v1/properties/:id/tenants
// @Summary List the tenants of a property
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Tenant} "Tenants retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/properties/{id}/tenants [get]
func (h *PropertyHandler) ListPropertyTenants(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	tenants, err := h.tenantService.ListByProperty(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve tenants")
		return
	}

	utils.SuccessResponse(c, "Tenants retrieved successfully", tenants)
}

// ListPropertyMeters handles GET /api/v1/properties/:id/meters
// @Summary List the meters of a property
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Meter} "Meters retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/properties/{id}/meters [get]
func (h *PropertyHandler) ListPropertyMeters(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	meters, err := h.meterService.ListByProperty(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve meters")
		return
	}

	utils.SuccessResponse(c, "Meters retrieved successfully", meters)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/pkg/logger"
	"smarta-landlord-svc/pkg/utils"
)

// MeterHandler handles meter and meter reading HTTP requests
type MeterHandler struct {
	meterService   service.MeterService
	readingService service.MeterReadingService
	logger         *logger.Logger
}

// NewMeterHandler creates a new meter handler
func NewMeterHandler(meterService service.MeterService, readingService service.MeterReadingService, logger *logger.Logger) *MeterHandler {
	return &MeterHandler{
		meterService:   meterService,
		readingService: readingService,
		logger:         logger,
	}
}

// ListMeters handles GET /api/v1/meters
// @Summary List meters
// @Tags meters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.Meter} "Meters retrieved successfully"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/meters [get]
func (h *MeterHandler) ListMeters(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	meters, err := h.meterService.List(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve meters")
		return
	}

	utils.SuccessResponse(c, "Meters retrieved successfully", meters)
}

// ListAvailableMeters handles GET /api/v1/meters/available
// @Summary List meters that can be assigned
// @Description Meters with status available and no tenant
// @Tags meters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.Meter} "Available meters retrieved successfully"
// @Router /api/v1/meters/available [get]
func (h *MeterHandler) ListAvailableMeters(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	meters, err := h.meterService.ListAvailable(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve available meters")
		return
	}

	utils.SuccessResponse(c, "Available meters retrieved successfully", meters)
}

// CreateMeter handles POST /api/v1/meters
// @Summary Register a meter
// @Tags meters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.MeterInput true "Meter"
// @Success 201 {object} utils.APIResponse{data=models.Meter} "Meter created successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/meters [post]
func (h *MeterHandler) CreateMeter(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.MeterInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	meter, err := h.meterService.Create(c.Request.Context(), s, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create meter")
		return
	}

	utils.CreatedResponse(c, "Meter created successfully", meter)
}

// UpdateMeter handles PUT /api/v1/meters/:id
// @Summary Update a meter
// @Description Tenant changes go through assign and unassign
// @Tags meters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meter ID"
// @Param request body service.MeterInput true "Meter"
// @Success 200 {object} utils.APIResponse{data=models.Meter} "Meter updated successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Meter not found"
// @Router /api/v1/meters/{id} [put]
func (h *MeterHandler) UpdateMeter(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.MeterInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	meter, err := h.meterService.Update(c.Request.Context(), s, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update meter")
		return
	}

	utils.SuccessResponse(c, "Meter updated successfully", meter)
}

// DeleteMeter handles DELETE /api/v1/meters/:id
// @Summary Delete a meter
// @Tags meters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meter ID"
// @Success 200 {object} utils.APIResponse "Meter deleted successfully"
// @Failure 404 {object} utils.APIResponse "Meter not found"
// @Router /api/v1/meters/{id} [delete]
func (h *MeterHandler) DeleteMeter(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.meterService.Delete(c.Request.Context(), s, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete meter")
		return
	}

	utils.SuccessResponse(c, "Meter deleted successfully", nil)
}

// AssignMeter handles POST /api/v1/meters/:id/assign
// @Summary Assign a meter to a tenant
// @Tags meters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meter ID"
// @Param request body service.AssignMeterInput true "Tenant to assign"
// @Success 200 {object} utils.APIResponse{data=models.Meter} "Meter assigned successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Meter or tenant not found"
// @Router /api/v1/meters/{id}/assign [post]
func (h *MeterHandler) AssignMeter(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.AssignMeterInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	meter, err := h.meterService.Assign(c.Request.Context(), s, c.Param("id"), req.TenantID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to assign meter")
		return
	}

	utils.SuccessResponse(c, "Meter assigned successfully", meter)
}

// UnassignMeter handles POST /api/v1/meters/:id/unassign
// @Summary Release a meter from its tenant
// @Tags meters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meter ID"
// @Success 200 {object} utils.APIResponse{data=models.Meter} "Meter unassigned successfully"
// @Failure 404 {object} utils.APIResponse "Meter not found"
// @Router /api/v1/meters/{id}/unassign [post]
func (h *MeterHandler) UnassignMeter(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	meter, err := h.meterService.Unassign(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to unassign meter")
		return
	}

	utils.SuccessResponse(c, "Meter unassigned successfully", meter)
}

// ListMeterReadings handles GET /api/v1/meters/:id/readings
// @Summary List the readings of a meter
// @Tags readings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meter ID"
// @Success 200 {object} utils.APIResponse{data=[]models.MeterReading} "Readings retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Meter not found"
// @Router /api/v1/meters/{id}/readings [get]
func (h *MeterHandler) ListMeterReadings(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	readings, err := h.readingService.ListByMeter(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve readings")
		return
	}

	utils.SuccessResponse(c, "Readings retrieved successfully", readings)
}

// CreateMeterReading handles POST /api/v1/meters/:id/readings
// @Summary Record a meter reading
// @Description Consumption is computed from the previous reading; a reading below it is rejected
// @Tags readings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meter ID"
// @Param request body service.ReadingInput true "Reading"
// @Success 201 {object} utils.APIResponse{data=models.MeterReading} "Reading recorded successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Meter not found"
// @Router /api/v1/meters/{id}/readings [post]
func (h *MeterHandler) CreateMeterReading(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.ReadingInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	reading, err := h.readingService.Create(c.Request.Context(), s, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to record reading")
		return
	}

	utils.CreatedResponse(c, "Reading recorded successfully", reading)
}

// ListRecentReadings handles GET /api/v1/readings/recent
// @Summary List readings from the last 30 days
// @Tags readings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.MeterReading} "Recent readings retrieved successfully"
// @Router /api/v1/readings/recent [get]
func (h *MeterHandler) ListRecentReadings(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	readings, err := h.readingService.ListRecent(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve recent readings")
		return
	}

	utils.SuccessResponse(c, "Recent readings retrieved successfully", readings)
}

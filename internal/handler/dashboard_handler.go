package handler

import (
	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/pkg/logger"
	"smarta-landlord-svc/pkg/utils"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetStats handles GET /api/v1/dashboard/stats
// @Summary Get dashboard statistics
// @Description Property, tenant and meter counts, meter activity rate, the latest readings and completed revenue
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response.DashboardStatsResponse} "Successfully retrieved dashboard statistics"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve dashboard statistics")
		return
	}

	utils.SuccessResponse(c, "Dashboard statistics retrieved successfully", stats)
}

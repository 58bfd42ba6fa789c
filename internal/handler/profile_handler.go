package handler

import (
	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/pkg/logger"
	"smarta-landlord-svc/pkg/utils"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService service.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile handles GET /api/v1/profile
// @Summary Get the signed-in landlord
// @Description Returns the landlord identified by the bearer token with portfolio counts
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response.ProfileResponse} "Profile retrieved successfully"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get profile")
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", profile)
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/internal/middleware"
	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
	"smarta-landlord-svc/pkg/utils"
)

// respondError maps service errors onto HTTP statuses. Unknown errors are logged and
// returned as 500 without the underlying detail.
func respondError(c *gin.Context, log *logger.Logger, err error, message string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		utils.BadRequestResponse(c, message, err)
	case errors.Is(err, service.ErrBillNotPayable):
		utils.ConflictResponse(c, message, err)
	case errors.Is(err, service.ErrGatewayUnavailable):
		log.FromContext(c.Request.Context()).WithError(err).Error(message)
		utils.BadGatewayResponse(c, message, err)
	default:
		log.FromContext(c.Request.Context()).WithError(err).Error(message)
		utils.InternalServerErrorResponse(c, message, nil)
	}
}

// bindJSON decodes the request body, answering 400 when it does not fit
func bindJSON(c *gin.Context, log *logger.Logger, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.FromContext(c.Request.Context()).WithError(err).Warn("Invalid request body")
		utils.BadRequestResponse(c, "Request body is invalid", err)
		return false
	}
	return true
}

// currentSession returns the landlord session set by the auth middleware
func currentSession(c *gin.Context) (session.Session, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok || !s.Valid() {
		utils.UnauthorizedResponse(c, "Authentication required")
		return session.Session{}, false
	}
	return s, true
}

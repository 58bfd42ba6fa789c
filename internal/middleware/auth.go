package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
	"smarta-landlord-svc/pkg/utils"
)

const sessionKey = "session"

// Auth validates the bearer token and stores the landlord session on the gin context
func Auth(verifier *session.Verifier, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry := log.FromContext(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			entry.Warn("Missing authorization header")
			utils.UnauthorizedResponse(c, "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			entry.Warn("Invalid authorization header format")
			utils.UnauthorizedResponse(c, "Invalid authorization header format")
			return
		}

		s, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			entry.WithError(err).Warn("Invalid or expired token")
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			return
		}

		c.Set(sessionKey, s)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), entry.WithField("landlord_id", s.LandlordID)))

		c.Next()
	}
}

// SessionFrom returns the session stored by Auth
func SessionFrom(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok
}

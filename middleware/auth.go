package middleware

import (
	"errors"
	"strings"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/CampusVoice/campus-voice-backend/logger"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates moderator routes. It extracts the Bearer token,
// validates it per request, and stores the subject in the gin context.
// The token on the request is the only source of authentication state:
// there is no ambient session, so a missing or bad token always rejects.
func AuthMiddleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		token := extractBearerToken(c)
		if token == "" {
			log.Debugw("No token provided", "path", c.Request.URL.Path)
			_ = c.Error(apperrors.Unauthorized("missing_auth", "Authorization required"))
			c.Abort()
			return
		}

		userID, err := validator.Validate(token)
		if err != nil {
			log.Warnw("Token rejected",
				"error", err,
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP())

			if errors.Is(err, ErrTokenExpired) {
				_ = c.Error(apperrors.Unauthorized("token_expired", "Your session has expired"))
			} else {
				_ = c.Error(apperrors.Unauthorized("token_invalid", "Invalid authentication token"))
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

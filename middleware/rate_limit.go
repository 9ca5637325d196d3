package middleware

import (
	"fmt"
	"time"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/CampusVoice/campus-voice-backend/services"
	"github.com/gin-gonic/gin"
)

// RateLimiter limits requests per client IP within a rolling window using the
// Redis-backed rate limit service. The scope keeps separate budgets for the
// public submission endpoints and the auth endpoints.
//
// Redis failures do not block the request: the API stays available when the
// limiter's backing store is down.
func RateLimiter(limiter services.RateLimiterInterface, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())

		allowed, retryAfter, err := limiter.CheckLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			if retryAfter <= 0 {
				retryAfter = window
			}
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))

			_ = c.Error(apperrors.RateLimitExceeded("Too many requests. Please try again later.", int(retryAfter.Seconds())))
			c.Abort()
			return
		}

		c.Next()
	}
}

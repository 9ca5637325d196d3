package router

import (
	"net/http"
	"time"

	"github.com/CampusVoice/campus-voice-backend/config"
	"github.com/CampusVoice/campus-voice-backend/handlers"
	"github.com/CampusVoice/campus-voice-backend/middleware"
	"github.com/CampusVoice/campus-voice-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	JWTValidator    middleware.Validator
	RateLimiter     services.RateLimiterInterface
	FeedbackHandler *handlers.FeedbackHandler
	AdminHandler    *handlers.AdminHandler
	AuthHandler     *handlers.AuthHandler
	HealthHandler   *handlers.HealthHandler
	Logger          *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	window := time.Duration(deps.Config.RateLimit.WindowSeconds) * time.Second
	submitLimiter := middleware.RateLimiter(deps.RateLimiter, services.RateLimitScopeSubmit,
		deps.Config.RateLimit.SubmitRequestsPerWindow, window)
	authLimiter := middleware.RateLimiter(deps.RateLimiter, services.RateLimitScopeAuth,
		deps.Config.RateLimit.AuthRequestsPerWindow, window)

	v1 := r.Group("/v1")
	{
		// Public submission routes
		v1.POST("/feedback", submitLimiter, deps.FeedbackHandler.SubmitFeedback)
		v1.POST("/feedback/attachment", submitLimiter, deps.FeedbackHandler.EncodeAttachment)

		// Auth routes
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", authLimiter, deps.AuthHandler.Login)
			authRoutes.POST("/refresh", authLimiter, deps.AuthHandler.RefreshToken)
			authRoutes.POST("/logout", deps.AuthHandler.Logout)
			authRoutes.GET("/session", middleware.AuthMiddleware(deps.JWTValidator), deps.AuthHandler.Session)
		}

		// Moderation routes, gated per request by the token validator
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(deps.JWTValidator))
		{
			adminRoutes.GET("/feedback", deps.AdminHandler.ListFeedback)
			adminRoutes.GET("/feedback/stats", deps.AdminHandler.FeedbackStats)
			adminRoutes.DELETE("/feedback/:id", deps.AdminHandler.DeleteFeedback)
		}
	}

	// Anything unrecognized points the caller back at the public form.
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":       "Route not found",
			"submit_form": deps.Config.Server.FrontendURL,
		})
	})

	return r
}

package handlers

import (
	"net/http"

	"github.com/CampusVoice/campus-voice-backend/services"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/gin-gonic/gin"
)

// HealthHandler exposes the probe endpoints over the health service.
type HealthHandler struct {
	healthService *services.HealthService
}

func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// LivenessCheck answers 200 as long as the process is serving requests. It
// never consults Postgres or Redis, so a dependency outage cannot trigger a
// restart loop.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ReadinessCheck reports whether the service can take feedback traffic.
// Degraded still answers 200; only Down pulls the instance out of rotation.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())

	if health.Status == types.HealthStatusDown {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}

// DetailedHealth returns the per-component breakdown for operators.
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())
	c.JSON(http.StatusOK, health)
}

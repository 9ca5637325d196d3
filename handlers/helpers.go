package handlers

import (
	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/gin-gonic/gin"
)

// bindJSONOrError binds the request body and attaches a validation error on
// failure. Returns false when the handler should stop.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid_request_payload", err.Error()))
		return false
	}
	return true
}

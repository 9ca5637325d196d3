package handlers

import (
	"net/http"
	"strings"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/CampusVoice/campus-voice-backend/internal/moderation"
	"github.com/CampusVoice/campus-voice-backend/services"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles the authenticated moderation endpoints.
type AdminHandler struct {
	feedbackService *services.FeedbackService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(feedbackService *services.FeedbackService) *AdminHandler {
	return &AdminHandler{feedbackService: feedbackService}
}

// ListFeedback returns the collection for the moderation dashboard. Query
// parameters narrow and order the view:
//
//	category  keep only records with this exact category
//	faculty   keep only records with this exact faculty
//	sort      "asc" or "desc" by creation time (default desc)
//	reload    "true" to bypass the cached listing and re-read the store
//
// Filtering and sorting are applied server-side on top of the full
// collection, so the counts always describe both the whole collection and
// the filtered view.
func (h *AdminHandler) ListFeedback(c *gin.Context) {
	reload := c.Query("reload") == "true"

	all, err := h.feedbackService.List(c.Request.Context(), reload)
	if err != nil {
		_ = c.Error(err)
		return
	}

	filter := moderation.Filter{
		Category: types.Category(strings.TrimSpace(c.Query("category"))),
		Faculty:  strings.TrimSpace(c.Query("faculty")),
	}
	direction := moderation.ParseSortDirection(c.Query("sort"))

	items := moderation.ApplyView(all, filter, direction)

	c.JSON(http.StatusOK, types.FeedbackListResponse{
		Items:  items,
		Counts: moderation.Counts(all, items),
	})
}

// FeedbackStats reports collection counts without the records themselves.
func (h *AdminHandler) FeedbackStats(c *gin.Context) {
	all, err := h.feedbackService.List(c.Request.Context(), c.Query("reload") == "true")
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, moderation.Counts(all, all))
}

// DeleteFeedback permanently removes a record. Deletion is destructive, so
// the request must carry confirm=true; without it nothing is deleted.
func (h *AdminHandler) DeleteFeedback(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		_ = c.Error(apperrors.ValidationFailed("missing_id", "Feedback id is required"))
		return
	}

	if c.Query("confirm") != "true" {
		_ = c.Error(apperrors.ValidationFailed("confirmation_required", "Deletion requires confirm=true"))
		return
	}

	if err := h.feedbackService.Remove(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "Feedback deleted"})
}

package handlers

import (
	"net/http"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/CampusVoice/campus-voice-backend/internal/attachment"
	"github.com/CampusVoice/campus-voice-backend/services"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles the public submission endpoints.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// SubmitFeedback accepts a feedback submission from the public form. The
// submitter only needs a name, a category, and a non-blank body; everything
// else is optional. On success the stored id and server timestamp come back.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.FeedbackCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	fb, err := h.feedbackService.Submit(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, types.SubmitFeedbackResponse{
		Status:    "Feedback submitted successfully",
		ID:        fb.ID,
		CreatedAt: fb.CreatedAt,
	})
}

// EncodeAttachment converts an uploaded file into the inline data-URI form
// the submission endpoint accepts. The form calls this before submitting so
// oversized or non-image, non-PDF files are rejected before the user hits send.
func (h *FeedbackHandler) EncodeAttachment(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("missing_file", "A file part named 'file' is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(apperrors.InternalServerError("Failed to read uploaded file"))
		return
	}
	defer func() { _ = file.Close() }()

	encoded, err := attachment.Encode(file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.AttachmentResponse{
		Attachment: encoded.DataURI,
		MediaType:  encoded.MediaType,
		SizeBytes:  encoded.SizeBytes,
	})
}

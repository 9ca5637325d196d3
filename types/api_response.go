package types

import "time"

// StatusResponse is the minimal success body for write endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse documents the error body produced by the error middleware.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// SubmitFeedbackResponse is returned after an accepted submission.
type SubmitFeedbackResponse struct {
	Status    string    `json:"status"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentResponse carries the embeddable encoding of an uploaded file.
type AttachmentResponse struct {
	Attachment string `json:"attachment"`
	MediaType  string `json:"media_type"`
	SizeBytes  int64  `json:"size_bytes"`
}

// FeedbackListResponse is the moderation view: the projected records plus the
// derived counts for the current filter.
type FeedbackListResponse struct {
	Items  []*Feedback    `json:"items"`
	Counts FeedbackCounts `json:"counts"`
}

// FeedbackCounts are pure derived values recomputed on every view change.
type FeedbackCounts struct {
	Total       int              `json:"total"`
	Filtered    int              `json:"filtered"`
	PerCategory map[Category]int `json:"per_category"`
}

package types

import (
	"strings"
	"time"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
)

// Category tags the area a feedback record concerns. The set is advisory:
// it drives the dashboard filters, but an unrecognized tag is stored as
// opaque text rather than rejected at write time.
type Category string

const (
	CategoryFacility       Category = "facility"
	CategoryFacultyStaff   Category = "faculty-staff"
	CategoryAdministration Category = "administration"
	CategorySecurity       Category = "security"
	CategoryCafeteria      Category = "cafeteria"
	CategoryOther          Category = "other"
)

// KnownCategories lists the advisory tag set in display order.
var KnownCategories = []Category{
	CategoryFacility,
	CategoryFacultyStaff,
	CategoryAdministration,
	CategorySecurity,
	CategoryCafeteria,
	CategoryOther,
}

// IsKnown reports whether the category belongs to the advisory tag set.
func (c Category) IsKnown() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Feedback is one submission as stored. Records are immutable after
// insertion; created_at is stamped by the database, never the client.
type Feedback struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Faculty          string    `json:"faculty,omitempty"`
	StudentID        string    `json:"student_id,omitempty"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Category         Category  `json:"category"`
	Body             string    `json:"body"`
	ProposedSolution string    `json:"proposed_solution,omitempty"`
	Attachment       string    `json:"attachment,omitempty"`
	ClientRef        string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasAttachment reports whether the record carries an embedded attachment.
func (f *Feedback) HasAttachment() bool {
	return f.Attachment != ""
}

// FeedbackCreate is the request body for submitting feedback. Only name,
// category, and body are required; email and phone are accepted as free text.
type FeedbackCreate struct {
	Name             string `json:"name"`
	Faculty          string `json:"faculty,omitempty"`
	StudentID        string `json:"student_id,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Category         string `json:"category"`
	Body             string `json:"body"`
	ProposedSolution string `json:"proposed_solution,omitempty"`
	Attachment       string `json:"attachment,omitempty"`
}

// Validate checks the required fields of a candidate record. Body must be
// non-empty after trimming; category must be set but is not checked against
// the advisory tag set.
func (r *FeedbackCreate) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.MissingRequiredField("name")
	}
	if strings.TrimSpace(r.Category) == "" {
		return apperrors.MissingRequiredField("category")
	}
	if strings.TrimSpace(r.Body) == "" {
		return apperrors.MissingRequiredField("body")
	}
	return nil
}

// ToFeedback assembles a record from the request, leaving id and created_at
// for the store to assign.
func (r *FeedbackCreate) ToFeedback(clientRef string) *Feedback {
	return &Feedback{
		Name:             strings.TrimSpace(r.Name),
		Faculty:          strings.TrimSpace(r.Faculty),
		StudentID:        strings.TrimSpace(r.StudentID),
		Email:            strings.TrimSpace(r.Email),
		Phone:            strings.TrimSpace(r.Phone),
		Category:         Category(strings.TrimSpace(r.Category)),
		Body:             strings.TrimSpace(r.Body),
		ProposedSolution: strings.TrimSpace(r.ProposedSolution),
		Attachment:       r.Attachment,
		ClientRef:        clientRef,
	}
}

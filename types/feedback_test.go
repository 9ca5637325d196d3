package types

import (
	"testing"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() FeedbackCreate {
	return FeedbackCreate{
		Name:     "Alice",
		Category: "facility",
		Body:     "Broken AC",
	}
}

func TestFeedbackCreate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FeedbackCreate)
		wantErr string
	}{
		{"valid minimal record", func(r *FeedbackCreate) {}, ""},
		{"empty name", func(r *FeedbackCreate) { r.Name = "" }, "name"},
		{"whitespace name", func(r *FeedbackCreate) { r.Name = "   " }, "name"},
		{"empty category", func(r *FeedbackCreate) { r.Category = "" }, "category"},
		{"empty body", func(r *FeedbackCreate) { r.Body = "" }, "body"},
		{"whitespace-only body", func(r *FeedbackCreate) { r.Body = " \t\n " }, "body"},
		{"optional fields may all be empty", func(r *FeedbackCreate) {
			r.Faculty, r.StudentID, r.Email, r.Phone, r.ProposedSolution = "", "", "", "", ""
		}, ""},
		// The tag set is advisory, not a closed domain at write time.
		{"unknown category accepted", func(r *FeedbackCreate) { r.Category = "parking" }, ""},
		{"email is free text", func(r *FeedbackCreate) { r.Email = "not-an-email" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr, ok := err.(*apperrors.AppError)
			require.True(t, ok)
			assert.Equal(t, apperrors.ValidationError, appErr.Type)
			assert.Equal(t, "missing_required_field", appErr.Code)
			assert.Contains(t, appErr.Message, tt.wantErr)
		})
	}
}

func TestFeedbackCreate_ToFeedback(t *testing.T) {
	req := FeedbackCreate{
		Name:     "  Alice  ",
		Faculty:  "Computer Science",
		Category: " facility ",
		Body:     "  Broken AC in lab 3  ",
	}

	fb := req.ToFeedback("ref-1")

	assert.Equal(t, "Alice", fb.Name)
	assert.Equal(t, CategoryFacility, fb.Category)
	assert.Equal(t, "Broken AC in lab 3", fb.Body)
	assert.Equal(t, "ref-1", fb.ClientRef)
	assert.Empty(t, fb.ID, "id is assigned by the store")
	assert.True(t, fb.CreatedAt.IsZero(), "created_at is stamped by the store")
}

func TestCategory_IsKnown(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		expected bool
	}{
		{"facility is known", CategoryFacility, true},
		{"faculty-staff is known", CategoryFacultyStaff, true},
		{"administration is known", CategoryAdministration, true},
		{"security is known", CategorySecurity, true},
		{"cafeteria is known", CategoryCafeteria, true},
		{"other is known", CategoryOther, true},
		{"unknown tag", Category("parking"), false},
		{"empty tag", Category(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.category.IsKnown())
		})
	}
}

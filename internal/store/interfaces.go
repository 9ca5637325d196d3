// Package store defines the persistence boundary for feedback records.
package store

import (
	"context"

	"github.com/CampusVoice/campus-voice-backend/types"
)

// FeedbackStore is the document collection holding feedback records. The
// store is the sole persistent owner: records are inserted once with a
// server-stamped creation time, listed newest-first, and removed only by an
// explicit delete-by-id.
type FeedbackStore interface {
	// Insert persists a new record and returns it with the store-assigned
	// id and created_at filled in.
	Insert(ctx context.Context, fb *types.Feedback) (*types.Feedback, error)

	// List returns the full record set ordered by created_at descending.
	List(ctx context.Context) ([]*types.Feedback, error)

	// Delete removes a record by id. Returns ErrNotFound when no record
	// carries the id; the removal is irreversible.
	Delete(ctx context.Context, id string) error
}

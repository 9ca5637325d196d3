// Package postgres implements the feedback store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/CampusVoice/campus-voice-backend/internal/store"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the store uses. Tests substitute a
// pgxmock pool through the same surface.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// FeedbackStore implements store.FeedbackStore using PostgreSQL.
type FeedbackStore struct {
	db DB
}

var _ store.FeedbackStore = (*FeedbackStore)(nil)

// NewFeedbackStore creates a feedback store backed by the given pool.
func NewFeedbackStore(db DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Insert persists a new record. The id and created_at come back from the
// database: created_at is stamped server-side at write time so ordering never
// depends on the submitting client's clock.
func (s *FeedbackStore) Insert(ctx context.Context, fb *types.Feedback) (*types.Feedback, error) {
	query := `
		INSERT INTO feedback (name, faculty, student_id, email, phone, category, body, proposed_solution, attachment, client_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	row := s.db.QueryRow(ctx, query,
		fb.Name,
		fb.Faculty,
		fb.StudentID,
		fb.Email,
		fb.Phone,
		fb.Category,
		fb.Body,
		fb.ProposedSolution,
		fb.Attachment,
		fb.ClientRef,
	)

	inserted := *fb
	if err := row.Scan(&inserted.ID, &inserted.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert feedback: %w", err)
	}

	return &inserted, nil
}

// List retrieves every record ordered by created_at descending. This is the
// baseline ordering the moderation view starts from.
func (s *FeedbackStore) List(ctx context.Context) ([]*types.Feedback, error) {
	query := `
		SELECT id, name, faculty, student_id, email, phone, category, body, proposed_solution, attachment, client_ref, created_at
		FROM feedback
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var records []*types.Feedback
	for rows.Next() {
		fb := &types.Feedback{}
		err := rows.Scan(
			&fb.ID,
			&fb.Name,
			&fb.Faculty,
			&fb.StudentID,
			&fb.Email,
			&fb.Phone,
			&fb.Category,
			&fb.Body,
			&fb.ProposedSolution,
			&fb.Attachment,
			&fb.ClientRef,
			&fb.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		records = append(records, fb)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Delete removes a record by id. Deleting an id the collection does not hold
// is reported as store.ErrNotFound so the caller's behavior is deterministic.
func (s *FeedbackStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// IsNotFound reports whether an error from the store means the record did
// not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}

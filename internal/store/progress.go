package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Progress is the snapshot of an in-progress (unsolved) attempt for one
// (user, date). It is overwritten on every attempt and becomes irrelevant
// once the day's activity is solved.
type Progress struct {
	Date      string
	State     json.RawMessage // type-specific attempt state
	HintsUsed int
	SavedAt   time.Time
}

// ProgressRepo stores in-progress attempt snapshots.
type ProgressRepo interface {
	// Save overwrites the progress snapshot for (userID, p.Date).
	Save(ctx context.Context, userID string, p Progress) error

	// Get returns the snapshot for a date, or nil if none exists.
	Get(ctx context.Context, userID, date string) (*Progress, error)

	// Delete removes the snapshot for a date, if any.
	Delete(ctx context.Context, userID, date string) error
}

type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Save(ctx context.Context, userID string, p Progress) error {
	savedAt := p.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO progress (user_id, date, state, hints_used, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			state = excluded.state,
			hints_used = excluded.hints_used,
			saved_at = excluded.saved_at`,
		userID, p.Date, string(p.State), p.HintsUsed, savedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Get(ctx context.Context, userID, date string) (*Progress, error) {
	var (
		p       Progress
		state   string
		savedAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT date, state, hints_used, saved_at
		FROM progress WHERE user_id = ? AND date = ?`, userID, date).
		Scan(&p.Date, &state, &p.HintsUsed, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	p.State = json.RawMessage(state)
	ts, err := time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return nil, fmt.Errorf("parse saved_at: %w", err)
	}
	p.SavedAt = ts
	return &p, nil
}

func (r *progressRepo) Delete(ctx context.Context, userID, date string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM progress WHERE user_id = ? AND date = ?`, userID, date); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

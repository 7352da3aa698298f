package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
)

// Bounds accepted for a locally persisted activity. These mirror the sync
// service's batch validation so a row that saves locally is always eligible
// to push.
const (
	MinTimeTakenSeconds = 1
	MaxTimeTakenSeconds = 7200
)

// ErrInvalidActivity is wrapped by Save when a field is out of bounds.
var ErrInvalidActivity = errors.New("invalid activity")

// Activity is one row of the append-only activity log: the outcome of one
// user's attempt at one calendar date's puzzle. (user, date) is the
// identity key.
type Activity struct {
	Date             string // puzzle.DateFormat
	Solved           bool
	Score            int
	TimeTakenSeconds int
	Difficulty       puzzle.Difficulty
	HintsUsed        int

	// Synced is true once the remote store has acknowledged this row's
	// current content. It must never regress to false unless the content
	// actually changes locally.
	Synced bool

	// CompletedAt is set when the row is first written and immutable
	// afterwards.
	CompletedAt time.Time
}

// ActivityRepo provides access to the per-user activity log. Every write is
// a read-modify-write transaction scoped to one (user, date) key; there is
// no blind-overwrite API.
type ActivityRepo interface {
	// Save upserts the activity for (userID, a.Date). An existing row keeps
	// its CompletedAt, and keeps Synced unless the content changed.
	Save(ctx context.Context, userID string, a Activity) error

	// Get returns the activity for a date, or nil if none exists.
	Get(ctx context.Context, userID, date string) (*Activity, error)

	// List returns all activities for a user in ascending date order.
	List(ctx context.Context, userID string) ([]Activity, error)

	// Unsynced returns activities not yet acknowledged by the remote store,
	// in ascending date order.
	Unsynced(ctx context.Context, userID string) ([]Activity, error)

	// MarkSynced flags exactly the given dates as synced, atomically.
	MarkSynced(ctx context.Context, userID string, dates []string) error

	// ImportIfAbsent writes a remote row locally only when no local row
	// exists for that date. Reports whether a row was written.
	ImportIfAbsent(ctx context.Context, userID string, a Activity) (bool, error)
}

type activityRepo struct {
	db *sql.DB
}

func validateActivity(a Activity) error {
	if _, err := time.Parse(puzzle.DateFormat, a.Date); err != nil {
		return fmt.Errorf("%w: date %q: %v", ErrInvalidActivity, a.Date, err)
	}
	if a.Score < 0 || a.Score > puzzle.MaxScore {
		return fmt.Errorf("%w: score %d outside [0, %d]", ErrInvalidActivity, a.Score, puzzle.MaxScore)
	}
	if a.TimeTakenSeconds < MinTimeTakenSeconds || a.TimeTakenSeconds > MaxTimeTakenSeconds {
		return fmt.Errorf("%w: time taken %ds outside [%d, %d]",
			ErrInvalidActivity, a.TimeTakenSeconds, MinTimeTakenSeconds, MaxTimeTakenSeconds)
	}
	if a.HintsUsed < 0 || a.HintsUsed > puzzle.MaxHints {
		return fmt.Errorf("%w: hints used %d outside [0, %d]", ErrInvalidActivity, a.HintsUsed, puzzle.MaxHints)
	}
	if !a.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty %q", ErrInvalidActivity, a.Difficulty)
	}
	return nil
}

func (r *activityRepo) Save(ctx context.Context, userID string, a Activity) error {
	if err := validateActivity(a); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	existing, err := getActivityTx(ctx, tx, userID, a.Date)
	if err != nil {
		return err
	}

	if existing != nil {
		// CompletedAt is immutable once first set. Synced survives a
		// rewrite of identical content; any real change makes the row
		// unsynced again.
		a.CompletedAt = existing.CompletedAt
		if sameContent(*existing, a) {
			a.Synced = existing.Synced
		} else {
			a.Synced = false
		}
	} else if a.CompletedAt.IsZero() {
		a.CompletedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO activities
			(user_id, date, solved, score, time_taken_seconds, difficulty, hints_used, synced, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			solved = excluded.solved,
			score = excluded.score,
			time_taken_seconds = excluded.time_taken_seconds,
			difficulty = excluded.difficulty,
			hints_used = excluded.hints_used,
			synced = excluded.synced,
			completed_at = excluded.completed_at`,
		userID, a.Date, boolToInt(a.Solved), a.Score, a.TimeTakenSeconds,
		string(a.Difficulty), a.HintsUsed, boolToInt(a.Synced),
		a.CompletedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (r *activityRepo) Get(ctx context.Context, userID, date string) (*Activity, error) {
	return getActivity(ctx, r.db, userID, date)
}

func (r *activityRepo) List(ctx context.Context, userID string) ([]Activity, error) {
	return queryActivities(ctx, r.db, `
		SELECT date, solved, score, time_taken_seconds, difficulty, hints_used, synced, completed_at
		FROM activities WHERE user_id = ? ORDER BY date`, userID)
}

func (r *activityRepo) Unsynced(ctx context.Context, userID string) ([]Activity, error) {
	return queryActivities(ctx, r.db, `
		SELECT date, solved, score, time_taken_seconds, difficulty, hints_used, synced, completed_at
		FROM activities WHERE user_id = ? AND synced = 0 ORDER BY date`, userID)
}

func (r *activityRepo) MarkSynced(ctx context.Context, userID string, dates []string) error {
	if len(dates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark synced: %w", err)
	}
	defer tx.Rollback()

	for _, date := range dates {
		if _, err := tx.ExecContext(ctx,
			`UPDATE activities SET synced = 1 WHERE user_id = ? AND date = ?`,
			userID, date); err != nil {
			return fmt.Errorf("mark %s synced: %w", date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mark synced: %w", err)
	}
	return nil
}

func (r *activityRepo) ImportIfAbsent(ctx context.Context, userID string, a Activity) (bool, error) {
	if err := validateActivity(a); err != nil {
		return false, err
	}
	if a.CompletedAt.IsZero() {
		a.CompletedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO activities
			(user_id, date, solved, score, time_taken_seconds, difficulty, hints_used, synced, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO NOTHING`,
		userID, a.Date, boolToInt(a.Solved), a.Score, a.TimeTakenSeconds,
		string(a.Difficulty), a.HintsUsed, boolToInt(a.Synced),
		a.CompletedAt.Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("import activity: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("import rows affected: %w", err)
	}
	return n > 0, nil
}

// sameContent reports whether two rows agree on everything the remote store
// cares about. Synced and CompletedAt are bookkeeping, not content.
func sameContent(a, b Activity) bool {
	return a.Solved == b.Solved &&
		a.Score == b.Score &&
		a.TimeTakenSeconds == b.TimeTakenSeconds &&
		a.Difficulty == b.Difficulty &&
		a.HintsUsed == b.HintsUsed
}

type rowScanner interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getActivity(ctx context.Context, q rowScanner, userID, date string) (*Activity, error) {
	row := q.QueryRowContext(ctx, `
		SELECT date, solved, score, time_taken_seconds, difficulty, hints_used, synced, completed_at
		FROM activities WHERE user_id = ? AND date = ?`, userID, date)

	a, err := scanActivity(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

func getActivityTx(ctx context.Context, tx *sql.Tx, userID, date string) (*Activity, error) {
	return getActivity(ctx, tx, userID, date)
}

func queryActivities(ctx context.Context, db *sql.DB, query, userID string) ([]Activity, error) {
	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return out, nil
}

func scanActivity(scan func(...any) error) (*Activity, error) {
	var (
		a           Activity
		solved      int
		synced      int
		difficulty  string
		completedAt string
	)
	if err := scan(&a.Date, &solved, &a.Score, &a.TimeTakenSeconds,
		&difficulty, &a.HintsUsed, &synced, &completedAt); err != nil {
		return nil, err
	}

	a.Solved = solved != 0
	a.Synced = synced != 0
	a.Difficulty = puzzle.Difficulty(difficulty)

	ts, err := time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return nil, fmt.Errorf("parse completed_at: %w", err)
	}
	a.CompletedAt = ts
	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package server

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// PullLimit caps how many rows one pull returns.
const PullLimit = 365

// ScoreEntry is one pushed activity as the client sends it.
type ScoreEntry struct {
	Date             string `json:"date"`
	Score            int    `json:"score"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
}

// ScoreRow is one stored score as the client pulls it.
type ScoreRow struct {
	Date      string `json:"date"`
	Score     int    `json:"score"`
	TimeTaken int    `json:"timeTaken"`
}

// Store is the service's score database. One row per (user, date); a
// re-pushed date overwrites the previous row.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the score database at dsn.
func OpenStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS daily_scores (
		user_id    TEXT NOT NULL,
		date       TEXT NOT NULL,
		score      INTEGER NOT NULL,
		time_taken INTEGER NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, date)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// UpsertBatch writes every entry in one transaction, keyed by (user, date).
// Either the whole batch lands or none of it does.
func (s *Store) UpsertBatch(ctx context.Context, userID string, entries []ScoreEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO daily_scores
		(user_id, date, score, time_taken, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			score = excluded.score,
			time_taken = excluded.time_taken,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, userID, e.Date, e.Score, e.TimeTakenSeconds, now); err != nil {
			return fmt.Errorf("upsert %s: %w", e.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// ListRecent returns the user's most recent scores, newest first, capped at
// PullLimit rows.
func (s *Store) ListRecent(ctx context.Context, userID string) ([]ScoreRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, score, time_taken
		FROM daily_scores WHERE user_id = ?
		ORDER BY date DESC LIMIT ?`, userID, PullLimit)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	scores := []ScoreRow{}
	for rows.Next() {
		var r ScoreRow
		if err := rows.Scan(&r.Date, &r.Score, &r.TimeTaken); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		scores = append(scores, r)
	}
	return scores, rows.Err()
}

package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the local persistent activity log. It is the source of truth for
// gameplay state; the remote store only converges with it through the
// reconciliation engine.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended pragmas
// and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Activities returns an ActivityRepo backed by this store.
func (s *Store) Activities() ActivityRepo {
	return &activityRepo{db: s.db}
}

// Progress returns a ProgressRepo backed by this store.
func (s *Store) Progress() ProgressRepo {
	return &progressRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// createSchema creates the activity and progress tables. All rows are
// namespaced by (user_id, date) so switching accounts on one device never
// mixes activity logs.
func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS activities (
			user_id            TEXT    NOT NULL,
			date               TEXT    NOT NULL,
			solved             INTEGER NOT NULL DEFAULT 0,
			score              INTEGER NOT NULL DEFAULT 0,
			time_taken_seconds INTEGER NOT NULL DEFAULT 0,
			difficulty         TEXT    NOT NULL,
			hints_used         INTEGER NOT NULL DEFAULT 0,
			synced             INTEGER NOT NULL DEFAULT 0,
			completed_at       TEXT    NOT NULL,
			PRIMARY KEY (user_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_unsynced
			ON activities (user_id, synced)`,
		`CREATE TABLE IF NOT EXISTS progress (
			user_id    TEXT    NOT NULL,
			date       TEXT    NOT NULL,
			state      TEXT    NOT NULL,
			hints_used INTEGER NOT NULL DEFAULT 0,
			saved_at   TEXT    NOT NULL,
			PRIMARY KEY (user_id, date)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. DAILYPUZZLE_DB environment variable
// 2. $XDG_DATA_HOME/dailypuzzle/dailypuzzle.db
// 3. ~/.local/share/dailypuzzle/dailypuzzle.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("DAILYPUZZLE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "dailypuzzle", "dailypuzzle.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it does not exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

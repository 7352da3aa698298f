// Package sync reconciles the local activity log with the remote store:
// push everything unsynced, then conditionally pull remote history. It runs
// on login and on demand, and operates purely on the activity store's
// synced/unsynced partition.
package sync

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Mamtagurjar/daily-puzzle/internal/auth"
	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
	"github.com/Mamtagurjar/daily-puzzle/internal/store"
)

// MaxBatchSize bounds one push request; larger backlogs are pushed as
// multiple atomic batches.
const MaxBatchSize = 100

// Engine is the reconciliation engine. One engine serves one user session;
// overlapping runs are rejected with ErrBusy.
type Engine struct {
	activities store.ActivityRepo
	client     Client
	online     func() bool
	busy       atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithOnlineProbe installs a connectivity pre-check. When the probe reports
// false, Run fails fast with a ConnectivityError before touching anything.
func WithOnlineProbe(probe func() bool) Option {
	return func(e *Engine) { e.online = probe }
}

// NewEngine creates a reconciliation engine over the local activity log and
// a remote client.
func NewEngine(activities store.ActivityRepo, client Client, opts ...Option) *Engine {
	e := &Engine{activities: activities, client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result summarizes one reconciliation run.
type Result struct {
	Pushed int
	Pulled int
}

// Run executes one reconciliation for the session's user:
//
//  1. Guest sessions are a no-op.
//  2. All locally unsynced activities are pushed in atomic batches; exactly
//     the dates of each acknowledged batch are marked synced. A failed
//     batch leaves local state untouched and surfaces the error.
//  3. A full pull happens only on the first sync of the session (per the
//     cursor) or when the local log is empty; pulled rows are written only
//     for dates with no local row and arrive already marked synced.
//
// Re-running after success is a no-op: nothing is unsynced, the cursor is
// marked, and re-imports never overwrite.
func (e *Engine) Run(ctx context.Context, sess *auth.Session, cur *Cursor) (Result, error) {
	var res Result

	if sess.IsGuest() {
		return res, nil
	}

	if !e.busy.CompareAndSwap(false, true) {
		return res, ErrBusy
	}
	defer e.busy.Store(false)

	if e.online != nil && !e.online() {
		return res, &ConnectivityError{}
	}

	unsynced, err := e.activities.Unsynced(ctx, sess.UserID)
	if err != nil {
		return res, fmt.Errorf("read unsynced activities: %w", err)
	}

	for start := 0; start < len(unsynced); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(unsynced))
		batch := unsynced[start:end]

		entries := make([]Entry, len(batch))
		dates := make([]string, len(batch))
		for i, a := range batch {
			entries[i] = Entry{
				Date:             a.Date,
				Score:            a.Score,
				TimeTakenSeconds: a.TimeTakenSeconds,
			}
			dates[i] = a.Date
		}

		if _, err := e.client.Push(ctx, entries); err != nil {
			return res, err
		}
		if err := e.activities.MarkSynced(ctx, sess.UserID, dates); err != nil {
			return res, fmt.Errorf("mark batch synced: %w", err)
		}
		res.Pushed += len(batch)
	}

	pull, err := e.shouldPull(ctx, sess.UserID, cur)
	if err != nil {
		return res, err
	}
	if !pull {
		return res, nil
	}

	scores, err := e.client.Pull(ctx)
	if err != nil {
		return res, err
	}

	for _, s := range scores {
		wrote, err := e.activities.ImportIfAbsent(ctx, sess.UserID, remoteActivity(s))
		if err != nil {
			return res, fmt.Errorf("import remote entry %s: %w", s.Date, err)
		}
		if wrote {
			res.Pulled++
		}
	}

	cur.MarkPulled()
	return res, nil
}

// shouldPull decides whether this run performs the full pull: always on the
// first sync of a session, or whenever the local log is empty. Otherwise
// the pull is skipped so a stale remote snapshot can't clobber fresh local
// edits on every minor sync.
func (e *Engine) shouldPull(ctx context.Context, userID string, cur *Cursor) (bool, error) {
	if !cur.Pulled() {
		return true, nil
	}
	local, err := e.activities.List(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("read local activities: %w", err)
	}
	return len(local) == 0, nil
}

// remoteActivity converts a pulled row into its local form. The remote
// store only keeps date, score and time, so the rest takes neutral values;
// the row is solved by definition (only completions are ever pushed) and
// already known to the remote store, hence synced.
func remoteActivity(s RemoteScore) store.Activity {
	return store.Activity{
		Date:             s.Date,
		Solved:           true,
		Score:            s.Score,
		TimeTakenSeconds: s.TimeTaken,
		Difficulty:       puzzle.Medium,
		HintsUsed:        0,
		Synced:           true,
		CompletedAt:      time.Now().UTC(),
	}
}

package sync

import "sync"

// Cursor records whether a full pull from the remote store has already
// happened for the current user in the current login session. It exists so
// incremental pushes don't re-import the whole remote history every time;
// the cost is that cross-device convergence only happens once per session.
//
// It is constructed at login, passed explicitly into every reconciliation
// run, and discarded at logout, never held as ambient global state.
type Cursor struct {
	mu     sync.Mutex
	pulled bool
}

// NewCursor creates a cursor. pulled carries state restored from a previous
// run within the same login session.
func NewCursor(pulled bool) *Cursor {
	return &Cursor{pulled: pulled}
}

// Pulled reports whether the full pull has happened this session.
func (c *Cursor) Pulled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pulled
}

// MarkPulled records that the full pull has happened.
func (c *Cursor) MarkPulled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pulled = true
}

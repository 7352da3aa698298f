package sync

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a reconciliation run is already in flight for
// this engine. The push/pull sequence is not safe under interleaving with
// itself, so overlapping invocations are rejected, never queued.
var ErrBusy = errors.New("sync already in progress")

// ValidationError reports a malformed batch entry rejected by the remote
// store. The whole batch was refused; nothing was committed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("sync batch rejected: %s", e.Message)
}

// ConnectivityError reports that the remote store was unreachable. Unsynced
// data is retained locally and the sync can simply be retried later.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no connection to sync service: %v", e.Err)
	}
	return "no connection to sync service"
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// AuthError reports an invalid or expired credential. The caller should
// re-authenticate; retrying with the same credential is pointless.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("sync not authorized: %s", e.Message)
}

// ConflictError should not occur: rows are upserted by their (user, date)
// conflict key. If the remote store reports one anyway, it is a
// data-integrity bug, not a recoverable condition.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("sync conflict (data-integrity bug): %s", e.Message)
}

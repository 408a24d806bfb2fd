// pkg/syncer/errors.go
//
// Failure taxonomy.
//
// Context
// -------
// Three distinct error types cover everything a mutation can do wrong, and
// callers branch on them with errors.As:
//
//   - ValidationError – caller-correctable input; never reaches the network.
//   - NotFoundError   – a stale local id; never reaches the network.
//   - SyncError       – the remote call failed after the optimistic local
//     mutation already applied; records stay pending.
//
//------------------------------------------------------------------------------

package syncer

import "fmt"

// ValidationError reports input the caller can fix.  Field names the
// offending input when one is identifiable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a record id that is not in the store, usually a
// reference that went stale while the dashboard was open.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %d not found", e.ID)
}

// SyncError wraps a failed remote confirmation.  The optimistic local state
// is kept; affected records remain pending until a retry succeeds.
type SyncError struct {
	Op  Op
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

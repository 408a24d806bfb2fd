// pkg/syncer/adapter.go
//
// Presentation adapter.
//
// Context
// -------
// The Adapter is the only piece aware of user gestures.  It owns the Store
// for one open dashboard view, applies every gesture through the Mutator
// (optimistic, so the next render already shows the edit), then confirms
// the Call against the Remote from a goroutine.  An acknowledgement clears
// pending flags; a SyncError keeps the local state, flips the unsaved
// indicator, and surfaces a warning — never a rollback.
//
// Construction takes the Remote as an explicit collection handle; there is
// no ambient session state.  All exported methods are safe for concurrent
// use, though the expected caller is a single UI event loop.
//
//------------------------------------------------------------------------------

package syncer

import (
	"context"
	"sync"
)

// Hooks connect the Adapter to a UI layer.  Render is called after every
// state change with a fresh ordered snapshot and the unsaved indicator;
// Warn receives a human-readable message for every surfaced failure.
// Either may be nil.
type Hooks struct {
	Render func(records []Record, unsaved bool)
	Warn   func(msg string)
}

// Adapter bridges UI gestures to the synchronizer.
type Adapter struct {
	mu       sync.Mutex
	store    *Store
	mut      *Mutator
	remote   Remote
	hooks    Hooks
	inflight int

	// syncFailed keeps the unsaved indicator true after a failed delete,
	// whose record no longer exists locally to carry a pending flag.
	syncFailed bool
}

// NewAdapter builds an Adapter over an already-fetched snapshot.  Use Open
// to fetch the snapshot and construct in one step.
func NewAdapter(remote Remote, initial []Record, hooks Hooks) *Adapter {
	store := NewStore(initial)
	return &Adapter{
		store:  store,
		mut:    NewMutator(store),
		remote: remote,
		hooks:  hooks,
	}
}

// Open fetches the collection from remote and returns a ready Adapter.
func Open(ctx context.Context, remote Remote, hooks Hooks) (*Adapter, error) {
	initial, err := remote.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewAdapter(remote, initial, hooks), nil
}

// Records returns the current ordered snapshot.
func (a *Adapter) Records() []Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.All()
}

// Unsaved reports whether any record is pending or a confirmation is still
// in flight.
func (a *Adapter) Unsaved() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unsavedLocked()
}

func (a *Adapter) unsavedLocked() bool {
	return a.inflight > 0 || a.syncFailed || a.store.Dirty()
}

/*──────────────────────────────── gestures ─────────────────────────────────*/

// Create validates and appends a new record, then confirms it remotely.
func (a *Adapter) Create(ctx context.Context, d Draft) error {
	return a.apply(ctx, func() (*Call, error) { return a.mut.Create(d) })
}

// Update patches an existing record.
func (a *Adapter) Update(ctx context.Context, id int64, p Patch) error {
	return a.apply(ctx, func() (*Call, error) { return a.mut.Update(id, p) })
}

// ToggleActive flips a record's visibility.
func (a *Adapter) ToggleActive(ctx context.Context, id int64, active bool) error {
	return a.apply(ctx, func() (*Call, error) { return a.mut.ToggleActive(id, active) })
}

// Delete removes a record.  Destructive: the caller must have obtained user
// confirmation before invoking this.
func (a *Adapter) Delete(ctx context.Context, id int64) error {
	return a.apply(ctx, func() (*Call, error) { return a.mut.Delete(id) })
}

// Reorder applies a full id permutation.
func (a *Adapter) Reorder(ctx context.Context, ids []int64) error {
	return a.apply(ctx, func() (*Call, error) { return a.mut.Reorder(ids) })
}

// Drop handles a drag-and-drop gesture by list index.  A drop onto the
// original slot is a no-op and issues no remote call.
func (a *Adapter) Drop(ctx context.Context, from, to int) error {
	a.mu.Lock()
	n := a.store.Len()
	if from == to {
		a.mu.Unlock()
		return nil
	}
	if from < 0 || from >= n || to < 0 || to >= n {
		a.mu.Unlock()
		return &ValidationError{Field: "position", Reason: "index out of range"}
	}

	ids := make([]int64, 0, n)
	for _, r := range a.store.All() {
		ids = append(ids, r.ID)
	}
	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:to], append([]int64{moved}, ids[to:]...)...)
	a.mu.Unlock()

	return a.Reorder(ctx, ids)
}

/*────────────────────────── apply + confirmation ───────────────────────────*/

// apply runs one mutation under the lock, renders the optimistic state, and
// dispatches the confirmation.  Validation and not-found failures return
// synchronously with the store untouched.
func (a *Adapter) apply(ctx context.Context, mutate func() (*Call, error)) error {
	a.mu.Lock()
	call, err := mutate()
	if err != nil {
		a.mu.Unlock()
		a.warn(err.Error())
		return err
	}
	a.inflight++
	a.renderLocked()
	a.mu.Unlock()

	go a.confirm(ctx, call)
	return nil
}

// confirm settles one in-flight Call.  On SyncError the optimistic state
// stands and the unsaved indicator stays true until a later attempt lands.
func (a *Adapter) confirm(ctx context.Context, call *Call) {
	echo, err := a.remote.Confirm(ctx, call)

	a.mu.Lock()
	a.inflight--
	if err == nil {
		a.mut.ack(call, echo)
		if !a.store.Dirty() {
			a.syncFailed = false
		}
	} else {
		a.syncFailed = true
	}
	a.renderLocked()
	a.mu.Unlock()

	if err != nil {
		a.warn("change saved locally but not on the server; retry or refresh")
	}
}

func (a *Adapter) renderLocked() {
	if a.hooks.Render != nil {
		a.hooks.Render(a.store.All(), a.unsavedLocked())
	}
}

func (a *Adapter) warn(msg string) {
	if a.hooks.Warn != nil {
		a.hooks.Warn(msg)
	}
}

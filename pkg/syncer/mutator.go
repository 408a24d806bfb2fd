// pkg/syncer/mutator.go
//
// Optimistic local mutations.
//
// Context
// -------
// Every operation applies to the Store immediately — the dashboard reflects
// the edit with zero latency — and returns a Call describing the remote
// request that will confirm it.  ValidationError and NotFoundError are
// returned before anything changes, so a rejected operation leaves the
// Store untouched and produces no Call.
//
// Delete is destructive and the mutator does not ask twice: obtaining user
// confirmation is the caller's job before invoking it.
//
//------------------------------------------------------------------------------

package syncer

import (
	"strings"

	"github.com/google/uuid"
)

// Op names the remote request a Call describes.
type Op string

const (
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpReorder Op = "reorder"
)

// Call is a remote-call descriptor produced by a mutation and consumed by a
// Remote.  Only the fields relevant to its Op are set.
type Call struct {
	Op        Op
	ID        int64   // update, delete
	ClientTag string  // create: pairs the Ack with the provisional record
	Record    *Record // create: payload snapshot
	Patch     *Patch  // update
	Order     []int64 // reorder: ids in their new position order
}

// Draft is the caller-supplied input for Create.
type Draft struct {
	Title  string
	Target string
	Icon   string
}

// Patch carries a partial update.  Nil fields are left untouched.
type Patch struct {
	Title  *string
	Target *string
	Icon   *string
	Active *bool
}

// Mutator applies logical edits to a Store.
type Mutator struct {
	store *Store
}

// NewMutator wraps store.
func NewMutator(store *Store) *Mutator {
	return &Mutator{store: store}
}

// Create validates the draft, appends a pending provisional record at the
// end of the collection, and returns the create Call.
func (m *Mutator) Create(d Draft) (*Call, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.Target) == "" {
		return nil, &ValidationError{Field: "target", Reason: "must not be empty"}
	}

	rec := Record{
		ClientTag: uuid.NewString(),
		Title:     d.Title,
		Target:    d.Target,
		Icon:      d.Icon,
		Active:    true,
		Pending:   true,
	}
	m.store.append(rec)

	snapshot := m.store.records[len(m.store.records)-1]
	return &Call{Op: OpCreate, ClientTag: snapshot.ClientTag, Record: &snapshot}, nil
}

// Update applies a partial patch to an existing record.
func (m *Mutator) Update(id int64, p Patch) (*Call, error) {
	i := m.store.index(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if p.Target != nil && strings.TrimSpace(*p.Target) == "" {
		return nil, &ValidationError{Field: "target", Reason: "must not be empty"}
	}

	rec := &m.store.records[i]
	if p.Title != nil {
		rec.Title = *p.Title
	}
	if p.Target != nil {
		rec.Target = *p.Target
	}
	if p.Icon != nil {
		rec.Icon = *p.Icon
	}
	if p.Active != nil {
		rec.Active = *p.Active
	}
	rec.Pending = true

	return &Call{Op: OpUpdate, ID: id, Patch: &p}, nil
}

// ToggleActive flips the visibility flag.  Sugar over Update.
func (m *Mutator) ToggleActive(id int64, active bool) (*Call, error) {
	return m.Update(id, Patch{Active: &active})
}

// Delete removes the record and renumbers every later record down by one,
// keeping positions contiguous without waiting for a refetch.
func (m *Mutator) Delete(id int64) (*Call, error) {
	i := m.store.index(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}
	m.store.remove(i)
	return &Call{Op: OpDelete, ID: id}, nil
}

// Reorder replaces the whole ordering.  ids must be exactly the current id
// set — a missing, duplicated, or foreign id rejects the whole call and
// changes nothing.
func (m *Mutator) Reorder(ids []int64) (*Call, error) {
	if len(ids) != m.store.Len() {
		return nil, &ValidationError{Field: "order", Reason: "id list must cover the whole collection"}
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, &ValidationError{Field: "order", Reason: "duplicate id"}
		}
		if m.store.index(id) < 0 {
			return nil, &ValidationError{Field: "order", Reason: "unknown id"}
		}
		seen[id] = struct{}{}
	}

	m.store.applyOrder(ids)
	return &Call{Op: OpReorder, Order: append([]int64(nil), ids...)}, nil
}

/*───────────────────────────── reconciliation ──────────────────────────────*/

// ack clears pending state once the remote confirmed the Call.  For creates
// the server-assigned id and counter are copied onto the provisional record
// matched by ClientTag.
func (m *Mutator) ack(call *Call, remote *Record) {
	switch call.Op {
	case OpCreate:
		if i := m.store.indexByTag(call.ClientTag); i >= 0 {
			rec := &m.store.records[i]
			if remote != nil {
				rec.ID = remote.ID
				rec.Clicks = remote.Clicks
				if remote.Icon != "" {
					rec.Icon = remote.Icon
				}
			}
			rec.Pending = false
		}
	case OpUpdate:
		if i := m.store.index(call.ID); i >= 0 {
			if remote != nil {
				m.store.records[i].Clicks = remote.Clicks
			}
			m.store.records[i].Pending = false
		}
	case OpDelete:
		// Row already gone locally; nothing to clear.
	case OpReorder:
		// Clear only the ids this call covered; a provisional create that
		// landed after the reorder keeps its own pending flag.
		for _, id := range call.Order {
			if i := m.store.index(id); i >= 0 {
				m.store.records[i].Pending = false
			}
		}
	}
}

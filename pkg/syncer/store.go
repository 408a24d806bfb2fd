// pkg/syncer/store.go
//
// In-memory ordered record store.
//
// Context
// -------
// The Store holds one user's collection for one open dashboard view.  Every
// record carries an explicit Position; between mutations the positions are
// a contiguous permutation of [0, n).  All reads return copies so callers
// can never alias internal state.
//
// The Store itself is not goroutine-safe; the Adapter serializes access.
//
//------------------------------------------------------------------------------

package syncer

import (
	"fmt"
	"sort"
)

// Record is one item in an ordered collection: a bio link, a QR payload, or
// a short branded link — the shape is identical for all three.
//
// ID is assigned by the remote store and is 0 while a create is still
// unconfirmed; ClientTag pairs the provisional record with its eventual
// acknowledgement.  Clicks is owned by the remote side and treated as
// read-only here.
type Record struct {
	ID        int64  `json:"id"`
	ClientTag string `json:"-"`
	Title     string `json:"title"`
	Target    string `json:"target"`
	Icon      string `json:"icon,omitempty"`
	Position  int    `json:"order"`
	Active    bool   `json:"isActive"`
	Clicks    int64  `json:"clicks"`
	Pending   bool   `json:"-"`
}

// Store is the in-memory ordered collection.
type Store struct {
	records []Record
}

// NewStore builds a Store from the remote's session-load snapshot.  Input
// order is irrelevant; records are sorted by Position.
func NewStore(initial []Record) *Store {
	s := &Store{records: append([]Record(nil), initial...)}
	sort.Slice(s.records, func(i, j int) bool {
		return s.records[i].Position < s.records[j].Position
	})
	return s
}

// All returns the records sorted ascending by Position.  The slice and its
// elements are copies.
func (s *Store) All() []Record {
	out := append([]Record(nil), s.records...)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// ByID returns a copy of the record with the given id.
func (s *Store) ByID(id int64) (Record, error) {
	if i := s.index(id); i >= 0 {
		return s.records[i], nil
	}
	return Record{}, &NotFoundError{ID: id}
}

// Len reports the number of records.
func (s *Store) Len() int { return len(s.records) }

// Dirty reports whether any record has an unconfirmed mutation.
func (s *Store) Dirty() bool {
	for i := range s.records {
		if s.records[i].Pending {
			return true
		}
	}
	return false
}

// CheckInvariant verifies positions form a contiguous permutation of
// [0, n).  Intended for tests and debug assertions, not user-facing flow.
func (s *Store) CheckInvariant() error {
	seen := make([]bool, len(s.records))
	for i := range s.records {
		p := s.records[i].Position
		if p < 0 || p >= len(s.records) {
			return fmt.Errorf("position %d out of range [0,%d)", p, len(s.records))
		}
		if seen[p] {
			return fmt.Errorf("position %d held by two records", p)
		}
		seen[p] = true
	}
	return nil
}

/*──────────────────────── internal mutation helpers ────────────────────────*/

func (s *Store) index(id int64) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) indexByTag(tag string) int {
	for i := range s.records {
		if s.records[i].ClientTag == tag {
			return i
		}
	}
	return -1
}

func (s *Store) append(r Record) {
	r.Position = len(s.records)
	s.records = append(s.records, r)
}

// remove deletes the record and closes the position gap, renumbering every
// later record down by one so the contiguity invariant holds locally too.
func (s *Store) remove(i int) {
	gone := s.records[i].Position
	s.records = append(s.records[:i], s.records[i+1:]...)
	for j := range s.records {
		if s.records[j].Position > gone {
			s.records[j].Position--
		}
	}
}

// applyOrder assigns each record the index of its id within ids.  The
// caller has already verified ids is a permutation of the current set.
func (s *Store) applyOrder(ids []int64) {
	pos := make(map[int64]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	for j := range s.records {
		s.records[j].Position = pos[s.records[j].ID]
		s.records[j].Pending = true
	}
}

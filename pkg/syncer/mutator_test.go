package syncer

import (
	"errors"
	"testing"
)

func seedStore() *Store {
	return NewStore([]Record{
		{ID: 1, Title: "Website", Target: "https://example.com", Position: 0, Active: true},
		{ID: 2, Title: "Instagram", Target: "https://instagram.com/x", Position: 1, Active: true},
	})
}

func ids(recs []Record) []int64 {
	out := make([]int64, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestReorder_SwapsTwoRecords(t *testing.T) {
	s := seedStore()
	m := NewMutator(s)

	call, err := m.Reorder([]int64{2, 1})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if call.Op != OpReorder {
		t.Fatalf("op = %q, want reorder", call.Op)
	}

	got := s.All()
	if got[0].ID != 2 || got[0].Position != 0 || got[1].ID != 1 || got[1].Position != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if err := s.CheckInvariant(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_EmptyTitleRejected(t *testing.T) {
	s := seedStore()
	m := NewMutator(s)

	call, err := m.Create(Draft{Title: "", Target: "https://x.com"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if call != nil {
		t.Fatal("rejected create must produce no remote call")
	}
	if s.Len() != 2 {
		t.Fatalf("store changed: %d records", s.Len())
	}
}

func TestCreate_EmptyTargetRejected(t *testing.T) {
	s := seedStore()
	m := NewMutator(s)

	_, err := m.Create(Draft{Title: "Contact", Target: "   "})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreate_AppendsAtEndPending(t *testing.T) {
	s := seedStore()
	m := NewMutator(s)

	call, err := m.Create(Draft{Title: "Contact", Target: "mailto:a@b.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if call.ClientTag == "" {
		t.Fatal("create call needs a client tag")
	}

	got := s.All()
	last := got[len(got)-1]
	if last.Position != 2 || !last.Pending || last.ID != 0 {
		t.Fatalf("provisional record wrong: %+v", last)
	}

	// Confirmation assigns the server id and clears pending.
	m.ack(call, &Record{ID: 7})
	rec, err := s.ByID(7)
	if err != nil || rec.Pending {
		t.Fatalf("after ack: rec=%+v err=%v", rec, err)
	}
}

func TestToggleActive_Immediate(t *testing.T) {
	s := seedStore()
	m := NewMutator(s)

	if _, err := m.ToggleActive(1, false); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	rec, _ := s.ByID(1)
	if rec.Active {
		t.Fatal("record 1 should be inactive immediately")
	}
	if !rec.Pending {
		t.Fatal("toggled record should be pending")
	}
}

func TestReorder_RejectsBadPermutations(t *testing.T) {
	cases := []struct {
		name string
		ids  []int64
	}{
		{"missing id", []int64{1}},
		{"duplicate id", []int64{1, 1}},
		{"foreign id", []int64{1, 2, 99}},
		{"substituted id", []int64{1, 99}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := seedStore()
			m := NewMutator(s)

			_, err := m.Reorder(tc.ids)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			got := ids(s.All())
			if got[0] != 1 || got[1] != 2 {
				t.Fatalf("store changed: %v", got)
			}
		})
	}
}

func TestDelete_ClosesPositionGap(t *testing.T) {
	s := NewStore([]Record{
		{ID: 1, Title: "A", Target: "t", Position: 0},
		{ID: 2, Title: "B", Target: "t", Position: 1},
		{ID: 3, Title: "C", Target: "t", Position: 2},
	})
	m := NewMutator(s)

	if _, err := m.Delete(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got := s.All()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 || got[1].Position != 1 {
		t.Fatalf("unexpected state: %+v", got)
	}
	if err := s.CheckInvariant(); err != nil {
		t.Fatal(err)
	}
}

func TestDelete_UnknownIDIsNotFound(t *testing.T) {
	m := NewMutator(seedStore())

	_, err := m.Delete(99)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

// Positions stay a contiguous permutation across a mixed mutation sequence.
func TestInvariant_SurvivesMixedOps(t *testing.T) {
	s := seedStore()
	m := NewMutator(s)

	if _, err := m.Create(Draft{Title: "C", Target: "t"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Delete(1); err != nil {
		t.Fatal(err)
	}
	remaining := ids(s.All())
	// Reverse whatever is left.
	for i, j := 0, len(remaining)-1; i < j; i, j = i+1, j-1 {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	}
	if _, err := m.Reorder(remaining); err != nil {
		t.Fatal(err)
	}

	if err := s.CheckInvariant(); err != nil {
		t.Fatal(err)
	}
	for i, r := range s.All() {
		if r.Position != i {
			t.Fatalf("position %d at index %d", r.Position, i)
		}
	}
}

func TestUpdate_PatchAppliesImmediately(t *testing.T) {
	s := seedStore()
	m := NewMutator(s)

	title := "Portfolio"
	if _, err := m.Update(1, Patch{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	rec, _ := s.ByID(1)
	if rec.Title != "Portfolio" || !rec.Pending {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

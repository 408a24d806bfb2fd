// internal/record/repository_test.go
//
// Unit-tests for the record repository using sqlmock.
//
// The interesting behaviours are the two transactional mutations:
//
//   • Delete renumbers every following row down by one.
//   • Reorder refuses id sets that are not an exact permutation of the
//     stored collection, and rolls back without touching a row.
//
// Run: go test ./internal/record -v

package record

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func TestDelete_RenumbersFollowingRows(t *testing.T) {
	db, mock := newMock(t)

	cols := []string{"id", "profile_id", "kind", "title", "target", "icon", "code",
		"position", "is_active", "clicks", "created_at", "updated_at"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(uint64(2), uint64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, 7, KindLink, "Instagram", "https://instagram.com/x", "", "",
				1, true, 0, time.Now(), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM record WHERE id = ? AND profile_id = ?`)).
		WithArgs(uint64(2), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`SET position = position - 1`)).
		WithArgs(uint64(7), KindLink, 1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	if err := Delete(context.Background(), db, 7, 2); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestDelete_StaleID(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(uint64(99), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"})) // no rows
	mock.ExpectRollback()

	if err := Delete(context.Background(), db, 7, 99); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReorder_AppliesFullPermutation(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM record`)).
		WithArgs(uint64(7), KindLink).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE record SET position = ?`)).
		WithArgs(0, uint64(2), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE record SET position = ?`)).
		WithArgs(1, uint64(1), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := Reorder(context.Background(), db, 7, KindLink, []uint64{2, 1}); err != nil {
		t.Fatalf("Reorder error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestReorder_RejectsForeignID(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM record`)).
		WithArgs(uint64(7), KindLink).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectRollback()

	err := Reorder(context.Background(), db, 7, KindLink, []uint64{1, 2, 99})
	if err != ErrBadPermutation {
		t.Fatalf("err = %v, want ErrBadPermutation", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestReorder_RejectsDuplicateID(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM record`)).
		WithArgs(uint64(7), KindLink).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectRollback()

	err := Reorder(context.Background(), db, 7, KindLink, []uint64{1, 1})
	if err != ErrBadPermutation {
		t.Fatalf("err = %v, want ErrBadPermutation", err)
	}
}

func TestSamePermutation(t *testing.T) {
	cases := []struct {
		name string
		a, b []uint64
		want bool
	}{
		{"identical", []uint64{1, 2, 3}, []uint64{1, 2, 3}, true},
		{"shuffled", []uint64{1, 2, 3}, []uint64{3, 1, 2}, true},
		{"missing", []uint64{1, 2, 3}, []uint64{1, 2}, false},
		{"duplicate", []uint64{1, 2}, []uint64{1, 1}, false},
		{"foreign", []uint64{1, 2}, []uint64{1, 9}, false},
		{"empty", nil, nil, true},
	}
	for _, tc := range cases {
		if got := samePermutation(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: samePermutation = %v, want %v", tc.name, got, tc.want)
		}
	}
}

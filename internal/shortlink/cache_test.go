// internal/shortlink/cache_test.go
//
// Unit-tests for the short-code resolution cache.
//
// Context
// -------
// Resolve consults an in-memory snapshot with DB fallback.  These tests
// verify three behaviours:
//
//   • Snapshot hit                       → Target returned, no extra query
//   • Snapshot miss with DB hit          → point query, entry cached
//   • Snapshot miss with DB miss         → ErrUnknownCode
//
// Run: go test ./internal/shortlink -v

package shortlink

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

func TestResolve_SnapshotHit(t *testing.T) {
	db, mock := newMock(t)
	c := NewCache(db, time.Minute)
	c.store("menu", Target{RecordID: 5, URL: "https://example.com/menu"})

	got, err := c.Resolve(context.Background(), "menu")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.RecordID != 5 || got.URL != "https://example.com/menu" {
		t.Fatalf("unexpected target: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL issued: %v", err)
	}
}

func TestResolve_MissThenPointQuery(t *testing.T) {
	db, mock := newMock(t)
	c := NewCache(db, time.Minute)
	c.store("warm", Target{RecordID: 1, URL: "x"}) // marks snapshot fresh

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, target FROM record`)).
		WithArgs("fresh").
		WillReturnRows(sqlmock.NewRows([]string{"id", "target"}).
			AddRow(9, "https://example.com/new"))

	got, err := c.Resolve(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.RecordID != 9 {
		t.Fatalf("RecordID = %d, want 9", got.RecordID)
	}

	// Second hit must come from the snapshot.
	if _, err := c.Resolve(context.Background(), "fresh"); err != nil {
		t.Fatalf("second Resolve error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestResolve_UnknownCode(t *testing.T) {
	db, mock := newMock(t)
	c := NewCache(db, time.Minute)
	c.store("warm", Target{RecordID: 1, URL: "x"})

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, target FROM record`)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "target"})) // empty

	if _, err := c.Resolve(context.Background(), "nope"); err != ErrUnknownCode {
		t.Fatalf("err = %v, want ErrUnknownCode", err)
	}
}

func TestBump_ForcesReload(t *testing.T) {
	db, mock := newMock(t)
	c := NewCache(db, time.Hour)
	c.store("old", Target{RecordID: 1, URL: "https://old"})

	c.Bump()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT code, id, target FROM record`)).
		WillReturnRows(sqlmock.NewRows([]string{"code", "id", "target"}).
			AddRow("old", 1, "https://new"))

	got, err := c.Resolve(context.Background(), "old")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.URL != "https://new" {
		t.Fatalf("URL = %q, want refreshed value", got.URL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

package bio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/biztro/biztro/internal/app"
	"github.com/biztro/biztro/internal/profile"
	"github.com/biztro/biztro/internal/shortlink"
	"github.com/biztro/biztro/internal/theme"
	"github.com/biztro/biztro/internal/track"
)

func newTestApp(t *testing.T) (*app.App, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	db := sqlx.NewDb(raw, "mysql")

	return &app.App{
		DB:         db,
		Log:        zap.NewNop().Sugar(),
		Profiles:   profile.New(db, &theme.Manager{BaseDir: t.TempDir()}, time.Minute, 8),
		ShortCodes: shortlink.NewCache(db, time.Minute),
		Tracker:    track.New(db, "", "test-salt"),
	}, mock
}

func withParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestShortCode_RedirectsFromCache(t *testing.T) {
	a, _ := newTestApp(t)
	a.ShortCodes.Store("promo", 31, "https://a.example/p")

	r := httptest.NewRequest(http.MethodGet, "/s/promo", nil)
	r = withParam(r, "code", "promo")
	w := httptest.NewRecorder()

	c := &Component{}
	c.handleShortCode(a)(w, r)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://a.example/p" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestShortCode_UnknownIs404(t *testing.T) {
	a, mock := newTestApp(t)

	// Warm the snapshot, then miss: the cache falls through to a point
	// query that also finds nothing.
	mock.ExpectQuery(`SELECT (.+) FROM record`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "id", "target"}))
	mock.ExpectQuery(`SELECT id, target FROM record`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "target"}))

	r := httptest.NewRequest(http.MethodGet, "/s/nope", nil)
	r = withParam(r, "code", "nope")
	w := httptest.NewRecorder()

	c := &Component{}
	c.handleShortCode(a)(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestLinkClick_BadIDIs404(t *testing.T) {
	a, _ := newTestApp(t)

	r := httptest.NewRequest(http.MethodGet, "/r/zero", nil)
	r = withParam(r, "id", "zero")
	w := httptest.NewRecorder()

	c := &Component{}
	c.handleLinkClick(a)(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

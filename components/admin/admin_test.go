package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/biztro/biztro/internal/app"
	"github.com/biztro/biztro/internal/auth"
	"github.com/biztro/biztro/internal/component"
	"github.com/biztro/biztro/internal/session"
)

var profileCols = []string{
	"id", "user_id", "slug", "display_name", "bio", "theme", "email", "phone",
	"address", "suspended_at", "deleted_at", "created_at", "updated_at",
}

func newTestApp(t *testing.T) (*app.App, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return &app.App{
		DB:       sqlx.NewDb(raw, "mysql"),
		Log:      zap.NewNop().Sugar(),
		Sessions: session.New("test-secret", 7),
	}, mock
}

func TestLanding_ShowsProfileLinks(t *testing.T) {
	a, mock := newTestApp(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM profile`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow(7, 42, "fern", "Fern's Page", "", "base", "", "", "", nil, nil, now, now))

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r = r.WithContext(auth.WithUser(context.Background(), 42))
	w := httptest.NewRecorder()

	c := &Component{}
	c.handleLanding(a)(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `href="/fern"`) {
		t.Fatalf("landing must link the public page: %s", body)
	}
	if !strings.Contains(body, "/api/links/") {
		t.Fatal("landing must link the collection API")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// The sign-in callback sends new sessions to /admin; the route must exist.
func TestMount_RegistersAdminRoute(t *testing.T) {
	a, _ := newTestApp(t)
	r := chi.NewRouter()
	(&Component{}).Mount(a, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	// No session: the guard redirects to /login, proving the route is
	// mounted rather than falling through to a catch-all 404.
	if w.Code != http.StatusTemporaryRedirect || w.Header().Get("Location") != "/login" {
		t.Fatalf("got %d → %q, want 307 → /login", w.Code, w.Header().Get("Location"))
	}
}

func TestRegistry_IncludesAdmin(t *testing.T) {
	for _, c := range component.All() {
		if c.Name() == "admin" {
			return
		}
	}
	t.Fatal("admin component not registered")
}

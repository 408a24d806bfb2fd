package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// loginAndCapture performs LoginUser against a recorder and returns the
// resulting cookie.
func loginAndCapture(t *testing.T, m *Manager, userID int64) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/oauth/callback", nil)
	if err := m.LoginUser(w, r, userID); err != nil {
		t.Fatalf("login: %v", err)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSession_RoundTrip(t *testing.T) {
	m := New("test-secret", 7)
	cookie := loginAndCapture(t, m, 42)

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(cookie)

	id, ok := m.CurrentUser(r)
	if !ok || id != 42 {
		t.Fatalf("CurrentUser = (%d, %v), want (42, true)", id, ok)
	}
}

func TestSession_WrongSecretRejected(t *testing.T) {
	cookie := loginAndCapture(t, New("secret-a", 7), 42)

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(cookie)

	if _, ok := New("secret-b", 7).CurrentUser(r); ok {
		t.Fatal("cookie signed with another secret must not verify")
	}
}

func TestRequireUser_APIGets401(t *testing.T) {
	m := New("test-secret", 7)
	h := m.RequireUser(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/links/", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireUser_PageRedirectsToLogin(t *testing.T) {
	m := New("test-secret", 7)
	h := m.RequireUser(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if w.Code != http.StatusTemporaryRedirect || w.Header().Get("Location") != "/login" {
		t.Fatalf("got %d → %q, want 307 → /login", w.Code, w.Header().Get("Location"))
	}
}

// internal/session/session.go
//
// JWT-signed login cookie.
//
// Context
//   Authentication requires persisting a “logged-in” flag between requests.
//   The cookie named “biztro_session” carries a compact HS256 JWT whose
//   subject is the user ID.  Verification happens in RequireUser, which
//   attaches the ID to the request context via internal/auth; handlers never
//   parse the cookie themselves.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/biztro/biztro/internal/auth"
)

const cookieName = "biztro_session"

// Manager signs and verifies session cookies.  Construct once at boot with
// the secret from config (possibly Vault-resolved).
type Manager struct {
	secret []byte
	maxAge time.Duration
}

// New returns a Manager.  maxDays ≤ 0 defaults to 14 days.
func New(secret string, maxDays int) *Manager {
	if maxDays <= 0 {
		maxDays = 14
	}
	return &Manager{
		secret: []byte(secret),
		maxAge: time.Duration(maxDays) * 24 * time.Hour,
	}
}

// LoginUser sets a session cookie for userID.  Callers invoke this after the
// OAuth callback has verified the account.
func (m *Manager) LoginUser(w http.ResponseWriter, r *http.Request, userID int64) error {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
	})
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(m.maxAge),
	})
	return nil
}

// LogoutUser clears the session cookie.
func (m *Manager) LogoutUser(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// CurrentUser returns the user ID stored in the session, if any.  ok ==
// false when the cookie is missing, expired, or fails verification.
func (m *Manager) CurrentUser(r *http.Request) (int64, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}

	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(c.Value, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return 0, false
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		zap.S().Warnw("session cookie with non-numeric subject", "sub", claims.Subject)
		return 0, false
	}
	return id, true
}

// RequireUser guards dashboard routes.  API paths get a 401; page requests
// are redirected to the sign-in flow.
func (m *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.CurrentUser(r)
		if !ok {
			if isAPIRequest(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			} else {
				http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), id)))
	})
}

func isAPIRequest(r *http.Request) bool {
	const apiPrefix = "/api/"
	return len(r.URL.Path) >= len(apiPrefix) && r.URL.Path[:len(apiPrefix)] == apiPrefix
}

// components/oauth/oauth.go
//
// Google sign-in.
//
// Context
// -------
// There is no password store; a profile owner authenticates exclusively via
// Google OAuth2.  The flow is the standard three-leg dance:
//
//	GET /login            – issue a state nonce cookie, redirect to Google
//	GET /oauth/callback   – verify state, exchange the code, fetch userinfo,
//	                        upsert the account, set the session cookie
//	GET /logout           – clear the session cookie
//
// First-time sign-ins additionally create the owner's profile (slug derived
// from the email local part) and enqueue a welcome email.  The session
// itself is a signed cookie managed by internal/session; this component
// never touches JWTs directly.
//
//------------------------------------------------------------------------------

package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/biztro/biztro/internal/app"
	"github.com/biztro/biztro/internal/component"
	"github.com/biztro/biztro/internal/message"
	"github.com/biztro/biztro/internal/profile"
	"github.com/biztro/biztro/internal/shortcode"
	"github.com/biztro/biztro/internal/user"
)

const (
	stateCookie   = "biztro_oauth_state"
	userinfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	exchangeLimit = 10 * time.Second
)

var _ component.Component = (*Component)(nil)

// Component implements the Google sign-in flow.
type Component struct {
	conf *oauth2.Config
}

func (c *Component) Name() string { return "oauth" }

func init() { component.Register(&Component{}) }

// Mount wires the three public auth routes.
func (c *Component) Mount(a *app.App, r chi.Router) {
	c.conf = &oauth2.Config{
		ClientID:     a.Cfg.OAuth.GoogleClientID,
		ClientSecret: a.Cfg.OAuth.GoogleClientSecret,
		RedirectURL:  a.Cfg.OAuth.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	r.Get("/login", c.handleLogin(a))
	r.Get("/oauth/callback", c.handleCallback(a))
	r.Get("/logout", c.handleLogout(a))
}

/*─────────────────────────────── handlers ──────────────────────────────────*/

// handleLogin issues a one-shot state nonce and bounces to Google's consent
// screen.  The nonce lives in a short cookie so the callback can verify the
// round trip came from us.
func (c *Component) handleLogin(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   int((10 * time.Minute).Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, c.conf.AuthCodeURL(state), http.StatusTemporaryRedirect)
	}
}

func (c *Component) handleCallback(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// State must match the nonce we set at /login.
		nonce, err := r.Cookie(stateCookie)
		if err != nil || nonce.Value == "" || r.URL.Query().Get("state") != nonce.Value {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

		ctx, cancel := context.WithTimeout(r.Context(), exchangeLimit)
		defer cancel()

		tok, err := c.conf.Exchange(ctx, r.URL.Query().Get("code"))
		if err != nil {
			a.Log.Warnw("oauth exchange failed", "err", err)
			http.Error(w, "sign-in failed", http.StatusBadGateway)
			return
		}

		info, err := c.fetchUserinfo(ctx, tok)
		if err != nil {
			a.Log.Warnw("oauth userinfo failed", "err", err)
			http.Error(w, "sign-in failed", http.StatusBadGateway)
			return
		}
		if info.Email == "" {
			http.Error(w, "account has no email", http.StatusForbidden)
			return
		}

		uid, err := user.Upsert(r.Context(), a.DB, info.Email, info.Name, info.Picture)
		if err != nil {
			a.Log.Errorw("user upsert", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if err := c.ensureProfile(r.Context(), a, uid, info); err != nil {
			a.Log.Errorw("profile bootstrap", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if err := a.Sessions.LoginUser(w, r, int64(uid)); err != nil {
			a.Log.Errorw("session issue", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}

func (c *Component) handleLogout(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.Sessions.LogoutUser(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

/*──────────────────────────────── helpers ──────────────────────────────────*/

type userinfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (c *Component) fetchUserinfo(ctx context.Context, tok *oauth2.Token) (*userinfo, error) {
	resp, err := c.conf.Client(ctx, tok).Get(userinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo: status %d", resp.StatusCode)
	}
	var info userinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ensureProfile creates the owner's page on first sign-in.  The slug starts
// from the email local part; collisions get a short random suffix.
func (c *Component) ensureProfile(ctx context.Context, a *app.App, uid uint64, info *userinfo) error {
	_, err := profile.ByUser(ctx, a.DB, uid)
	if err == nil {
		return nil
	}
	if !errors.Is(err, profile.ErrNotFound) {
		return err
	}

	local, _, _ := strings.Cut(info.Email, "@")
	slug := shortcode.MakeSlug(local)
	name := info.Name
	if name == "" {
		name = local
	}

	if _, err = profile.Create(ctx, a.DB, uid, slug, name); err != nil {
		slug = slug + "-" + shortcode.Random(4)
		if _, err = profile.Create(ctx, a.DB, uid, slug, name); err != nil {
			return err
		}
	}

	// Welcome email is best-effort; the queue stub never blocks sign-in.
	_ = message.EnqueueEmail(ctx, message.Email{
		To:      []string{info.Email},
		Subject: "Welcome to Biztro",
		Text:    "Your page is live at /" + slug + ".  Add your first link from the dashboard.",
	})
	return nil
}

// components/admin/admin.go
//
// Dashboard landing page.
//
// Context
// -------
// The sign-in flow lands the owner on /admin.  The dashboard proper is a
// client application driven by the collection API; this handler serves its
// entry page: the owner's public URL plus the collection endpoints the
// client talks to.  Everything behind /admin requires a session.
//
//------------------------------------------------------------------------------

package admin

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/biztro/biztro/internal/app"
	"github.com/biztro/biztro/internal/auth"
	"github.com/biztro/biztro/internal/component"
	"github.com/biztro/biztro/internal/profile"
)

var _ component.Component = (*Component)(nil)

// Component serves the authenticated dashboard shell.
type Component struct{}

func (c *Component) Name() string { return "admin" }

func init() { component.Register(&Component{}) }

// Mount wires the landing route behind the session guard.
func (c *Component) Mount(a *app.App, r chi.Router) {
	r.With(a.Sessions.RequireUser).Get("/admin", c.handleLanding(a))
}

var landing = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head><title>Biztro dashboard</title></head>
<body>
  <main class="admin">
    <h1>{{ .DisplayName }}</h1>
    <p>Your page: <a href="/{{ .Slug }}">/{{ .Slug }}</a></p>
    <nav>
      <a href="/api/links/">Links</a>
      <a href="/api/qr/">QR codes</a>
      <a href="/api/short/">Short links</a>
      <a href="/logout">Sign out</a>
    </nav>
  </main>
</body>
</html>
`))

type landingData struct {
	DisplayName string
	Slug        string
}

func (c *Component) handleLanding(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		prof, err := profile.ByUser(r.Context(), a.DB, uint64(uid))
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				http.Error(w, "no profile for account", http.StatusForbidden)
				return
			}
			a.Log.Errorw("load profile", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := landing.Execute(w, landingData{
			DisplayName: prof.DisplayName,
			Slug:        prof.Slug,
		}); err != nil {
			a.Log.Errorw("render landing", "err", err)
		}
	}
}

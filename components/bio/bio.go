// components/bio/bio.go
//
// Public profile surface.
//
// Context
// -------
// Everything a visitor (not an owner) touches lives here:
//
//	GET /{slug}        – render the bio page from the profile cache
//	GET /r/{id}        – count a link click, then redirect to its target
//	GET /s/{code}      – resolve a branded short code, count, redirect
//	GET /themes/...    – static theme assets (css, fonts, icons)
//
// Click tracking must never delay a redirect: the recorder parses the
// request synchronously but persists from a goroutine, and the redirect is
// issued regardless of tracking outcome.
//
//------------------------------------------------------------------------------

package bio

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/biztro/biztro/internal/app"
	"github.com/biztro/biztro/internal/component"
	"github.com/biztro/biztro/internal/head"
	"github.com/biztro/biztro/internal/metrics"
	"github.com/biztro/biztro/internal/profile"
	"github.com/biztro/biztro/internal/record"
	"github.com/biztro/biztro/internal/shortlink"
)

var _ component.Component = (*Component)(nil)

// Component serves the public profile pages and redirect endpoints.
type Component struct{}

func (c *Component) Name() string { return "bio" }

func init() { component.Register(&Component{}) }

// Mount attaches the public routes.  Static path segments (/r, /s, /themes)
// take precedence over the catch-all /{slug} in chi's routing tree, so
// registration order does not matter.
func (c *Component) Mount(a *app.App, r chi.Router) {
	r.Get("/r/{id}", c.handleLinkClick(a))
	r.Get("/s/{code}", c.handleShortCode(a))
	r.Handle("/themes/*", http.StripPrefix("/themes/",
		http.FileServer(http.Dir(filepath.Join(a.Cfg.Paths.Root, "themes")))))
	r.Get("/{slug}", c.handlePage(a))
}

/*─────────────────────────────── handlers ──────────────────────────────────*/

// pageData is the root object every theme template receives.
type pageData struct {
	Head    *head.Builder
	Profile profile.Record
	Records []record.Record
}

func (c *Component) handlePage(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		p, err := a.Profiles.Get(slug)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			a.Log.Errorw("profile load", "slug", slug, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		hb := head.New()
		hb.SetTitle(p.Meta.DisplayName + " | Biztro")
		hb.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		if p.Meta.Bio != "" {
			hb.Meta(`<meta name="description" content="` + template.HTMLEscapeString(p.Meta.Bio) + `">`)
		}

		metrics.ProfileViewsTotal.Inc()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := p.Renderer.ExecuteTemplate(w, "profile.html", pageData{
			Head:    hb,
			Profile: p.Meta,
			Records: p.Records,
		}); err != nil {
			a.Log.Errorw("render profile", "slug", slug, "err", err)
		}
	}
}

// handleLinkClick counts the click and redirects.  The record is resolved
// from the cached profile when possible; a cold cache falls through to a
// direct lookup so the redirect never depends on cache state.
func (c *Component) handleLinkClick(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id == 0 {
			http.NotFound(w, r)
			return
		}

		target, ok := c.lookupTarget(a, r, id)
		if !ok {
			http.NotFound(w, r)
			return
		}

		a.Tracker.Record(r, id)
		http.Redirect(w, r, target, http.StatusFound)
	}
}

func (c *Component) handleShortCode(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		t, err := a.ShortCodes.Resolve(r.Context(), code)
		if err != nil {
			if errors.Is(err, shortlink.ErrUnknownCode) {
				http.NotFound(w, r)
				return
			}
			a.Log.Errorw("short code resolve", "code", code, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		a.Tracker.Record(r, t.RecordID)
		http.Redirect(w, r, t.URL, http.StatusFound)
	}
}

/*──────────────────────────────── helpers ──────────────────────────────────*/

// lookupTarget resolves a public record id to its redirect target.  The
// click path is unauthenticated, so the lookup is limited to active rows.
func (c *Component) lookupTarget(a *app.App, r *http.Request, id uint64) (string, bool) {
	var target string
	err := a.DB.GetContext(r.Context(), &target,
		`SELECT target FROM record WHERE id = ? AND is_active = TRUE LIMIT 1`, id)
	if err != nil {
		return "", false
	}
	return target, true
}

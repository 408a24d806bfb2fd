// components/collection/collection.go
//
// Dashboard collection API.
//
// Context
// -------
// One component serves the three ordered collections a profile owner edits:
// bio links, QR payloads, and short branded links.  The endpoints are
// identical per kind, so each is mounted from the same handler set under
// /api/links, /api/qr, and /api/short:
//
//	GET    /api/<kind>            – full collection, position order
//	POST   /api/<kind>            – create, appended at the end
//	PUT    /api/<kind>/{id}       – partial patch (title/target/icon/active)
//	DELETE /api/<kind>/{id}       – delete + close the position gap
//	POST   /api/<kind>/reorder    – atomic full-permutation reorder
//
// Every query is scoped to the session user's profile; a stale or foreign
// id is indistinguishable from a missing one (404).  Validation failures
// return 422 with field-level messages so the dashboard can highlight exact
// inputs; bad reorder permutations return 409 and change nothing.
//
//------------------------------------------------------------------------------

package collection

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/biztro/biztro/internal/app"
	"github.com/biztro/biztro/internal/auth"
	"github.com/biztro/biztro/internal/component"
	"github.com/biztro/biztro/internal/metrics"
	"github.com/biztro/biztro/internal/profile"
	"github.com/biztro/biztro/internal/record"
	"github.com/biztro/biztro/internal/shortcode"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component encapsulates the dashboard collection API.
type Component struct{}

func (c *Component) Name() string { return "collection" }

// Register component at program start.
func init() { component.Register(&Component{}) }

// kindByRoute maps URL segments to the stored kind discriminator.
var kindByRoute = map[string]string{
	"links": record.KindLink,
	"qr":    record.KindQR,
	"short": record.KindShort,
}

// Mount attaches the API for all three kinds behind the session guard.
func (c *Component) Mount(a *app.App, r chi.Router) {
	for route, kind := range kindByRoute {
		route, kind := route, kind
		r.Route("/api/"+route, func(api chi.Router) {
			api.Use(a.Sessions.RequireUser)
			api.Get("/", c.handleList(a, kind))
			api.Post("/", c.handleCreate(a, kind))
			api.Put("/{id}", c.handleUpdate(a, kind))
			api.Delete("/{id}", c.handleDelete(a, kind))
			api.Post("/reorder", c.handleReorder(a, kind))
		})
	}
}

/*──────────────────────────── request payloads ─────────────────────────────*/

type createRequest struct {
	Title  string `json:"title"  validate:"required,max=120"`
	Target string `json:"target" validate:"required,max=2048"`
	Icon   string `json:"icon"   validate:"max=40"`
	Code   string `json:"code"   validate:"max=100"` // short links only
}

type updateRequest struct {
	Title    *string `json:"title"    validate:"omitempty,max=120"`
	Target   *string `json:"target"   validate:"omitempty,min=1,max=2048"`
	Icon     *string `json:"icon"     validate:"omitempty,max=40"`
	IsActive *bool   `json:"isActive"`
}

type reorderRequest struct {
	Items []reorderItem `json:"items" validate:"required,min=1,dive"`
}

type reorderItem struct {
	ID    uint64 `json:"id"    validate:"required"`
	Order int    `json:"order" validate:"min=0"`
}

/*─────────────────────────────── handlers ──────────────────────────────────*/

func (c *Component) handleList(a *app.App, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prof, ok := c.profileOf(a, w, r)
		if !ok {
			return
		}
		rows, err := record.ListByProfile(r.Context(), a.DB, prof.ID, kind)
		if err != nil {
			internalError(a, w, "list records", err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func (c *Component) handleCreate(a *app.App, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prof, ok := c.profileOf(a, w, r)
		if !ok {
			return
		}

		var req createRequest
		if !decodeValid(a, w, r, &req) {
			return
		}

		rec := &record.Record{
			ProfileID: prof.ID,
			Kind:      kind,
			Title:     req.Title,
			Target:    req.Target,
			Icon:      req.Icon,
		}
		if kind == record.KindShort {
			rec.Code = req.Code
			if rec.Code == "" {
				rec.Code = shortcode.Random(7)
			} else {
				rec.Code = shortcode.MakeSlug(rec.Code)
			}
		}

		created, err := record.Insert(r.Context(), a.DB, rec)
		if err != nil {
			internalError(a, w, "create record", err)
			return
		}

		c.flush(a, prof, kind)
		if kind == record.KindShort {
			a.ShortCodes.Store(created.Code, created.ID, created.Target)
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (c *Component) handleUpdate(a *app.App, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prof, ok := c.profileOf(a, w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req updateRequest
		if !decodeValid(a, w, r, &req) {
			return
		}

		updated, err := record.Update(r.Context(), a.DB, prof.ID, id, record.Patch{
			Title:    req.Title,
			Target:   req.Target,
			Icon:     req.Icon,
			IsActive: req.IsActive,
		})
		if err != nil {
			if errors.Is(err, record.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			internalError(a, w, "update record", err)
			return
		}

		c.flush(a, prof, kind)
		writeJSON(w, http.StatusOK, updated)
	}
}

func (c *Component) handleDelete(a *app.App, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prof, ok := c.profileOf(a, w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := record.Delete(r.Context(), a.DB, prof.ID, id); err != nil {
			if errors.Is(err, record.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			internalError(a, w, "delete record", err)
			return
		}

		c.flush(a, prof, kind)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *Component) handleReorder(a *app.App, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prof, ok := c.profileOf(a, w, r)
		if !ok {
			return
		}

		var req reorderRequest
		if !decodeValid(a, w, r, &req) {
			return
		}

		// Accept items in any order; the target position is explicit.  Two
		// items claiming one slot would make the resulting permutation
		// depend on payload order, so duplicates are rejected outright.
		slots := make(map[int]struct{}, len(req.Items))
		for _, it := range req.Items {
			if _, dup := slots[it.Order]; dup {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
					"errors": []map[string]string{
						{"field": "Order", "message": "duplicate order value"},
					},
				})
				return
			}
			slots[it.Order] = struct{}{}
		}
		sort.SliceStable(req.Items, func(i, j int) bool { return req.Items[i].Order < req.Items[j].Order })
		ids := make([]uint64, len(req.Items))
		for i, it := range req.Items {
			ids[i] = it.ID
		}

		if err := record.Reorder(r.Context(), a.DB, prof.ID, kind, ids); err != nil {
			if errors.Is(err, record.ErrBadPermutation) {
				writeJSON(w, http.StatusConflict, map[string]string{
					"error": "ids must match the current collection exactly",
				})
				return
			}
			internalError(a, w, "reorder records", err)
			return
		}

		metrics.ReorderTotal.Inc()
		c.flush(a, prof, kind)
		w.WriteHeader(http.StatusNoContent)
	}
}

/*──────────────────────────────── helpers ──────────────────────────────────*/

// profileOf resolves the session user's profile.  Writes the error response
// itself so handlers can simply return on !ok.
func (c *Component) profileOf(a *app.App, w http.ResponseWriter, r *http.Request) (*profile.Record, bool) {
	uid, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	prof, err := profile.ByUser(r.Context(), a.DB, uint64(uid))
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			http.Error(w, "no profile for account", http.StatusForbidden)
			return nil, false
		}
		internalError(a, w, "load profile", err)
		return nil, false
	}
	return prof, true
}

// flush invalidates the read-side caches touched by a dashboard write.
func (c *Component) flush(a *app.App, prof *profile.Record, kind string) {
	a.Profiles.Invalidate(prof.Slug)
	if kind == record.KindShort {
		a.ShortCodes.Bump()
	}
}

// decodeValid decodes JSON into dst and validates it.  On failure it writes
// the response (400 for malformed JSON, 422 with field messages) and
// returns false.
func decodeValid(a *app.App, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "malformed JSON body", http.StatusBadRequest)
		return false
	}
	if err := a.Validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]map[string]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, map[string]string{
					"field":   fe.Field(),
					"message": "failed " + fe.Tag() + " check",
				})
			}
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fields})
			return false
		}
		http.Error(w, "invalid payload", http.StatusUnprocessableEntity)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func internalError(a *app.App, w http.ResponseWriter, op string, err error) {
	a.Log.Errorw(op, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

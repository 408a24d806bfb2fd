// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  cmd/web asks every component
// to attach its routes onto the shared root router, so adding a feature
// area is one new package plus one blank import in main.
//
// Mount() should attach BOTH page and API endpoints, e.g:
//
//	func (c *Component) Mount(a *app.App, r chi.Router) {
//		r.Get("/login", c.handleLogin(a))
//		r.Route("/api/widgets", func(api chi.Router) { ... })
//	}

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/biztro/biztro/internal/app"
)

// Component contract.
type Component interface {
	Name() string
	Mount(*app.App, chi.Router)
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name, so mount order is
// deterministic across restarts.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// MountAll attaches every registered component to r.
func MountAll(a *app.App, r chi.Router) {
	for _, c := range All() {
		c.Mount(a, r)
	}
}

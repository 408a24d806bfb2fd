// internal/profile/cache.go
//
// Lazy-loading cache of public profiles.
//
// Context
// -------
// A profile page is read far more often than it is edited, so the renderer
// works from an in-memory aggregate: profile row + active records + parsed
// theme templates.  Entries load on first hit (deduplicated through
// singleflight so a traffic spike on a cold slug issues one DB query), are
// re-stamped on every hit, and are evicted by the background loop in
// evictor.go on idle TTL or LRU pressure.
package profile

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/biztro/biztro/internal/metrics"
	"github.com/biztro/biztro/internal/record"
	"github.com/biztro/biztro/internal/theme"
)

// Static defaults.  Override via New arguments if desired.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 1000
	EvictInterval = 5 * time.Minute
)

// Cache lazily loads profiles, stores them in a sync.Map keyed by slug, and
// evicts them on idle TTL or LRU pressure.
type Cache struct {
	db          *sqlx.DB
	themes      *theme.Manager
	sfg         singleflight.Group
	m           sync.Map
	evictTicker *time.Ticker
	idleTTL     time.Duration
	maxEntries  int
}

// New constructs a Cache and starts the background evictor.
func New(db *sqlx.DB, themes *theme.Manager, idleTTL time.Duration, maxEntries int) *Cache {
	c := &Cache{
		db:         db,
		themes:     themes,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
	}
	c.evictTicker = time.NewTicker(EvictInterval)
	go c.evictLoop()
	return c
}

// Get returns the Profile for slug, loading it on demand.
func (c *Cache) Get(slug string) (*Profile, error) {
	if v, ok := c.m.Load(slug); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.profile, nil
	}

	v, err, _ := c.sfg.Do(slug, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(slug); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.profile, nil
		}
		prof, err := c.load(context.Background(), slug)
		if err != nil {
			metrics.ProfileLoadErrorsTotal.Inc()
			return nil, err
		}
		ent := &entry{
			profile:  prof,
			lastSeen: time.Now().UnixNano(),
		}
		c.m.Store(slug, ent)
		metrics.ProfileLoadTotal.Inc()
		metrics.ActiveProfiles.Inc()
		return prof, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Profile), nil
}

// Invalidate drops a cached slug so the next public hit sees fresh data.
// Dashboard handlers call this after any successful write.
func (c *Cache) Invalidate(slug string) {
	if _, ok := c.m.LoadAndDelete(slug); ok {
		metrics.ActiveProfiles.Dec()
	}
}

// load turns slug → *Profile.  Steps:
//
//  1. Fetch profile row.
//  2. Fetch active link records in position order.
//  3. Parse theme templates.
func (c *Cache) load(ctx context.Context, slug string) (*Profile, error) {
	rec, err := BySlug(ctx, c.db, slug)
	if err != nil {
		return nil, err
	}

	all, err := record.ListByProfile(ctx, c.db, rec.ID, record.KindLink)
	if err != nil {
		return nil, err
	}
	active := all[:0:0]
	for _, r := range all {
		if r.IsActive {
			active = append(active, r)
		}
	}

	th, err := c.themes.Load(rec.Theme)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Meta:     *rec,
		Records:  active,
		Renderer: th.Renderer,
	}, nil
}

// internal/shortlink/cache.go
//
// Short-code resolution cache.
//
// Context
// -------
// Branded short URLs (`/s/{code}`) are the hottest read path in the app and
// resolve to nothing but a record id + target.  The cache keeps the whole
// active code table in memory with a TTL, so redirects normally cost one map
// lookup; misses (fresh codes, expired snapshots) fall back to a single
// point query and are inserted into the snapshot.
//
// Workflow
// --------
//   1. cmd/web constructs the Cache at boot via shortlink.NewCache().
//   2. The bio component calls Resolve(ctx, code) per redirect.
//   3. Dashboard writes bump the version via Bump() so the next Resolve
//      reloads even inside the TTL window.
//
// Notes
// -----
// • Max line length 100 columns.

package shortlink

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrUnknownCode is returned when neither snapshot nor DB resolves the code.
var ErrUnknownCode = errors.New("unknown short code")

// Target is what a redirect needs: the destination plus the record id for
// click tracking.
type Target struct {
	RecordID uint64 `db:"id"`
	URL      string `db:"target"`
}

// Cache stores code→Target pairs plus TTL/version state.  Zero value is
// unusable; construct with NewCache.
type Cache struct {
	mu       sync.RWMutex
	data     map[string]Target
	loadedAt time.Time
	version  int // bumped on dashboard writes, forces reload
	loadedV  int
	ttl      time.Duration
	db       *sqlx.DB
}

// NewCache returns a ready cache with the specified TTL.
func NewCache(db *sqlx.DB, ttl time.Duration) *Cache {
	return &Cache{data: map[string]Target{}, db: db, ttl: ttl}
}

// Resolve maps a code to its Target, refreshing the snapshot when stale.
func (c *Cache) Resolve(ctx context.Context, code string) (Target, error) {
	if c.stale() {
		if err := c.load(ctx); err != nil {
			zap.L().Warn("short-code cache reload failed", zap.Error(err))
			// Stale data beats no data; keep serving and fall through.
		}
	}

	c.mu.RLock()
	t, ok := c.data[code]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	// Point lookup for codes created since the snapshot.
	var t2 Target
	err := c.db.GetContext(ctx, &t2,
		`SELECT id, target FROM record
          WHERE kind = 'short' AND code = ? AND is_active = TRUE LIMIT 1`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Target{}, ErrUnknownCode
		}
		return Target{}, err
	}

	c.mu.Lock()
	c.data[code] = t2
	c.mu.Unlock()
	return t2, nil
}

// Bump marks the snapshot dirty.  Called after any dashboard write to a
// short-link record so pauses and edits take effect on the next redirect.
func (c *Cache) Bump() {
	c.mu.Lock()
	c.version++
	c.mu.Unlock()
}

// load refreshes the full snapshot of active codes.
func (c *Cache) load(ctx context.Context) error {
	rows, err := c.db.QueryContext(ctx,
		`SELECT code, id, target FROM record WHERE kind = 'short' AND is_active = TRUE`)
	if err != nil {
		return err
	}
	defer rows.Close()

	fresh := make(map[string]Target)
	for rows.Next() {
		var code string
		var t Target
		if err := rows.Scan(&code, &t.RecordID, &t.URL); err != nil {
			return err
		}
		fresh[code] = t
	}
	if err := rows.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.data = fresh
	c.loadedAt = time.Now()
	c.loadedV = c.version
	c.mu.Unlock()

	zap.L().Debug("short-code cache load", zap.Int("count", len(fresh)))
	return nil
}

func (c *Cache) stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Since(c.loadedAt) > c.ttl || c.loadedV != c.version
}

// store pre-seeds a single entry.  Test helper, also used after creates so
// the author's own first click never misses.
func (c *Cache) store(code string, t Target) {
	c.mu.Lock()
	c.data[code] = t
	if c.loadedAt.IsZero() {
		c.loadedAt = time.Now()
	}
	c.mu.Unlock()
}

// Store is the exported form of store.
func (c *Cache) Store(code string, recordID uint64, url string) {
	c.store(code, Target{RecordID: recordID, URL: url})
}

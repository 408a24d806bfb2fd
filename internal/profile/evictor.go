// evictor.go houses the eviction loop for Cache.  Every EvictInterval it
// scans the map and removes:
//
//   - profiles idle longer than idleTTL
//   - least-recently-used profiles when map size exceeds maxEntries
//
// Each eviction event is logged and updates Prometheus counters.
package profile

import (
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/biztro/biztro/internal/metrics"
)

func (c *Cache) evictLoop() {
	for range c.evictTicker.C {
		now := time.Now().UnixNano()
		var count int

		// ----------------------------------------------------------------
		// Idle eviction pass
		// ----------------------------------------------------------------
		c.m.Range(func(key, value any) bool {
			count++
			ent := value.(*entry)
			idle := time.Duration(now - atomic.LoadInt64(&ent.lastSeen))
			if idle > c.idleTTL {
				c.m.Delete(key)
				count--
				zap.S().Infow("profile evicted",
					"slug", key, "idle", idle.Truncate(time.Second))
				metrics.ProfileEvictTotal.Inc()
				metrics.ActiveProfiles.Dec()
			}
			return true
		})

		// ----------------------------------------------------------------
		// LRU eviction pass
		// ----------------------------------------------------------------
		if c.maxEntries > 0 && count > c.maxEntries {
			type kv struct {
				key string
				at  int64
			}
			var all []kv
			c.m.Range(func(key, value any) bool {
				ent := value.(*entry)
				all = append(all, kv{key: key.(string), at: atomic.LoadInt64(&ent.lastSeen)})
				return true
			})
			sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })
			for i := 0; i < count-c.maxEntries && i < len(all); i++ {
				if _, ok := c.m.LoadAndDelete(all[i].key); ok {
					zap.S().Infow("profile evicted (LRU pressure)", "slug", all[i].key)
					metrics.ProfileEvictTotal.Inc()
					metrics.ActiveProfiles.Dec()
				}
			}
		}
	}
}

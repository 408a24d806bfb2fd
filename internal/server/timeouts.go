// internal/server/timeouts.go
//
// HTTP server constructor.
//
// Context
// -------
// Biztro's hottest endpoints are redirects (/r/{id}, /s/{code}) that must
// answer in milliseconds, while the profile renderer may touch the DB and
// parse templates on a cold cache.  The server timeouts therefore come from
// the `http:` config block so a deployment can tune them, with conservative
// defaults when unset:
//
//   - read   – abort slow-loris headers (default 10 s)
//   - write  – cap total response time (default 15 s)
//   - idle   – close keep-alives from idle clients (default 60 s)
//
//------------------------------------------------------------------------------

package server

import (
	"net/http"
	"time"

	"github.com/biztro/biztro/internal/config"
)

// Defaults applied when the matching config value is zero.
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// New constructs the *http.Server for cmd/web from the http config block.
func New(cfg config.HTTP, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  secondsOr(cfg.ReadTimeoutSec, DefaultReadTimeout),
		WriteTimeout: secondsOr(cfg.WriteTimeoutSec, DefaultWriteTimeout),
		IdleTimeout:  secondsOr(cfg.IdleTimeoutSec, DefaultIdleTimeout),
		// TLSConfig may be injected by callers (e.g., autocert).
	}
}

func secondsOr(n int, fallback time.Duration) time.Duration {
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

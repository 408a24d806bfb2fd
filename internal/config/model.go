// internal/config/model.go
//
// Typed configuration model for Biztro.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                          – dotenv values,
//   • `conf/biztro.yaml`                       – primary static file,
//   • `BIZTRO_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so secrets never live in
// flat files or git history.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
	PublicHost string `koanf:"public_host"` // host used in short branded URLs

	// Server timeouts in seconds.  Zero means the server defaults apply
	// (see internal/server).  Redirect endpoints are latency-sensitive, so
	// deployments behind slow upstreams may want to tighten these.
	ReadTimeoutSec  int `koanf:"read_timeout_sec"  validate:"min=0"`
	WriteTimeoutSec int `koanf:"write_timeout_sec" validate:"min=0"`
	IdleTimeoutSec  int `koanf:"idle_timeout_sec"  validate:"min=0"`
}

//
// Database section
//

// Database holds the DSN for the Biztro schema.  The DSN may carry a
// `vault:` reference so the password portion is injected at runtime.
type Database struct {
	DSN string `koanf:"dsn" validate:"required"`
}

//
// Session section
//

// Session configures the JWT-signed login cookie.  Secret may be a
// `vault:` reference.
type Session struct {
	Secret  string `koanf:"secret" validate:"required"`
	MaxDays int    `koanf:"max_days"`
}

//
// OAuth section
//

// OAuth holds the Google sign-in credentials used by components/oauth.
type OAuth struct {
	GoogleClientID     string `koanf:"google_client_id"`
	GoogleClientSecret string `koanf:"google_client_secret"`
	GoogleRedirectURL  string `koanf:"google_redirect_url"`
}

//
// Track section
//

// Track configures click telemetry.  GeoDB is the optional path to a
// GeoLite2-City database; when empty, visits are recorded without country.
// IPSalt keys the one-way visitor IP hash; rotate it to unlink history.
type Track struct {
	GeoDB  string `koanf:"geo_db"`
	IPSalt string `koanf:"ip_salt"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or BIZTRO_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // BIZTRO_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Session  Session  `koanf:"session"`
	OAuth    OAuth    `koanf:"oauth"`
	Track    Track    `koanf:"track"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}

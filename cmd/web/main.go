// cmd/web/main.go
//
// Biztro – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load conf/biztro.yaml + BIZTRO_ env overlay, and resolve any
//     `vault:` secret references through the Vault client.
//
//  4. Open the MySQL pool with a fail-fast ping.
//
//  5. Build the runtime caches: profile cache (lazy per-slug loader with
//     idle/LRU eviction) and short-code snapshot cache.
//
//  6. Assemble the chi router: security headers, Prometheus /metrics,
//     every registered component (oauth, admin landing, collection API,
//     public bio), wrapped in ForceHTTPS when configured.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/biztro/biztro/internal/app"
	"github.com/biztro/biztro/internal/component"
	"github.com/biztro/biztro/internal/config"
	"github.com/biztro/biztro/internal/database"
	"github.com/biztro/biztro/internal/logger"
	"github.com/biztro/biztro/internal/middleware"
	"github.com/biztro/biztro/internal/profile"
	"github.com/biztro/biztro/internal/server"
	"github.com/biztro/biztro/internal/session"
	"github.com/biztro/biztro/internal/shortlink"
	"github.com/biztro/biztro/internal/theme"
	"github.com/biztro/biztro/internal/track"
	"github.com/biztro/biztro/internal/vault"

	_ "github.com/biztro/biztro/components/admin"
	_ "github.com/biztro/biztro/components/bio"
	_ "github.com/biztro/biztro/components/collection"
	_ "github.com/biztro/biztro/components/oauth"
)

const (
	serverEnvPath = "/usr/local/etc/biztro/global.env"
	shortCodeTTL  = 5 * time.Minute
)

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx := context.Background()

	//
	// ── 1.  Config + logger ─────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	if needsVault(cfg) {
		vc, err := vault.New(ctx)
		if err != nil {
			logOut.Fatalf("connect vault: %v", err)
		}
		if err := config.ResolveSecrets(ctx, cfg, vc); err != nil {
			logOut.Fatalf("resolve secrets: %v", err)
		}
	}

	//
	// ── 2.  Database ────────────────────────────────────────────────────
	//
	logOut.Info("connecting to DB …")
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalf("connect DB: %v", err)
	}
	logOut.Info("DB online")

	// Log live-profile count as an early sanity check.
	var live int
	_ = db.Get(&live, `
	    SELECT COUNT(*) FROM profile
	    WHERE suspended_at IS NULL AND deleted_at IS NULL`)
	logOut.Infof("%d live profile(s) found", live)

	//
	// ── 3.  Runtime caches + recorder ───────────────────────────────────
	//
	themes := &theme.Manager{BaseDir: cfg.Paths.Root + "/themes"}
	profiles := profile.New(db, themes, profile.IdleTTL, profile.MaxEntries)
	shortCodes := shortlink.NewCache(db, shortCodeTTL)
	tracker := track.New(db, cfg.Track.GeoDB, cfg.Track.IPSalt)

	a := &app.App{
		Cfg:        cfg,
		DB:         db,
		Log:        logOut,
		Sessions:   session.New(cfg.Session.Secret, cfg.Session.MaxDays),
		Profiles:   profiles,
		ShortCodes: shortCodes,
		Tracker:    tracker,
		Validate:   validator.New(),
	}
	defer a.Close()

	//
	// ── 4.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Handle("/metrics", promhttp.Handler())
	component.MountAll(a, r)

	var root http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		root = middleware.ForceHTTPS(root)
	}

	//
	// ── 5.  Serve ───────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP, root)
	logOut.Infof("listening on %s", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalf("server: %v", err)
	}
}

// needsVault reports whether any config value carries a vault: reference.
func needsVault(cfg *config.Config) bool {
	for _, v := range []string{cfg.Database.DSN, cfg.Session.Secret, cfg.OAuth.GoogleClientSecret} {
		if strings.HasPrefix(v, "vault:") {
			return true
		}
	}
	return false
}

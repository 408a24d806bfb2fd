// internal/app/app.go
//
// Application aggregate.
//
// Context
// -------
// App groups all process-wide runtime assets the components need to serve
// requests: config, DB pool, session manager, profile cache, short-code
// cache, click recorder, and a shared payload validator.  It is built once
// in cmd/web and treated as immutable afterwards; components must not write
// to it.
package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/biztro/biztro/internal/config"
	"github.com/biztro/biztro/internal/profile"
	"github.com/biztro/biztro/internal/session"
	"github.com/biztro/biztro/internal/shortlink"
	"github.com/biztro/biztro/internal/track"
)

// App is passed to every component when its routes are built.
type App struct {
	Cfg        *config.Config
	DB         *sqlx.DB
	Log        *zap.SugaredLogger
	Sessions   *session.Manager
	Profiles   *profile.Cache
	ShortCodes *shortlink.Cache
	Tracker    *track.Recorder
	Validate   *validator.Validate
}

// Close releases pooled resources.  Called from cmd/web on shutdown.
func (a *App) Close() error { return a.DB.Close() }

// internal/track/recorder.go
//
// Best-effort click telemetry.
//
// Context
// -------
// Every redirect (/r/{id}, /s/{code}) and profile view wants a visit row,
// but navigation must never wait on—or fail because of—telemetry.  Record
// therefore returns immediately and does its work in a goroutine: parse the
// UA, hash the client IP, resolve a country when a GeoLite2 database is
// configured, insert the row, and bump the click counter.  Any error along
// the way is logged and swallowed; the counters in internal/metrics keep
// the drop rate observable.
package track

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/biztro/biztro/internal/metrics"
	"github.com/biztro/biztro/internal/record"
)

// Visit mirrors one row in the persistent `visit` table.  The IP is stored
// as a salted hash; raw addresses never reach the database.
type Visit struct {
	ID        uint64    `db:"id"`
	RecordID  uint64    `db:"record_id"`
	Referer   string    `db:"referer"`
	Device    string    `db:"device"`
	Browser   string    `db:"browser"`
	OS        string    `db:"os"`
	Country   string    `db:"country"`
	IsBot     bool      `db:"is_bot"`
	IPHash    string    `db:"ip_hash"`
	CreatedAt time.Time `db:"created_at"`
}

// Recorder owns the telemetry write path.  geo may be nil; visits then
// record an empty country.
type Recorder struct {
	db     *sqlx.DB
	geo    *geoip2.Reader
	ipSalt string

	// insertTimeout bounds the background write so a stalled DB cannot
	// accumulate goroutines without limit.
	insertTimeout time.Duration
}

// New constructs a Recorder.  geoDBPath may be empty.
func New(db *sqlx.DB, geoDBPath, ipSalt string) *Recorder {
	r := &Recorder{db: db, ipSalt: ipSalt, insertTimeout: 5 * time.Second}
	if geoDBPath != "" {
		geo, err := geoip2.Open(geoDBPath)
		if err != nil {
			zap.S().Warnw("geo database unavailable, visits will have no country",
				"path", geoDBPath, "err", err)
		} else {
			r.geo = geo
		}
	}
	return r
}

// Record captures a visit for recordID and returns immediately.  The caller
// proceeds with its redirect or render regardless of the outcome here.
func (rec *Recorder) Record(r *http.Request, recordID uint64) {
	ua := ParseUA(r.UserAgent())
	referer := r.Referer()
	ip := clientIP(r)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), rec.insertTimeout)
		defer cancel()

		v := Visit{
			RecordID: recordID,
			Referer:  referer,
			Device:   ua.Device,
			Browser:  ua.Browser,
			OS:       ua.OS,
			Country:  rec.country(ip),
			IsBot:    ua.IsBot,
			IPHash:   rec.hashIP(ip),
		}

		const q = `
            INSERT INTO visit
                   (record_id, referer, device, browser, os, country, is_bot, ip_hash)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := rec.db.ExecContext(ctx, q,
			v.RecordID, v.Referer, v.Device, v.Browser, v.OS, v.Country, v.IsBot, v.IPHash); err != nil {
			metrics.ClickTrackErrorsTotal.Inc()
			zap.S().Warnw("visit insert dropped", "record", recordID, "err", err)
			return
		}

		if err := record.IncrementClicks(ctx, rec.db, recordID); err != nil {
			metrics.ClickTrackErrorsTotal.Inc()
			zap.S().Warnw("click increment dropped", "record", recordID, "err", err)
			return
		}
		metrics.ClickTrackTotal.Inc()
	}()
}

// country resolves an ISO country code, or "" when geo is unavailable.
func (rec *Recorder) country(ip net.IP) string {
	if rec.geo == nil || ip == nil {
		return ""
	}
	c, err := rec.geo.Country(ip)
	if err != nil || c == nil {
		return ""
	}
	return c.Country.IsoCode
}

// hashIP returns a salted SHA-256 hex digest, or "" for unknown addresses.
func (rec *Recorder) hashIP(ip net.IP) string {
	if ip == nil {
		return ""
	}
	sum := sha256.Sum256([]byte(rec.ipSalt + ip.String()))
	return hex.EncodeToString(sum[:16])
}

// clientIP extracts the remote address, preferring the first hop of
// X-Forwarded-For when a proxy terminated the connection.
func clientIP(r *http.Request) net.IP {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return net.ParseIP(r.RemoteAddr)
	}
	return net.ParseIP(host)
}

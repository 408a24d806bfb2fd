// internal/record/model.go
//
// Ordered collection records.
//
// Context
// -------
// One table backs the three collections a profile owner manages from the
// dashboard: bio links, QR payloads, and short branded links.  The shapes
// are identical—title, target, explicit position, active flag, click
// counter—so a single `kind` discriminator keeps the repository and the
// dashboard API generic.
//
// Position is zero-based and contiguous per (profile, kind): after any
// successful write the positions of a collection form a permutation of
// [0, n-1].  Delete closes the gap it leaves, and Reorder replaces the whole
// permutation atomically; partial orders never persist.
//
// Clicks is owned by the redirect path and only ever increments; dashboard
// writes must not touch it.
package record

import "time"

//
// Kind discriminator
//

const (
	KindLink  = "link"
	KindQR    = "qr"
	KindShort = "short"
)

// KnownKind reports whether k names one of the three collections.
func KnownKind(k string) bool {
	return k == KindLink || k == KindQR || k == KindShort
}

//
// Row model
//

// Record mirrors one row in the persistent `record` table.  Code is only
// populated for KindShort rows (the branded short-URL path segment).
type Record struct {
	ID        uint64    `db:"id"         json:"id"`
	ProfileID uint64    `db:"profile_id" json:"-"`
	Kind      string    `db:"kind"       json:"-"`
	Title     string    `db:"title"      json:"title"`
	Target    string    `db:"target"     json:"target"`
	Icon      string    `db:"icon"       json:"icon,omitempty"`
	Code      string    `db:"code"       json:"code,omitempty"`
	Position  int       `db:"position"   json:"order"`
	IsActive  bool      `db:"is_active"  json:"isActive"`
	Clicks    int64     `db:"clicks"     json:"clicks"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Patch carries a partial update.  Nil fields are left untouched.
type Patch struct {
	Title    *string
	Target   *string
	Icon     *string
	IsActive *bool
}

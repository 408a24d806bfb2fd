// internal/profile/entry.go
//
// Cache entry and live-profile aggregate.
//
// Context
// -------
// A live Profile aggregates everything the public renderer needs to serve
// one page: the `profile` row, the active records in position order, and
// the parsed theme template set.  The cache stores a pointer to Profile
// inside `entry`, along with a `lastSeen` UnixNano timestamp used by the
// evictor for idle and LRU eviction.
//
// Notes
// -----
//   - Handlers must treat Profile as immutable after load; dashboard writes
//     go to the DB and then Invalidate the cached copy.
package profile

import (
	"html/template"

	"github.com/biztro/biztro/internal/record"
)

//
// Cache entry
//

type entry struct {
	profile  *Profile
	lastSeen int64 // UnixNano
}

//
// Profile aggregate
//

// Profile groups all per-page runtime assets needed by the public renderer.
type Profile struct {
	Meta     Record             // Row from `profile`
	Records  []record.Record    // Active bio links in position order
	Renderer *template.Template // Parsed theme templates
}

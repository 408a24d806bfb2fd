// internal/icon/icon.go
//
// Title → icon variant lookup.
//
// Context
// -------
// The public profile page decorates each link with a small brand icon when
// the title obviously names a known service.  The match is a pure function
// of the lower-cased title: the table is scanned in declared order and the
// first keyword hit wins, so more specific keywords must sit above generic
// ones (e.g., "instagram" before "gram").  Unmatched titles fall back to a
// neutral globe.
package icon

import "strings"

// DefaultVariant is used when no keyword matches.
const DefaultVariant = "globe"

// rule pairs a lowercase keyword with its icon variant tag.
type rule struct {
	keyword string
	variant string
}

// Order matters: first match wins.
var rules = []rule{
	{"instagram", "instagram"},
	{"facebook", "facebook"},
	{"youtube", "youtube"},
	{"tiktok", "tiktok"},
	{"twitter", "twitter"},
	{"linkedin", "linkedin"},
	{"whatsapp", "whatsapp"},
	{"telegram", "telegram"},
	{"github", "github"},
	{"spotify", "spotify"},
	{"mail", "mail"},
	{"email", "mail"},
	{"phone", "phone"},
	{"call", "phone"},
	{"menu", "menu"},
	{"shop", "cart"},
	{"store", "cart"},
	{"website", "globe"},
	{"web", "globe"},
}

// Variant returns the icon tag for a record title.
func Variant(title string) string {
	t := strings.ToLower(title)
	for _, r := range rules {
		if strings.Contains(t, r.keyword) {
			return r.variant
		}
	}
	return DefaultVariant
}

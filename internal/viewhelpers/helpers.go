// internal/viewhelpers/helpers.go
//
// Template helpers shared by every theme.  Attached by the theme manager
// before parsing, so every template can call:
//
//	{{ icon .Title }}            – brand icon variant for a link title
//	{{ asset "css/main.css" }}   – theme-relative asset URL
//	{{ clicks .Clicks }}         – compact click count ("1.2k")
package viewhelpers

import (
	"fmt"
	"html/template"

	"github.com/biztro/biztro/internal/icon"
)

// FuncMap returns the shared helper set.  asset resolves theme-relative
// paths; the manager swaps in the real prefix once the theme root is known.
func FuncMap(asset func(string) string) template.FuncMap {
	return template.FuncMap{
		"icon":   icon.Variant,
		"asset":  asset,
		"clicks": formatClicks,
	}
}

// formatClicks compacts large counters for display: 950 → "950",
// 1200 → "1.2k", 3400000 → "3.4M".
func formatClicks(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1fM", float64(n)/1_000_000))
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1fk", float64(n)/1_000))
	default:
		return fmt.Sprintf("%d", n)
	}
}

// trimZero turns "2.0k" into "2k".
func trimZero(s string) string {
	if len(s) >= 3 && s[len(s)-3] == '.' && s[len(s)-2] == '0' {
		return s[:len(s)-3] + s[len(s)-1:]
	}
	return s
}

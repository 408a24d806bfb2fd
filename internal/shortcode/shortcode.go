// internal/shortcode/shortcode.go
//
// Slug and short-code helpers.
//
// • MakeSlug(title) ─ converts arbitrary text into a URL-safe slug restricted
//   to ASCII a-z, 0-9 and “-”.  Used for profile slugs and custom branded
//   codes typed by the user.
// • Random(n) ─ generates an n-character URL-safe random code for short
//   links created without a custom code.
//
// Rules (MakeSlug)
// ----------------
// 1. Lower-case everything.
// 2. Convert any run of non-[a-z0-9] characters to one “-”.  That strips
//    spaces, punctuation, emoji, and non-ASCII.
// 3. Collapse consecutive “-” to a single “-”.
// 4. Trim leading / trailing “-”.
// 5. If the result is empty, return "item".
//
// Notes
// -----
// • No Unicode transliteration; slugs are English-only for now.
// • Slugs are max 100 runes; callers may truncate earlier if they prefer.

package shortcode

import (
	"crypto/rand"
	"strings"
)

// MakeSlug converts title → lower-kebab ASCII.
func MakeSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			// any non-ASCII or punctuation becomes a single dash
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "item"
	}
	if len(slug) > 100 {
		slug = slug[:100]
		// trim trailing dash if the cut landed on one
		slug = strings.TrimRightFunc(slug, func(r rune) bool { return r == '-' })
	}
	return slug
}

// alphabet avoids look-alikes (0/O, 1/l/I) so codes survive being read
// aloud or hand-copied from printed material.
const alphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// Random returns an n-character code drawn from alphabet.  n < 4 is bumped
// to 4; shorter codes collide too readily.
func Random(n int) string {
	if n < 4 {
		n = 4
	}
	buf := make([]byte, n)
	_, _ = rand.Read(buf) // crypto/rand.Read never fails on supported platforms
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}

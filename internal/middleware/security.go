// internal/middleware/security.go
//
// Security-header middleware.
//
// Context
// -------
// Biztro serves three outward surfaces and the policy below is written
// against them, not a generic default:
//
//   - public profile pages – markup from html/template, css and fonts from
//     /themes/<name>/assets, no scripts of our own;
//   - dashboard API under /api – JSON only;
//   - redirects (/r, /s, /login, /oauth/callback) – bodiless 3xx.
//
// So: scripts are forbidden outright, styles and fonts come only from our
// own theme assets, images allow data: URIs because QR previews are
// rendered inline by the dashboard client, and form posts are restricted
// to the site itself.  Profile pages must never be framed (link-in-bio
// pages are a classic clickjacking target).
//
// Headers are set before next.ServeHTTP runs, so a handler that needs a
// different value for one route simply overwrites it.
//
//------------------------------------------------------------------------------

package middleware

import "net/http"

// securityHeaders maps header name → Biztro-wide value.
var securityHeaders = map[string]string{
	"Strict-Transport-Security": "max-age=63072000; includeSubDomains; preload",
	"Content-Security-Policy": "default-src 'none'; style-src 'self'; font-src 'self'; " +
		"img-src 'self' data:; connect-src 'self'; form-action 'self'; " +
		"base-uri 'none'; frame-ancestors 'none'",
	"X-Frame-Options":        "DENY",
	"X-Content-Type-Options": "nosniff",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"Permissions-Policy":     "geolocation=(), microphone=(), camera=()",
}

// Security sets the Biztro security headers on every response.
func Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for name, value := range securityHeaders {
			if h.Get(name) == "" {
				h.Set(name, value)
			}
		}
		next.ServeHTTP(w, r)
	})
}

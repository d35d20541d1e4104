package middleware

import "net/http"

// SecurityHeaders hardens every response. The API serves JSON only, so the
// CSP forbids loading anything and frames are denied outright. HSTS is added
// only when the server actually terminates TLS, otherwise the header would
// lock browsers out of a plain-HTTP dev setup.
func SecurityHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			if hsts {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

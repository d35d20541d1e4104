package middleware

import "net/http"

// DefaultMaxBodyBytes caps request bodies at 1 MiB. Asset payloads are a few
// hundred bytes of JSON; anything near the cap is not a legitimate request.
const DefaultMaxBodyBytes = 1 << 20

// MaxBytes wraps the request body in a MaxBytesReader. Decoding an oversized
// body then fails and the client gets 413. Mounted on the POST/PUT routes.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// Login and register are the brute-force surface, so they get a token bucket
// per client IP. 10 requests a minute with a burst of 5 leaves room for a
// mistyped password without letting anyone grind through a wordlist.
const (
	authRequestsPerMinute = 10
	authBurst             = 5
)

// IPRateLimiter tracks one token bucket per client IP. Buckets are created
// lazily on first request from an IP.
type IPRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// AuthRateLimiter returns the limiter mounted in front of /v1/auth.
func AuthRateLimiter() *IPRateLimiter {
	return &IPRateLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(authRequestsPerMinute) / 60,
		burst:   authBurst,
	}
}

func (l *IPRateLimiter) bucket(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[ip]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[ip] = b
	}
	return b
}

// clientIP strips the port from RemoteAddr. The router mounts chi's RealIP
// ahead of this middleware, so RemoteAddr already reflects X-Forwarded-For
// when the API sits behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware rejects requests over the per-IP rate with 429.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.bucket(clientIP(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"too many requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthRateLimiter_BurstThenThrottle(t *testing.T) {
	limiter := AuthRateLimiter()
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	hit := func(addr string) int {
		req := httptest.NewRequest("POST", "/v1/auth/login", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < authBurst; i++ {
		if got := hit("10.0.0.1:50000"); got != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, got)
		}
	}
	if got := hit("10.0.0.1:50000"); got != http.StatusTooManyRequests {
		t.Fatalf("over burst: got %d, want 429", got)
	}

	// A different client IP has its own bucket.
	if got := hit("10.0.0.2:50000"); got != http.StatusOK {
		t.Fatalf("other ip: got %d, want 200", got)
	}
}

func TestClientIP_StripsPort(t *testing.T) {
	req := httptest.NewRequest("POST", "/v1/auth/login", nil)
	req.RemoteAddr = "192.0.2.7:61234"
	if got := clientIP(req); got != "192.0.2.7" {
		t.Errorf("clientIP = %q, want 192.0.2.7", got)
	}

	req.RemoteAddr = "192.0.2.7"
	if got := clientIP(req); got != "192.0.2.7" {
		t.Errorf("clientIP without port = %q, want 192.0.2.7", got)
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// fakeClock lets tests move the limiter's notion of time.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiterAllow(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Second)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.allow("test-ip"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if ok, wait := rl.allow("test-ip"); ok || wait <= 0 || wait > time.Second {
		t.Errorf("4th request: ok=%v wait=%v", ok, wait)
	}
	if ok, _ := rl.allow("other-ip"); !ok {
		t.Error("different IP should be allowed")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl, clock := newTestLimiter(t, 2, time.Minute)

	rl.allow("test-ip")
	clock.advance(20 * time.Second)
	rl.allow("test-ip")

	ok, wait := rl.allow("test-ip")
	if ok {
		t.Fatal("should be rate-limited")
	}
	if wait != 40*time.Second {
		t.Errorf("wait = %v, want 40s until the first request expires", wait)
	}

	clock.advance(41 * time.Second)
	if ok, _ := rl.allow("test-ip"); !ok {
		t.Error("should be allowed once the oldest request left the window")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/designs", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 2; i++ {
		if rr := send(); rr.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want 200", i+1, rr.Code)
		}
	}

	rr := send()
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want 429", rr.Code)
	}
	if got := rr.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rr.Body.String(), `"error"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{name: "x-forwarded-for single", xff: "10.0.0.1", remoteAddr: "192.168.1.1:1234", want: "10.0.0.1"},
		{name: "x-forwarded-for multiple", xff: "10.0.0.1, 172.16.0.1, 192.168.1.1", remoteAddr: "192.168.1.1:1234", want: "10.0.0.1"},
		{name: "x-real-ip", xri: "10.0.0.2", remoteAddr: "192.168.1.1:1234", want: "10.0.0.2"},
		{name: "remote addr only", remoteAddr: "192.168.1.1:1234", want: "192.168.1.1"},
		{name: "remote addr no port", remoteAddr: "192.168.1.1", want: "192.168.1.1"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl, clock := newTestLimiter(t, 10, 200*time.Millisecond)

	rl.allow("ip-old")
	rl.allow("ip-fresh")
	clock.advance(250 * time.Millisecond)
	rl.allow("ip-fresh")

	rl.cleanup()

	rl.mu.RLock()
	_, oldExists := rl.clients["ip-old"]
	_, freshExists := rl.clients["ip-fresh"]
	rl.mu.RUnlock()

	if oldExists {
		t.Error("ip-old should have been cleaned up (all timestamps expired)")
	}
	if !freshExists {
		t.Error("ip-fresh should still exist (has recent timestamp)")
	}
}

func TestRateLimiterStopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}

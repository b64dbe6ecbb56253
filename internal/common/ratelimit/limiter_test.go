package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowPerKey(t *testing.T) {
	l := NewPerMinute(1, 2)
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	for i := 0; i < 2; i++ {
		if !l.Allow("user-1") {
			t.Fatalf("Expected request %d inside the burst to pass", i+1)
		}
	}
	if l.Allow("user-1") {
		t.Error("Expected the third request to be limited")
	}
	if !l.Allow("user-2") {
		t.Error("Expected another key to have its own bucket")
	}
	if !l.Allow("") {
		t.Error("Expected an empty key to be unlimited")
	}

	fixed = fixed.Add(time.Minute)
	if !l.Allow("user-1") {
		t.Error("Expected a token to be refilled after a minute")
	}
}

func TestDisabledLimiter(t *testing.T) {
	l := NewPerMinute(0, 1)
	for i := 0; i < 100; i++ {
		if !l.Allow("user") {
			t.Fatalf("Expected unlimited limiter to allow request %d", i+1)
		}
	}
}

func TestLimitMiddleware(t *testing.T) {
	l := NewPerMinute(1, 1)
	handler := l.Limit(func(r *http.Request) string {
		return r.Header.Get("X-User")
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		user string
		want int
	}{
		{"a", http.StatusNoContent},
		{"a", http.StatusTooManyRequests},
		{"b", http.StatusNoContent},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set("X-User", tt.user)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("user %s: expected status %d, got %d", tt.user, tt.want, rec.Code)
		}
	}
}

func TestSweep(t *testing.T) {
	l := NewPerMinute(10, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("old")
	now = now.Add(5 * time.Minute)
	l.Allow("fresh")
	now = now.Add(6 * time.Minute)

	if removed := l.Sweep(); removed != 1 {
		t.Errorf("Expected 1 idle key removed, got %d", removed)
	}
	if _, ok := l.visitors["fresh"]; !ok {
		t.Error("Expected recently used key to survive")
	}
}

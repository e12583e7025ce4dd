package middleware

import (
	"testing"
	"time"
)

func newTestLimiter(limit int, window time.Duration, now *time.Time) *InMemoryRateLimiter {
	return &InMemoryRateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      func() time.Time { return *now },
	}
}

func TestAllowWithinLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(3, time.Minute, &now)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d rejected inside the limit", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("fourth request allowed over limit 3")
	}
}

func TestAllowResetsAfterWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(1, 5*time.Minute, &now)

	if !l.Allow("a@example.com") {
		t.Fatal("first request rejected")
	}
	if l.Allow("a@example.com") {
		t.Error("second request allowed inside the window")
	}

	now = now.Add(5*time.Minute + time.Second)
	if !l.Allow("a@example.com") {
		t.Error("request rejected after the window passed")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(1, time.Minute, &now)

	if !l.Allow("a@example.com") {
		t.Fatal("first key rejected")
	}
	if !l.Allow("b@example.com") {
		t.Error("second key throttled by the first")
	}
}

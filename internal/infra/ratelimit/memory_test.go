package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	now := time.Now()
	l := NewMemoryLimiter()
	l.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, "caller", 3, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if d.Remaining != 3-(i+1) {
			t.Fatalf("request %d: expected remaining %d, got %d", i+1, 3-(i+1), d.Remaining)
		}
	}

	d, err := l.Allow(ctx, "caller", 3, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Allowed {
		t.Fatal("fourth request should be rejected")
	}

	// A different caller has its own window.
	d, _ = l.Allow(ctx, "other", 3, time.Minute)
	if !d.Allowed {
		t.Fatal("different key should not share the window")
	}

	// Window rollover resets the count.
	now = now.Add(2 * time.Minute)
	d, _ = l.Allow(ctx, "caller", 3, time.Minute)
	if !d.Allowed {
		t.Fatal("request after window rollover should be allowed")
	}
	if d.Remaining != 2 {
		t.Fatalf("expected remaining 2 after rollover, got %d", d.Remaining)
	}
}

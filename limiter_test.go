package ogcard

import (
	"testing"
	"time"
)

func TestRenderLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewRenderLimiter(2, 200*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first render to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second render to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third render to be blocked")
	}
}

func TestRenderLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewRenderLimiter(1, 150*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first render to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second render to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected render after window to be allowed")
	}
}

func TestRenderLimiterIsPerIP(t *testing.T) {
	limiter := NewRenderLimiter(1, 200*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

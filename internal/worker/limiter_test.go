package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(1, 2)

	// Burst of 2 allowed immediately, third denied.
	if !l.Allow("openai:embed") {
		t.Error("first request should be allowed")
	}
	if !l.Allow("openai:embed") {
		t.Error("second request should be allowed")
	}
	if l.Allow("openai:embed") {
		t.Error("third request should exceed the burst")
	}
}

func TestLimiterIndependentOperations(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("openai:embed") {
		t.Error("embed should be allowed")
	}
	// A different operation has its own bucket.
	if !l.Allow("openai:classify") {
		t.Error("classify should not share embed's bucket")
	}
	if l.Allow("openai:embed") {
		t.Error("embed bucket should be exhausted")
	}
}

func TestLimiterWait(t *testing.T) {
	l := NewLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "ollama:extract"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// 100 rps with burst 1: two refills needed, roughly 20ms.
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("waited too long: %v", elapsed)
	}
}

func TestLimiterWaitCancelled(t *testing.T) {
	l := NewLimiter(0.001, 1)
	ctx, cancel := context.WithCancel(context.Background())

	// Exhaust the burst, then cancel mid-wait.
	_ = l.Allow("slow:op")
	cancel()

	if err := l.Wait(ctx, "slow:op"); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestLimiterSetRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetRate("bulk:op", 1000, 100)

	allowed := 0
	for i := 0; i < 50; i++ {
		if l.Allow("bulk:op") {
			allowed++
		}
	}
	if allowed != 50 {
		t.Errorf("custom burst should admit all 50, got %d", allowed)
	}
}

func TestLimiterDefaultBurst(t *testing.T) {
	l := NewLimiter(1, 0)
	if l.defaultBurst != 5 {
		t.Errorf("default burst = %d, want 5", l.defaultBurst)
	}
}

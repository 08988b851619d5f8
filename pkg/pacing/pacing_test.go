package pacing

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucket_MinimumSpacing(t *testing.T) {
	const interval = 30 * time.Millisecond
	p := NewTokenBucket(interval)
	ctx := context.Background()

	// First call should not block noticeably.
	start := time.Now()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > interval/2 {
		t.Errorf("first wait took %v, expected immediate", elapsed)
	}

	// Second call must be spaced by at least the interval.
	second := time.Now()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(second); elapsed < interval-5*time.Millisecond {
		t.Errorf("second wait took %v, expected at least %v", elapsed, interval)
	}
}

func TestTokenBucket_ZeroIntervalDisablesPacing(t *testing.T) {
	p := NewTokenBucket(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("10 unpaced waits took %v", elapsed)
	}
}

func TestTokenBucket_ContextCancelled(t *testing.T) {
	p := NewTokenBucket(10 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	_ = p.Wait(ctx) // consume the initial token
	cancel()

	if err := p.Wait(ctx); err == nil {
		t.Error("expected error after context cancellation")
	}
}

func TestFixedDelay_MinimumSpacing(t *testing.T) {
	const interval = 30 * time.Millisecond
	p := NewFixedDelay(interval)
	ctx := context.Background()

	if err := p.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := time.Now()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(second); elapsed < interval-5*time.Millisecond {
		t.Errorf("second wait took %v, expected at least %v", elapsed, interval)
	}
}

func TestFixedDelay_ContextCancelled(t *testing.T) {
	p := NewFixedDelay(10 * time.Second)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Wait(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNone_PassesThrough(t *testing.T) {
	var p None
	if err := p.Wait(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

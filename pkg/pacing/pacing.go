// Package pacing provides request pacing policies for paginated calls to
// rate-limited remote APIs. A policy guarantees a minimum spacing between
// consecutive requests; which strategy enforces the spacing is an
// implementation detail.
package pacing

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Policy blocks until the next request is allowed to proceed.
// Implementations must preserve the minimum-interval contract: two calls
// that both return nil are separated by at least the configured interval.
type Policy interface {
	Wait(ctx context.Context) error
}

// TokenBucket paces requests with a token bucket of burst 1, refilled once
// per interval. The first call proceeds immediately.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket creates a token-bucket policy with the given minimum
// interval between requests. A non-positive interval disables pacing.
func NewTokenBucket(interval time.Duration) *TokenBucket {
	if interval <= 0 {
		return &TokenBucket{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &TokenBucket{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until a token is available or the context is cancelled.
func (t *TokenBucket) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// FixedDelay paces requests by sleeping out the remainder of the interval
// since the previous request. It mirrors a plain sleep between page fetches
// while staying cancellable.
type FixedDelay struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewFixedDelay creates a fixed-delay policy with the given minimum interval.
func NewFixedDelay(interval time.Duration) *FixedDelay {
	return &FixedDelay{interval: interval}
}

// Wait sleeps until at least the interval has passed since the previous
// successful Wait. The first call returns immediately.
func (f *FixedDelay) Wait(ctx context.Context) error {
	f.mu.Lock()
	var wait time.Duration
	if !f.last.IsZero() {
		elapsed := time.Since(f.last)
		if elapsed < f.interval {
			wait = f.interval - elapsed
		}
	}
	f.mu.Unlock()

	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	f.last = time.Now()
	f.mu.Unlock()
	return nil
}

// None is a no-op policy for tests and unpaced callers.
type None struct{}

// Wait returns immediately unless the context is already cancelled.
func (None) Wait(ctx context.Context) error {
	return ctx.Err()
}

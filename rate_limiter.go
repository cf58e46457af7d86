// rate_limiter.go
// ----------------
// This file defines the RateLimiter type: a blanket client-side throttle.
// Unlike a token bucket it is not adaptive — every outbound attempt pays the
// same fixed delay, whether or not the provider is under pressure, and the
// delay is additive with any retry backoff. This conservative throttle is
// what keeps the bridge clear of provider bans.
package nftbridge

import (
	"context"
	"time"
)

type RateLimiter struct {
	delay time.Duration
}

func NewRateLimiter(delay time.Duration) *RateLimiter {
	return &RateLimiter{delay: delay}
}

// Wait suspends for the fixed throttle delay. It returns early with ctx.Err()
// if the context is cancelled first.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return sleepCtx(ctx, r.delay)
}

// Delay returns the configured throttle duration.
func (r *RateLimiter) Delay() time.Duration {
	return r.delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

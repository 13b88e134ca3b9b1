package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter controls the frequency of requests to the catalog API.
type RateLimiter struct {
	limiter *rate.Limiter

	// additional backoff after a 429 with Retry-After
	retryAfterUntil time.Time
	mu              sync.Mutex
}

// NewRateLimiter creates a rate limiter.
// rps - requests per second, burst - allowed burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// DefaultRateLimiter returns a limiter that allows a full search fan-out in one burst.
func DefaultRateLimiter() *RateLimiter {
	return NewRateLimiter(10.0, MaxSearchResults)
}

// Wait blocks until the next request is allowed.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	waitUntil := r.retryAfterUntil
	r.mu.Unlock()

	// honour an upstream Retry-After first
	if time.Now().Before(waitUntil) {
		select {
		case <-time.After(time.Until(waitUntil)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return r.limiter.Wait(ctx)
}

// SetRetryAfter pauses all requests for d.
func (r *RateLimiter) SetRetryAfter(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until := time.Now().Add(d)
	if until.After(r.retryAfterUntil) {
		r.retryAfterUntil = until
	}
}

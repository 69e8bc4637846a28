// Package ratelimit provides the optional client-side request limiter.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles dispatches for one exchange client. Safe for
// concurrent use.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
}

// New creates a Limiter allowing the given number of requests per period,
// with a burst equal to the request count.
func New(requests int, period time.Duration) *Limiter {
	rps := float64(requests) / period.Seconds()
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), requests),
	}
}

// Wait blocks until a request is permitted or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	lim := l.limiter
	l.mu.Unlock()
	return lim.Wait(ctx)
}

// Allow reports whether a request is permitted right now.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	lim := l.limiter
	l.mu.Unlock()
	return lim.Allow()
}

// SetLimit replaces the rate, keeping already-acquired tokens.
func (l *Limiter) SetLimit(requests int, period time.Duration) {
	rps := float64(requests) / period.Seconds()
	l.mu.Lock()
	l.limiter.SetLimit(rate.Limit(rps))
	l.limiter.SetBurst(requests)
	l.mu.Unlock()
}

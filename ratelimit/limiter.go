// Package ratelimit provides a token-bucket rate limiter backed by
// golang.org/x/time/rate, used to gate how often cache computations may
// start when a key namespace is backed by a rate-limited upstream.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket limiter that decides whether a
// computation may start.
type Limiter struct {
	lim *rate.Limiter
}

// NewLimiter creates a Limiter that permits rps computation starts per
// second with the given burst size.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{lim: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Allow reports whether a single computation may start immediately.
func (l *Limiter) Allow() bool {
	return l.lim.Allow()
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

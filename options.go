package gonutcache

import (
	"time"

	"github.com/Keksclan/goNutCache/breaker"
	"github.com/Keksclan/goNutCache/policy"
	"github.com/Keksclan/goNutCache/ratelimit"
	"github.com/Keksclan/goNutCache/scheduler"
)

// config holds the internal configuration assembled via functional options.
type config struct {
	sched    scheduler.Scheduler
	ttl      time.Duration
	observer Observer
	brk      *breaker.Breaker
	limiter  *ratelimit.Limiter
	policies *policy.Resolver
}

func defaultConfig() config {
	return config{sched: scheduler.Async{}}
}

// Option configures a Cache.
type Option func(*config)

// WithScheduler sets the scheduler that executes computations. The
// default runs every computation on its own goroutine; use
// [scheduler.NewPool] to bound concurrency.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(c *config) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithTTL sets the default TTL applied when committing computed values
// to the store. Zero (the default) defers to the store's own default.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithObserver attaches an Observer that receives hit, miss, dedup, and
// failure events for the lifetime of the cache.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// WithBreaker guards computations with a circuit breaker. While the
// breaker is open, misses fail fast with [ErrComputeRejected] instead of
// running the computation; hits are unaffected.
func WithBreaker(b *breaker.Breaker) Option {
	return func(c *config) {
		c.brk = b
	}
}

// WithComputeLimit rate-limits how often computations may start. The
// initiator waits for a token before executing; waiters and hits are
// unaffected.
func WithComputeLimit(l *ratelimit.Limiter) Option {
	return func(c *config) {
		c.limiter = l
	}
}

// WithPolicies attaches a per-key-namespace policy resolver. Policies
// are matched against the key's string form and can override the TTL or
// suppress storage for matched keys.
func WithPolicies(r *policy.Resolver) Option {
	return func(c *config) {
		c.policies = r
	}
}

package gonutcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Keksclan/goNutCache/flight"
	"github.com/Keksclan/goNutCache/store"
)

var (
	// ErrNilComputation is returned when a nil computation is passed to
	// GetOrCompute or GetOrTryCompute. The rejection happens before any
	// store or registry access.
	ErrNilComputation = errors.New("gonutcache: nil computation")

	// ErrComputationAborted wraps the recovered value of a computation
	// that panicked. Every waiter attached to the aborted computation
	// receives it; nothing is stored.
	ErrComputationAborted = errors.New("gonutcache: computation aborted")

	// ErrComputeRejected is returned when the configured circuit breaker
	// is open and a miss would require running a computation.
	ErrComputeRejected = errors.New("gonutcache: computation rejected by open circuit breaker")
)

// Cache is a concurrent compute-if-absent cache over a [store.Store].
// Concurrent misses for the same key share a single computation: the
// first caller (the initiator) submits it to the scheduler, every other
// caller waits on the same in-flight entry, and all of them receive the
// same outcome.
type Cache[K comparable, V any] struct {
	store   store.Store[K, V]
	flights *flight.Registry[K, V]
	cfg     config
}

// New creates a Cache over st. The zero configuration runs computations
// on dedicated goroutines and stores values with the store's default TTL.
func New[K comparable, V any](st store.Store[K, V], opts ...Option) *Cache[K, V] {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Cache[K, V]{
		store:   st,
		flights: flight.NewRegistry[K, V](),
		cfg:     cfg,
	}
}

// Get retrieves the value for key from the store. The boolean indicates
// a hit. No computation is ever invoked.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	return c.store.Lookup(ctx, key)
}

// Set stores val under key, bypassing any in-flight computation for the
// key. Keys matched by a NoStore policy are suppressed: Set writes
// nothing and returns nil.
func (c *Cache[K, V]) Set(ctx context.Context, key K, val V) error {
	ttl, noStore := c.policyFor(key)
	if noStore {
		return nil
	}
	return c.store.Insert(ctx, key, val, ttl)
}

// Delete removes the entry for key from the store.
func (c *Cache[K, V]) Delete(ctx context.Context, key K) error {
	return c.store.Remove(ctx, key)
}

// InFlight returns the number of computations currently outstanding.
func (c *Cache[K, V]) InFlight() int {
	return c.flights.Len()
}

// GetOrCompute returns the value for key, computing it with fn if absent.
// fn is infallible; the returned error covers only caller cancellation
// while waiting, an open circuit breaker, and abnormal termination of
// the computation.
//
// Concurrent callers for the same absent key share one execution of fn;
// the losing callers' fn arguments are discarded unused.
func (c *Cache[K, V]) GetOrCompute(ctx context.Context, key K, fn Func[V]) (V, error) {
	if fn == nil {
		var zero V
		return zero, ErrNilComputation
	}
	return c.getOrCompute(ctx, key, func(ctx context.Context) (V, error) {
		return fn(ctx), nil
	})
}

// GetOrTryCompute returns the value for key, computing it with fn if
// absent. If fn fails, the error is propagated verbatim to every caller
// attached to the computation and nothing is stored, so a later call
// starts a fresh attempt. No retry is performed here.
func (c *Cache[K, V]) GetOrTryCompute(ctx context.Context, key K, fn Loader[V]) (V, error) {
	if fn == nil {
		var zero V
		return zero, ErrNilComputation
	}
	return c.getOrCompute(ctx, key, fn)
}

// getOrCompute is the single coordinator behind both public entry
// points. The sequencing on success is fixed: store insert, then
// registry removal, then waiter release. A waiter released after the
// insert can therefore never re-trigger a duplicate miss for the key.
func (c *Cache[K, V]) getOrCompute(ctx context.Context, key K, fn Loader[V]) (V, error) {
	if v, ok, err := c.store.Lookup(ctx, key); err == nil && ok {
		c.emit(EventHit, key)
		return v, nil
	}

	f, won := c.flights.Begin(key)
	if !won {
		c.emit(EventDedup, key)
		return f.Wait(ctx)
	}
	c.emit(EventMiss, key)

	if c.cfg.brk != nil && !c.cfg.brk.Allow() {
		c.emit(EventRejected, key)
		var zero V
		c.flights.Complete(key, zero, ErrComputeRejected)
		return f.Wait(ctx)
	}

	ttl, noStore := c.policyFor(key)

	// The computation outlives the initiating call: it runs under a
	// context that keeps the caller's values but not its cancellation,
	// and publishes its outcome even if every caller has gone away.
	run := context.WithoutCancel(ctx)
	c.cfg.sched.Submit(func() {
		val, err := c.execute(run, fn)
		if c.cfg.brk != nil {
			if err != nil {
				c.cfg.brk.OnFailure()
			} else {
				c.cfg.brk.OnSuccess()
			}
		}
		if err == nil {
			if !noStore {
				// Fail soft: waiters still get the value, but the missed
				// commit must be visible to observers.
				if ierr := c.store.Insert(run, key, val, ttl); ierr != nil {
					c.emit(EventCommitError, key)
				}
			}
		} else {
			c.emit(EventFailure, key)
		}
		c.flights.Complete(key, val, err)
	})

	return f.Wait(ctx)
}

// execute runs fn on the scheduler goroutine, converting a panic into an
// error so that an aborted computation still releases its waiters.
func (c *Cache[K, V]) execute(ctx context.Context, fn Loader[V]) (val V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrComputationAborted, r)
		}
	}()

	if c.cfg.limiter != nil {
		if werr := c.cfg.limiter.Wait(ctx); werr != nil {
			return val, werr
		}
	}
	return fn(ctx)
}

// policyFor returns the TTL and storage suppression for key, consulting
// the policy resolver when one is configured.
func (c *Cache[K, V]) policyFor(key K) (time.Duration, bool) {
	ttl := c.cfg.ttl
	if c.cfg.policies == nil {
		return ttl, false
	}
	_, pol, ok := c.cfg.policies.Resolve(fmt.Sprint(key))
	if !ok || pol == nil {
		return ttl, false
	}
	if pol.TTL > 0 {
		ttl = pol.TTL
	}
	return ttl, pol.NoStore
}

func (c *Cache[K, V]) emit(event Event, key K) {
	if c.cfg.observer == nil {
		return
	}
	c.cfg.observer.On(EventData{
		Event: event,
		Key:   fmt.Sprint(key),
	})
}

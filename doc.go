// Package gonutcache provides a concurrent compute-if-absent cache.
//
// A [Cache] couples a pluggable key-value store with an in-flight
// computation registry: when concurrent callers miss on the same key,
// exactly one computation runs and every caller receives its outcome.
// Computations are handed to a [scheduler.Scheduler] and may execute on
// any goroutine, detached from the caller's lifetime, so they must be
// self-contained: own (or share ownership of) everything they touch and
// use only the context they are given.
//
//	st, _ := store.NewRistretto[string](10_000)
//	c := gonutcache.New[string, string](st, gonutcache.WithTTL(time.Minute))
//
//	v, err := c.GetOrTryCompute(ctx, "user:42", func(ctx context.Context) (string, error) {
//		return fetchUser(ctx, 42)
//	})
//
// Concurrent callers for the same key share a single in-flight
// computation. Successful results are committed to the store before any
// waiter is released; failures are fanned out to every waiter and
// nothing is stored, so a later call can try again.
package gonutcache

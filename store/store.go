// Package store defines the key-value storage contract consumed by the
// cache coordinator, together with several backends: an in-process
// ristretto store, a generic TTL store, a fail-soft Redis store, and a
// tiered near/far combination.
//
// Stores hold committed entries only; coordination of concurrent misses
// happens above this layer. Eviction and expiration are each backend's
// own concern and surface only through what Lookup returns.
package store

import (
	"context"
	"time"
)

// Store is the storage contract for committed cache entries. All
// implementations must be safe for concurrent use.
type Store[K comparable, V any] interface {
	// Lookup retrieves the value for key. The boolean reports presence.
	Lookup(ctx context.Context, key K) (V, bool, error)

	// Insert stores val under key with the given TTL. A zero TTL means
	// the backend's default (or no) expiration.
	Insert(ctx context.Context, key K, val V, ttl time.Duration) error

	// Remove deletes the entry for key, if any.
	Remove(ctx context.Context, key K) error
}

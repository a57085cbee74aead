package store

import (
	"context"
	"time"
)

// Tiered combines a fast near store (in-process) with a slower far store
// (for example Redis). Lookups check near first, then far; a far hit is
// promoted into the near store. Writes populate both tiers.
type Tiered[K comparable, V any] struct {
	near Store[K, V]
	far  Store[K, V]
}

// NewTiered creates a two-tier store.
func NewTiered[K comparable, V any](near, far Store[K, V]) *Tiered[K, V] {
	return &Tiered[K, V]{near: near, far: far}
}

// Lookup checks the near store, then the far store. On a far hit the
// value is promoted into the near store with no explicit TTL, since the
// original TTL is not recoverable from the far tier.
func (t *Tiered[K, V]) Lookup(ctx context.Context, key K) (V, bool, error) {
	if v, ok, err := t.near.Lookup(ctx, key); err != nil || ok {
		return v, ok, err
	}
	v, ok, err := t.far.Lookup(ctx, key)
	if err != nil || !ok {
		var zero V
		return zero, false, err
	}
	_ = t.near.Insert(ctx, key, v, 0)
	return v, true, nil
}

// Insert writes the value to the far store, then the near store.
func (t *Tiered[K, V]) Insert(ctx context.Context, key K, val V, ttl time.Duration) error {
	_ = t.far.Insert(ctx, key, val, ttl)
	return t.near.Insert(ctx, key, val, ttl)
}

// Remove deletes the entry from both tiers.
func (t *Tiered[K, V]) Remove(ctx context.Context, key K) error {
	_ = t.far.Remove(ctx, key)
	return t.near.Remove(ctx, key)
}

package store

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// TTL is a generic in-memory store backed by ttlcache. Unlike
// [Ristretto] it places no bound on the number of entries; expired
// entries are reaped by a background goroutine started at construction.
type TTL[K comparable, V any] struct {
	tc *ttlcache.Cache[K, V]
}

// NewTTL creates a TTL store whose entries expire after defaultTTL
// unless Insert specifies otherwise. Call [TTL.Stop] when the store is
// no longer needed.
func NewTTL[K comparable, V any](defaultTTL time.Duration) *TTL[K, V] {
	tc := ttlcache.New(
		ttlcache.WithTTL[K, V](defaultTTL),
		ttlcache.WithDisableTouchOnHit[K, V](),
	)
	go tc.Start()
	return &TTL[K, V]{tc: tc}
}

// Lookup retrieves the value for key.
func (s *TTL[K, V]) Lookup(_ context.Context, key K) (V, bool, error) {
	item := s.tc.Get(key)
	if item == nil || item.IsExpired() {
		var zero V
		return zero, false, nil
	}
	return item.Value(), true, nil
}

// Insert stores val under key. A zero ttl uses the store's default TTL.
func (s *TTL[K, V]) Insert(_ context.Context, key K, val V, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}
	s.tc.Set(key, val, ttl)
	return nil
}

// Remove deletes the entry for key.
func (s *TTL[K, V]) Remove(_ context.Context, key K) error {
	s.tc.Delete(key)
	return nil
}

// Stop terminates the background expiration goroutine.
func (s *TTL[K, V]) Stop() {
	s.tc.Stop()
}

package store

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Ristretto is an in-process store backed by ristretto. Keys are strings;
// each entry has a cost of 1, so maxEntries bounds the entry count rather
// than the byte size.
type Ristretto[V any] struct {
	rc *ristretto.Cache[string, V]
}

// NewRistretto creates a Ristretto store holding up to maxEntries entries.
func NewRistretto[V any](maxEntries int64) (*Ristretto[V], error) {
	rc, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto[V]{rc: rc}, nil
}

// Lookup retrieves the value for key.
func (s *Ristretto[V]) Lookup(_ context.Context, key string) (V, bool, error) {
	v, ok := s.rc.Get(key)
	if !ok {
		var zero V
		return zero, false, nil
	}
	return v, true, nil
}

// Insert stores val under key. Ristretto admits entries asynchronously;
// Insert waits for the write buffer to drain so that a subsequent Lookup
// observes the entry.
func (s *Ristretto[V]) Insert(_ context.Context, key string, val V, ttl time.Duration) error {
	if ttl > 0 {
		s.rc.SetWithTTL(key, val, 1, ttl)
	} else {
		s.rc.Set(key, val, 1)
	}
	s.rc.Wait()
	return nil
}

// Remove deletes the entry for key.
func (s *Ristretto[V]) Remove(_ context.Context, key string) error {
	s.rc.Del(key)
	return nil
}

// Close releases the resources held by the underlying ristretto cache.
func (s *Ristretto[V]) Close() {
	s.rc.Close()
}

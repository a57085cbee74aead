package flight

import "sync"

// Registry maps keys to their in-flight computations. It guarantees that
// at most one Flight exists per key at any time.
type Registry[K comparable, V any] struct {
	mu      sync.Mutex
	flights map[K]*Flight[V]
}

// NewRegistry creates an empty Registry. A Registry's lifetime is tied
// to the cache that owns it; it is never shared across caches.
func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{flights: make(map[K]*Flight[V])}
}

// Begin is the single atomic decision point for a miss on key. If no
// flight exists one is created and returned with won=true: the caller is
// the initiator and must eventually call [Registry.Complete] for the
// key. If a flight already exists it is returned with won=false and the
// caller should wait on it.
func (r *Registry[K, V]) Begin(key K) (*Flight[V], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.flights[key]; ok {
		return f, false
	}
	f := newFlight[V]()
	r.flights[key] = f
	return f, true
}

// Complete publishes the outcome for key and retires its flight. The
// entry is removed from the registry before waiters are released, so a
// released waiter that misses again starts a fresh flight rather than
// re-joining the finished one. Callers that obtained the flight between
// removal and release still observe the outcome through the handle
// itself, so no wakeup is ever lost.
//
// Completing a key with no registered flight is a no-op.
func (r *Registry[K, V]) Complete(key K, val V, err error) {
	r.mu.Lock()
	f, ok := r.flights[key]
	delete(r.flights, key)
	r.mu.Unlock()

	if !ok {
		return
	}
	f.val = val
	f.err = err
	close(f.done)
}

// Len returns the number of in-flight computations.
func (r *Registry[K, V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flights)
}

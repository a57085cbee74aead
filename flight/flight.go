// Package flight tracks in-flight cache computations so that concurrent
// misses for the same key share a single computation instead of racing.
//
// A [Registry] holds at most one [Flight] per key. The first caller to
// reach [Registry.Begin] for an absent key wins the flight and becomes
// responsible for producing its outcome; every other caller receives the
// same Flight and waits on it. [Registry.Complete] publishes the outcome
// to all waiters and retires the flight in a single step.
package flight

import "context"

// Flight is the shared handle for one in-progress or completed
// computation. Multiple goroutines may wait on the same Flight; all of
// them observe the same outcome.
type Flight[V any] struct {
	done chan struct{}

	// val and err are written exactly once, before done is closed, and
	// only read after done is closed.
	val V
	err error
}

func newFlight[V any]() *Flight[V] {
	return &Flight[V]{done: make(chan struct{})}
}

// Wait blocks until the flight's outcome is published, then returns it.
// If ctx is done first the caller abandons its wait and receives
// ctx.Err(); the flight itself keeps running and other waiters are
// unaffected. Waiting on an already-completed flight returns the known
// outcome immediately.
func (f *Flight[V]) Wait(ctx context.Context) (V, error) {
	// A completed flight must never report the caller's cancellation.
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}

	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case <-f.done:
		return f.val, f.err
	}
}

// Done reports whether the flight's outcome has been published.
func (f *Flight[V]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

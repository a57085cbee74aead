package gonutcache

// Observer receives cache lifecycle events. Implementations must be safe
// for concurrent use; events are emitted from both caller and scheduler
// goroutines.
type Observer interface {
	On(eventData EventData)
}

// Event represents a cache event type.
type Event int

const (
	// EventHit is emitted when a key is found in the store.
	EventHit Event = iota
	// EventMiss is emitted when a caller becomes the initiator of a new
	// computation for an absent key.
	EventMiss
	// EventDedup is emitted when a concurrent caller attaches to an
	// existing in-flight computation instead of starting a new one.
	EventDedup
	// EventFailure is emitted when a computation returns an error or
	// terminates abnormally.
	EventFailure
	// EventRejected is emitted when an open circuit breaker fails a miss
	// fast instead of running its computation.
	EventRejected
	// EventCommitError is emitted when a computed value could not be
	// written to the store. The value is still delivered to every waiter.
	EventCommitError
)

// String returns a stable lowercase name, suitable for metric labels.
func (e Event) String() string {
	switch e {
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventDedup:
		return "dedup"
	case EventFailure:
		return "failure"
	case EventRejected:
		return "rejected"
	case EventCommitError:
		return "commit_error"
	default:
		return "unknown"
	}
}

// EventData carries the details of a cache event.
type EventData struct {
	Event Event
	// Key is the string form of the cache key.
	Key string
}

package scheduler

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of concurrently running tasks with a weighted
// semaphore. Submission never blocks the caller; tasks queue on their
// own goroutines until a slot frees up.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a Pool that runs at most size tasks at once.
func NewPool(size int64) *Pool {
	return &Pool{sem: semaphore.NewWeighted(size)}
}

// Submit schedules task to run once a slot is available.
func (p *Pool) Submit(task func()) {
	go func() {
		// Acquire with Background never returns a non-nil error.
		_ = p.sem.Acquire(context.Background(), 1)
		defer p.sem.Release(1)
		task()
	}()
}

// Package scheduler abstracts how cache computations are executed.
//
// Submitted tasks must be self-contained: a task is a plain func() that
// owns everything it touches, so the scheduler is free to run it on any
// goroutine at any time after submission, independent of the submitting
// call frame.
package scheduler

// Scheduler executes self-contained tasks to completion. Submit must not
// run the task synchronously on the calling goroutine.
type Scheduler interface {
	Submit(task func())
}

// Async runs every task on its own goroutine. It is the default
// scheduler and imposes no concurrency bound.
type Async struct{}

// Submit starts task on a new goroutine.
func (Async) Submit(task func()) {
	go task()
}

package gonutcache

import "context"

// Loader is a fallible computation that produces the value for a key.
// It runs on a scheduler goroutine under its own context and must not
// retain references to the submitting caller's request state.
type Loader[V any] func(ctx context.Context) (V, error)

// Func is an infallible computation. The same self-containment contract
// as [Loader] applies.
type Func[V any] func(ctx context.Context) V

// Middleware transforms a Loader, allowing pre/post behavior composition
// (tracing, custom instrumentation, fallbacks).
type Middleware[V any] func(Loader[V]) Loader[V]

// Chain composes middlewares from left to right, i.e., Chain(A, B)(fn) => A(B(fn)).
func Chain[V any](mw ...Middleware[V]) Middleware[V] {
	return func(next Loader[V]) Loader[V] {
		for i := len(mw) - 1; i >= 0; i-- {
			next = mw[i](next)
		}
		return next
	}
}

// Wrap applies the middleware chain to a loader and returns the wrapped loader.
func Wrap[V any](fn Loader[V], mw ...Middleware[V]) Loader[V] {
	if len(mw) == 0 {
		return fn
	}
	return Chain(mw...)(fn)
}

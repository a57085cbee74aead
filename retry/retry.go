// Package retry provides bounded retries with exponential back-off for
// calls to a remote cache service. Whether an error is worth another
// attempt is decided by a caller-supplied predicate; [StatusCodes]
// covers the common gRPC transport case. Local computations are never
// retried here — a failed computation is fanned out to its waiters and
// the next miss starts a fresh attempt.
package retry

import (
	"context"
	"slices"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Config controls the retry behaviour of [Do].
type Config struct {
	// MaxAttempts is the maximum number of times fn is called (including
	// the first attempt). Values ≤ 1 mean no retries.
	MaxAttempts int

	// BaseDelay is the delay before the first retry; each further retry
	// doubles it, capped at MaxDelay.
	BaseDelay time.Duration

	// MaxDelay caps the computed back-off delay.
	MaxDelay time.Duration

	// Jitter spreads the delay by up to ±Jitter fraction, so that many
	// clients retrying against the same cache server do not stampede in
	// lockstep. Zero disables jitter.
	Jitter float64

	// Retryable reports whether another attempt may help. A nil
	// predicate disables retries entirely.
	Retryable func(error) bool
}

// Defaults is the retry policy applied to remote cache calls when the
// caller supplies none: three attempts with a short back-off, retrying
// only transient transport failures. A cache miss (NotFound and the
// like) is an answer, not a failure, and is never retried.
func Defaults() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   20 * time.Millisecond,
		MaxDelay:    200 * time.Millisecond,
		Jitter:      0.2,
		Retryable:   StatusCodes(codes.Unavailable),
	}
}

// StatusCodes returns a predicate satisfied by errors carrying one of
// the given gRPC status codes. Errors that are not status errors are
// never retryable.
func StatusCodes(retryable ...codes.Code) func(error) bool {
	return func(err error) bool {
		st, ok := status.FromError(err)
		return ok && slices.Contains(retryable, st.Code())
	}
}

// Do calls fn until it succeeds, the error is not retryable, or
// cfg.MaxAttempts calls have been made; the last error is returned.
// Between attempts Do sleeps with exponential back-off, giving up with
// ctx.Err() when ctx is done first.
func Do[T any](ctx context.Context, cfg Config, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		if attempt+1 >= cfg.MaxAttempts || cfg.Retryable == nil || !cfg.Retryable(err) {
			return zero, err
		}

		timer := time.NewTimer(cfg.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

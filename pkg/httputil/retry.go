package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. Registry calls wrap network
// errors and 5xx responses with it; anything else (404, bad input) fails
// the operation immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn until it succeeds, fails permanently, or attempts run out.
// Only errors wrapping [RetryableError] are retried. The wait between
// attempts starts at delay and doubles each time; a cancelled context ends
// the wait early with ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		var transient *RetryableError
		if !errors.As(lastErr, &transient) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff calls [Retry] with the defaults used for registry
// lookups: 3 attempts, starting at a 1 second delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

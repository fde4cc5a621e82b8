package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork wraps failures to reach a remote backend.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrCacheMiss is returned by [GetJSON] when no usable entry exists.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a transient failure that [RetryWithBackoff] may
// retry.
type RetryableError struct{ Err error }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or an error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry parameters for [RetryWithBackoff]. The delay doubles after every
// failed attempt.
var (
	retryAttempts = 3
	retryDelay    = 250 * time.Millisecond
)

// RetryWithBackoff calls fn until it succeeds, fails permanently, or the
// attempts run out. Only [Retryable] errors are retried; the last error is
// returned.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}

package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks transport failures against the hosted backends (redis,
// mongo): timeouts, refused connections, unavailable servers. Local
// backends never produce it.
var ErrNetwork = errors.New("network error")

// RetryableError marks an error as transient so RetryWithBackoff knows a
// second attempt may succeed.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError. Wrapping nil returns nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in its
// chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to 3 times, doubling the pause between
// attempts starting at one second. Only errors marked Retryable trigger
// another attempt; anything else returns immediately. The hosted backends
// wrap each Get/Set/Delete in it so a resolve does not fail on a single
// dropped connection.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

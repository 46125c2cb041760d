// Package retry implements the bounded retry-with-backoff policy the API
// layer applies around version-checked load-mutate-save sequences. The
// lifecycles themselves never retry; a version conflict surfaces as a typed
// error and the caller decides here whether to re-read and resubmit.
package retry

import (
	"context"
	"errors"
	"time"
)

const (
	// DefaultAttempts caps how many times a conflicted operation is retried.
	DefaultAttempts = 3
	// DefaultBaseDelay is the first backoff step; each retry doubles it.
	DefaultBaseDelay = 100 * time.Millisecond
)

// Do runs fn until it succeeds, fails with a non-retryable error, runs out of
// attempts, or the context is done. retryable decides which errors warrant
// another attempt; fn must re-read fresh state on each call.
func Do(ctx context.Context, attempts int, baseDelay time.Duration, retryable func(error) bool, fn func(ctx context.Context) error) error {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}

	var err error
	delay := baseDelay
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(ctx.Err(), err)
			case <-time.After(delay):
			}
			delay *= 2
		}

		err = fn(ctx)
		if err == nil || !retryable(err) {
			return err
		}
	}

	return err
}

// On builds a retryable predicate matching any of the given sentinel errors.
func On(sentinels ...error) func(error) bool {
	return func(err error) bool {
		for _, sentinel := range sentinels {
			if errors.Is(err, sentinel) {
				return true
			}
		}
		return false
	}
}

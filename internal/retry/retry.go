// Package retry provides a small attempt-with-policy helper for bounded
// retries with failure-classified backoff.
package retry

import (
	"context"
	"time"
)

// Policy describes how an operation is retried. Backoff receives the 1-based
// number of the attempt that just failed and the error it failed with, and
// returns how long to wait before the next attempt; classification-specific
// branches (e.g. rate limiting) live in the Backoff function.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// Backoff returns the delay before the attempt following the given failure.
	Backoff func(attempt int, err error) time.Duration
	// Sleep waits for d or until ctx is done. Defaults to a context-aware
	// timer sleep; tests inject a recorder.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Do runs fn up to p.MaxAttempts times, sleeping p.Backoff between failed
// attempts. It returns nil on the first success, the last error once attempts
// are exhausted, or the context error if ctx is cancelled while backing off.
// No backoff is taken after the final attempt.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		var d time.Duration
		if p.Backoff != nil {
			d = p.Backoff(attempt, lastErr)
		}
		if d > 0 {
			if err := sleep(ctx, d); err != nil {
				return err
			}
		}
	}
	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

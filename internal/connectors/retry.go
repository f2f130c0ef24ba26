package connectors

import (
	"context"
	"time"

	"github.com/urbaniq/urbaniq-cli/internal/logger"
)

const (
	// MaxAttempts is how many times a transient failure is tried in total.
	MaxAttempts = 3

	// BackoffBase is the delay before the first retry.
	BackoffBase = 2 * time.Second

	// BackoffCap bounds the exponential delay.
	BackoffCap = 10 * time.Second
)

// Retry runs fn up to MaxAttempts times with exponential backoff, retrying
// only errors IsRetryable classifies as transient. The context cancels both
// the attempts and the waits between them.
func Retry(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == MaxAttempts {
			break
		}

		delay := Backoff(attempt)
		logger.Warn("%s: attempt %d/%d failed, retrying in %s: %v",
			name, attempt, MaxAttempts, delay, lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}

// Backoff returns the wait before the next try: 2s, 4s, 8s, capped at 10s.
func Backoff(attempt int) time.Duration {
	delay := BackoffBase << (attempt - 1)
	if delay > BackoffCap {
		return BackoffCap
	}
	return delay
}

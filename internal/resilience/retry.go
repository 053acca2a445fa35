package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/devinsight/devinsight/internal/errors"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterEnabled bool
	Retryable     func(error) bool
}

// DefaultRetryConfig returns sensible defaults for calls to the GitHub API.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
		Retryable:     errors.IsRetryable,
	}
}

// Retry executes fn with exponential backoff until it succeeds, the error is
// not retryable, attempts run out, or the context is done.
func Retry(ctx context.Context, config RetryConfig, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoffDelay(config, attempt)):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if config.Retryable != nil && !config.Retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// backoffDelay computes the delay before the given attempt (1-based after
// the first try), capped at MaxDelay, with optional jitter in [0.5, 1.5).
func backoffDelay(config RetryConfig, attempt int) time.Duration {
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	if config.JitterEnabled {
		delay *= 0.5 + rand.Float64()
	}
	return time.Duration(delay)
}

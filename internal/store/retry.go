package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"soundstash/internal/logging"
	"soundstash/internal/metrics"
)

// ErrNoAttempts is returned when a retry config permits zero attempts.
// It is an explicit failure, never a zero value masquerading as success.
var ErrNoAttempts = errors.New("retry: no attempts permitted")

// RetryExhaustedError reports that an operation kept failing with a
// retryable error until every attempt was spent. It wraps the last
// underlying error.
type RetryExhaustedError struct {
	Operation string
	Attempts  int
	Err       error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Operation, e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// RetryConfig bounds the retry executor. MaxAttempts counts total
// attempts, not retries after the first. Backoff is linear with no
// jitter: attempt number × BackoffUnit.
type RetryConfig struct {
	MaxAttempts int
	BackoffUnit time.Duration
	// Operation labels log lines and metrics.
	Operation string
}

// DefaultRetryConfig returns the standard bounds: three total attempts,
// one-second backoff unit.
func DefaultRetryConfig(operation string) RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BackoffUnit: time.Second,
		Operation:   operation,
	}
}

// ExecuteWithRetry invokes op, retrying on retryable failures up to
// cfg.MaxAttempts total attempts with a linear delay between attempts.
// Non-retryable failures propagate immediately without consuming an
// attempt budget. Exhaustion returns a *RetryExhaustedError wrapping the
// last error.
//
// The delay between attempts is a plain sleep: a caller disconnecting
// mid-retry does not cut the sequence short.
func ExecuteWithRetry[T any](ctx context.Context, cfg RetryConfig, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if cfg.MaxAttempts <= 0 {
		return zero, ErrNoAttempts
	}
	unit := cfg.BackoffUnit
	if unit <= 0 {
		unit = time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			if attempt > 1 {
				logging.Info("%s succeeded on attempt %d/%d", cfg.Operation, attempt, cfg.MaxAttempts)
				metrics.RetrySuccess.WithLabelValues(cfg.Operation).Inc()
			}
			return result, nil
		}

		if !IsRetryable(err) {
			return zero, err
		}
		lastErr = err

		// No sleep after the final attempt.
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := time.Duration(attempt) * unit
		logging.Debug("%s failed with retryable error, retrying in %v (attempt %d/%d): %v",
			cfg.Operation, delay, attempt, cfg.MaxAttempts, err)
		metrics.RetryAttempts.WithLabelValues(cfg.Operation).Inc()
		time.Sleep(delay)
	}

	logging.Warn("%s failed after %d attempts: %v", cfg.Operation, cfg.MaxAttempts, lastErr)
	metrics.RetryExhausted.WithLabelValues(cfg.Operation).Inc()
	return zero, &RetryExhaustedError{Operation: cfg.Operation, Attempts: cfg.MaxAttempts, Err: lastErr}
}

// IsRetryable reports whether an error is worth retrying: refused or
// reset connections, network timeouts, and any error whose text mentions
// a timeout.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNREFUSED || errno == syscall.ECONNRESET {
			return true
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

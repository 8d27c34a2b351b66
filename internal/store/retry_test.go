package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
	"time"
)

// testRetryConfig keeps test delays in the millisecond range.
func testRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		BackoffUnit: time.Millisecond,
		Operation:   "test.op",
	}
}

func TestExecuteWithRetry_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	result, err := ExecuteWithRetry(context.Background(), testRetryConfig(3),
		func(context.Context) (string, error) {
			calls++
			return "ok", nil
		})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want ok", result)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestExecuteWithRetry_ShortCircuitAfterTransientFailure(t *testing.T) {
	calls := 0
	result, err := ExecuteWithRetry(context.Background(), testRetryConfig(3),
		func(context.Context) (int, error) {
			calls++
			if calls == 1 {
				return 0, errors.New("operation timeout")
			}
			return 42, nil
		})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 42 {
		t.Errorf("result = %d, want 42", result)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want exactly 2", calls)
	}
}

func TestExecuteWithRetry_Exhaustion(t *testing.T) {
	calls := 0
	underlying := errors.New("read timeout")
	_, err := ExecuteWithRetry(context.Background(), testRetryConfig(3),
		func(context.Context) (string, error) {
			calls++
			return "", underlying
		})

	if calls != 3 {
		t.Errorf("calls = %d, want exactly 3", calls)
	}

	var exhausted *RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want *RetryExhaustedError", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", exhausted.Attempts)
	}
	if !errors.Is(err, underlying) {
		t.Error("exhaustion error does not wrap the last underlying error")
	}
}

func TestExecuteWithRetry_LinearBackoffDelays(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts: 3,
		BackoffUnit: 20 * time.Millisecond,
		Operation:   "test.op",
	}

	var stamps []time.Time
	_, err := ExecuteWithRetry(context.Background(), cfg,
		func(context.Context) (string, error) {
			stamps = append(stamps, time.Now())
			return "", errors.New("connection timeout")
		})
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if len(stamps) != 3 {
		t.Fatalf("attempts = %d, want 3", len(stamps))
	}

	// Delays grow linearly: ~1 unit, then ~2 units.
	first := stamps[1].Sub(stamps[0])
	second := stamps[2].Sub(stamps[1])
	if first < cfg.BackoffUnit {
		t.Errorf("first delay %v shorter than one backoff unit", first)
	}
	if second < 2*cfg.BackoffUnit {
		t.Errorf("second delay %v shorter than two backoff units", second)
	}
}

func TestExecuteWithRetry_NonRetryablePropagatesImmediately(t *testing.T) {
	calls := 0
	boom := errors.New("document validation failed")
	_, err := ExecuteWithRetry(context.Background(), testRetryConfig(3),
		func(context.Context) (string, error) {
			calls++
			return "", boom
		})

	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want the original error", err)
	}
	var exhausted *RetryExhaustedError
	if errors.As(err, &exhausted) {
		t.Error("non-retryable failure reported as exhaustion")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestExecuteWithRetry_ZeroAttempts(t *testing.T) {
	called := false
	_, err := ExecuteWithRetry(context.Background(), testRetryConfig(0),
		func(context.Context) (string, error) {
			called = true
			return "never", nil
		})

	if !errors.Is(err, ErrNoAttempts) {
		t.Errorf("error = %v, want ErrNoAttempts", err)
	}
	if called {
		t.Error("operation invoked despite zero permitted attempts")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection refused errno", syscall.ECONNREFUSED, true},
		{"connection reset errno", syscall.ECONNRESET, true},
		{"wrapped refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"net op error refused", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, true},
		{"timeout substring", errors.New("server selection Timeout exceeded"), true},
		{"uppercase timeout", errors.New("OPERATION TIMEOUT"), true},
		{"plain failure", errors.New("duplicate key"), false},
		{"not found", errors.New("document not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

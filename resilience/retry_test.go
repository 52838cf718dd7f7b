package resilience

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/navaneethkutty/AFIRGen-1-sub004/classify"
)

func TestNewRetry_Defaults(t *testing.T) {
	r := NewRetry(RetryConfig{})

	p := r.Policy()
	if p.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", p.MaxRetries)
	}
	if p.BaseDelay != time.Second {
		t.Errorf("BaseDelay = %v, want 1s", p.BaseDelay)
	}
	if p.MaxDelay != 60*time.Second {
		t.Errorf("MaxDelay = %v, want 60s", p.MaxDelay)
	}
	if p.ExponentialBase != 2.0 {
		t.Errorf("ExponentialBase = %v, want 2.0", p.ExponentialBase)
	}
}

func TestRetry_SuccessFirstAttempt(t *testing.T) {
	r := NewRetry(RetryConfig{})

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Errorf("Execute() = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

// TestRetry_DelaySchedule verifies the numeric backoff contract:
// base 1s, exponent 2, no jitter yields 1s, 2s, 4s, ... capped at 60s.
func TestRetry_DelaySchedule(t *testing.T) {
	r := NewRetry(RetryConfig{
		Policy: Policy{
			MaxRetries:      10,
			BaseDelay:       time.Second,
			MaxDelay:        60 * time.Second,
			ExponentialBase: 2.0,
		},
	})

	want := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		32 * time.Second,
		60 * time.Second, // capped: 64s > 60s
		60 * time.Second,
	}
	for attempt, w := range want {
		if got := r.delayFor(attempt); got != w {
			t.Errorf("delayFor(%d) = %v, want %v", attempt, got, w)
		}
	}
}

func TestRetry_JitterRange(t *testing.T) {
	r := NewRetry(RetryConfig{
		Policy: Policy{
			BaseDelay:       time.Second,
			MaxDelay:        60 * time.Second,
			ExponentialBase: 2.0,
			Jitter:          true,
		},
	})

	// delayFor(1) is 2s before jitter; jittered it stays in [1s, 3s).
	for i := 0; i < 100; i++ {
		d := r.delayFor(1)
		if d < time.Second || d >= 3*time.Second {
			t.Fatalf("jittered delay %v outside [1s, 3s)", d)
		}
	}
}

// TestRetry_Exhaustion verifies the full timing contract: an operation
// failing every attempt is invoked exactly 1+MaxRetries times with the
// exponential delay schedule, and the final error is the original failure.
func TestRetry_Exhaustion(t *testing.T) {
	flaky := errors.New("inference backend unavailable")

	var delays []time.Duration
	r := NewRetry(RetryConfig{
		Policy: Policy{
			MaxRetries:      3,
			BaseDelay:       time.Millisecond,
			MaxDelay:        60 * time.Millisecond,
			ExponentialBase: 2.0,
		},
		RetryableTargets: []error{flaky},
		OnRetry: func(attempt int, err error, delay time.Duration) {
			delays = append(delays, delay)
		},
	})

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return fmt.Errorf("attempt %d: %w", calls, flaky)
	})

	if calls != 4 {
		t.Errorf("calls = %d, want 4 (1 + MaxRetries)", calls)
	}
	if !errors.Is(err, flaky) {
		t.Errorf("final error = %v, want original failure", err)
	}

	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestRetry_OriginalErrorUnwrapped(t *testing.T) {
	// The exact error value must come back, not a wrapper.
	last := syscall.ECONNRESET
	r := NewRetry(RetryConfig{
		Policy: Policy{MaxRetries: 1, BaseDelay: time.Millisecond},
	})

	err := r.Execute(context.Background(), func(ctx context.Context) error {
		return last
	})
	if err != last {
		t.Errorf("Execute() = %#v, want the original error value", err)
	}
}

func TestRetry_NonRetryableStopsImmediately(t *testing.T) {
	r := NewRetry(RetryConfig{
		Policy: Policy{MaxRetries: 5, BaseDelay: time.Millisecond},
	})

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return fmt.Errorf("bad report payload: %w", classify.ErrValidation)
	})

	if calls != 1 {
		t.Errorf("calls = %d, want 1 for non-retryable error", calls)
	}
	if !errors.Is(err, classify.ErrValidation) {
		t.Errorf("Execute() = %v, want validation error", err)
	}
}

func TestRetry_CriticalNotRetried(t *testing.T) {
	r := NewRetry(RetryConfig{
		Policy: Policy{MaxRetries: 5, BaseDelay: time.Millisecond},
	})

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return classify.ErrResourceExhausted
	})

	if calls != 1 {
		t.Errorf("calls = %d, want 1 for critical error", calls)
	}
	if !errors.Is(err, classify.ErrResourceExhausted) {
		t.Errorf("Execute() = %v, want resource exhausted", err)
	}
}

func TestRetry_ExplicitTargetsOverrideClassifier(t *testing.T) {
	// ErrValidation is non-retryable by classification, but an explicit
	// target set replaces the classifier entirely.
	r := NewRetry(RetryConfig{
		Policy:           Policy{MaxRetries: 2, BaseDelay: time.Millisecond},
		RetryableTargets: []error{classify.ErrValidation},
	})

	calls := 0
	_ = r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return classify.ErrValidation
	})
	if calls != 3 {
		t.Errorf("calls = %d, want 3 with explicit targets", calls)
	}

	// And errors outside the set are not retried, even network ones.
	calls = 0
	_ = r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return syscall.ECONNREFUSED
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1 for error outside explicit set", calls)
	}
}

func TestRetry_SucceedsAfterRetries(t *testing.T) {
	r := NewRetry(RetryConfig{
		Policy: Policy{MaxRetries: 3, BaseDelay: time.Millisecond},
	})

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return syscall.ECONNRESET
		}
		return nil
	})

	if err != nil {
		t.Errorf("Execute() = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_ContextCanceledDuringBackoff(t *testing.T) {
	r := NewRetry(RetryConfig{
		Policy: Policy{MaxRetries: 3, BaseDelay: time.Second},
	})

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := r.Execute(ctx, func(ctx context.Context) error {
		calls++
		return syscall.ECONNRESET
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (canceled during first backoff)", calls)
	}
}

func TestWrap(t *testing.T) {
	r := NewRetry(RetryConfig{
		Policy: Policy{MaxRetries: 2, BaseDelay: time.Millisecond},
	})

	calls := 0
	op := Wrap(r, func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return syscall.ECONNRESET
		}
		return nil
	})

	if err := op(context.Background()); err != nil {
		t.Errorf("wrapped op = %v, want nil", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

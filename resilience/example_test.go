package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/navaneethkutty/AFIRGen-1-sub004/resilience"
)

var errModelBusy = fmt.Errorf("model busy: %w", context.DeadlineExceeded)

func ExampleExecutor() {
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:             "model-api",
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
	})
	retry := resilience.NewRetry(resilience.RetryConfig{
		Policy: resilience.Policy{
			MaxRetries:      3,
			BaseDelay:       time.Millisecond,
			MaxDelay:        10 * time.Millisecond,
			ExponentialBase: 2.0,
		},
	})

	exec := resilience.NewExecutor(
		resilience.WithCircuitBreaker(breaker),
		resilience.WithRetry(retry),
	)

	attempts := 0
	err := exec.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errModelBusy
		}
		return nil
	})

	fmt.Println("attempts:", attempts)
	fmt.Println("err:", err)
	fmt.Println("breaker:", breaker.State())
	// Output:
	// attempts: 3
	// err: <nil>
	// breaker: closed
}

func ExampleRetry_Execute() {
	retry := resilience.NewRetry(resilience.RetryConfig{
		Policy: resilience.Policy{
			MaxRetries:      2,
			BaseDelay:       time.Millisecond,
			MaxDelay:        5 * time.Millisecond,
			ExponentialBase: 2.0,
		},
	})

	// Validation failures classify non-retryable: one attempt, error intact.
	calls := 0
	err := retry.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("malformed request")
	})

	fmt.Println("calls:", calls)
	fmt.Println("err:", err)
	// Output:
	// calls: 1
	// err: malformed request
}

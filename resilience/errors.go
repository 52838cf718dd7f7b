package resilience

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when a circuit breaker rejects a call
	// without invoking the protected operation. Callers distinguish it from
	// the operation's own failures to choose immediate fallback handling.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrBulkheadFull is returned when the bulkhead is at capacity.
	ErrBulkheadFull = errors.New("resilience: bulkhead at capacity")

	// ErrTimeout is returned when a single attempt exceeds its deadline.
	// It wraps context.DeadlineExceeded so it classifies as retryable.
	ErrTimeout = fmt.Errorf("resilience: operation timed out: %w", context.DeadlineExceeded)
)

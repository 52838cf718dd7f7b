// Package resilience makes calls to unreliable dependencies safe and
// bounded.
//
// The report pipeline talks to remote model servers, a relational store,
// and a cache backend, any of which can fail or hang. This package wraps
// those calls with composable patterns:
//
//   - Retry: exponential backoff with jitter, consulting the classify
//     package (or an explicit target set) to decide whether a failure is
//     worth another attempt. The original error is always returned
//     unchanged on exhaustion.
//
//   - Circuit Breaker: a named per-dependency state machine that stops
//     calling a failing dependency for a cool-down period instead of
//     repeatedly failing against it. Rejections surface as ErrCircuitOpen
//     without invoking the operation.
//
//   - Timeout: a per-attempt deadline so the retry loop's total latency
//     stays bounded.
//
//   - Bulkhead: a concurrency cap in front of a dependency.
//
// Compose with the Executor:
//
//	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name:             "inference",
//	    FailureThreshold: 5,
//	    RecoveryTimeout:  30 * time.Second,
//	})
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    Policy: resilience.DefaultPolicy(),
//	})
//	exec := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(breaker),
//	    resilience.WithRetry(retry),
//	    resilience.WithTimeout(20*time.Second),
//	)
//
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return callModelServer(ctx)
//	})
//
// The breaker wraps the whole retry loop, so an exhausted retry counts as
// a single failure against the threshold.
package resilience

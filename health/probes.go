package health

import (
	"context"
	"fmt"
	"time"

	"github.com/navaneethkutty/AFIRGen-1-sub004/cache"
	"github.com/navaneethkutty/AFIRGen-1-sub004/resilience"
)

// StoreChecker probes a cache store with Ping. A reachable but slow
// backend is reported degraded rather than unhealthy: the cache layer
// keeps serving, just with a worse hit latency.
type StoreChecker struct {
	name  string
	store cache.Store

	// SlowThreshold marks the ping latency above which the store counts
	// as degraded. Default: 100ms.
	SlowThreshold time.Duration
}

// NewStoreChecker creates a probe for the given cache store.
func NewStoreChecker(name string, store cache.Store) *StoreChecker {
	return &StoreChecker{
		name:          name,
		store:         store,
		SlowThreshold: 100 * time.Millisecond,
	}
}

func (c *StoreChecker) Name() string { return c.name }

func (c *StoreChecker) Check(ctx context.Context) Result {
	start := time.Now()
	if err := c.store.Ping(ctx); err != nil {
		return Unhealthy("cache store unreachable", err)
	}

	latency := time.Since(start)
	details := map[string]any{"ping_latency": latency.String()}

	if latency > c.SlowThreshold {
		return Degraded(fmt.Sprintf("cache store slow: ping took %s", latency)).WithDetails(details)
	}
	return Healthy("cache store reachable").WithDetails(details)
}

// BreakerChecker surfaces a circuit breaker's state as health: closed is
// healthy, half-open is degraded (recovery trial in progress), open is
// unhealthy (the protected dependency is being shed).
type BreakerChecker struct {
	breaker *resilience.CircuitBreaker
}

// NewBreakerChecker creates a probe over the given breaker. The checker
// takes the breaker's own name.
func NewBreakerChecker(breaker *resilience.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{breaker: breaker}
}

func (c *BreakerChecker) Name() string { return "breaker:" + c.breaker.Name() }

func (c *BreakerChecker) Check(_ context.Context) Result {
	snap := c.breaker.Snapshot()
	details := map[string]any{
		"state":    snap.State.String(),
		"failures": snap.Failures,
	}
	if !snap.LastFailure.IsZero() {
		details["last_failure"] = snap.LastFailure.UTC().Format(time.RFC3339)
	}

	switch snap.State {
	case resilience.StateOpen:
		return Unhealthy("circuit open: dependency calls are being rejected", resilience.ErrCircuitOpen).WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded("circuit half-open: probing dependency recovery").WithDetails(details)
	default:
		return Healthy("circuit closed").WithDetails(details)
	}
}

var (
	_ Checker = (*StoreChecker)(nil)
	_ Checker = (*BreakerChecker)(nil)
)

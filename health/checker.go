package health

import (
	"context"
	"time"
)

// Status is the health of a single dependency or of the service overall.
type Status int

const (
	// StatusHealthy means the dependency is fully operational.
	StatusHealthy Status = iota
	// StatusDegraded means the dependency works but with reduced service,
	// e.g. a breaker probing recovery or a slow cache backend.
	StatusDegraded
	// StatusUnhealthy means the dependency is not usable.
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one probe.
type Result struct {
	Status    Status
	Message   string
	Details   map[string]any
	Duration  time.Duration
	Timestamp time.Time
	Err       error
}

// Healthy builds a passing result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message, Timestamp: time.Now()}
}

// Degraded builds a reduced-service result.
func Degraded(message string) Result {
	return Result{Status: StatusDegraded, Message: message, Timestamp: time.Now()}
}

// Unhealthy builds a failing result carrying the probe error.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Err: err, Timestamp: time.Now()}
}

// WithDetails attaches probe metadata to the result.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// Checker probes one dependency.
//
// Contract:
// - Concurrency: Check may be called concurrently and must be safe.
// - Context: Check should honor ctx; the aggregator abandons probes
//   that outlive their deadline.
// - Errors: a failed probe is reported through the Result, not a panic.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckFunc adapts a plain function into a Checker.
type CheckFunc func(ctx context.Context) Result

// Named binds a name to a probe function.
func Named(name string, fn CheckFunc) Checker {
	return &namedChecker{name: name, fn: fn}
}

type namedChecker struct {
	name string
	fn   CheckFunc
}

func (c *namedChecker) Name() string { return c.name }

func (c *namedChecker) Check(ctx context.Context) Result { return c.fn(ctx) }

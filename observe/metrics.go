package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder records resilience and cache events as metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Fire-and-forget: methods must return quickly and never block the
//   calling request on the observability sink.
// - Errors: implementations must not panic.
type Recorder interface {
	// CacheHit records a cache hit in the given namespace.
	CacheHit(ctx context.Context, namespace string)

	// CacheMiss records a cache miss in the given namespace.
	CacheMiss(ctx context.Context, namespace string)

	// CacheBackendFailure records a cache-store infrastructure failure
	// during the given operation (get, set, delete, invalidate, ping).
	CacheBackendFailure(ctx context.Context, op string)

	// RetryAttempt records a retry of a call to the named dependency.
	RetryAttempt(ctx context.Context, dependency string, attempt int, delay time.Duration)

	// CallOutcome records the duration and final result of a dependency call.
	CallOutcome(ctx context.Context, dependency string, duration time.Duration, err error)

	// BreakerTransition records a circuit breaker state change.
	BreakerTransition(ctx context.Context, name, from, to string)
}

// recorder is the OpenTelemetry-backed Recorder.
type recorder struct {
	cacheHits       metric.Int64Counter
	cacheMisses     metric.Int64Counter
	backendFailures metric.Int64Counter
	retryAttempts   metric.Int64Counter
	callDuration    metric.Float64Histogram
	callErrors      metric.Int64Counter
	transitions     metric.Int64Counter
}

// NewRecorder creates a Recorder on the given meter.
func NewRecorder(meter metric.Meter) (Recorder, error) {
	cacheHits, err := meter.Int64Counter(
		"cache.hits",
		metric.WithDescription("Cache hits by namespace"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter(
		"cache.misses",
		metric.WithDescription("Cache misses by namespace"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	backendFailures, err := meter.Int64Counter(
		"cache.backend_failures",
		metric.WithDescription("Cache store infrastructure failures by operation"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	retryAttempts, err := meter.Int64Counter(
		"retry.attempts",
		metric.WithDescription("Retry attempts by dependency"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	callDuration, err := meter.Float64Histogram(
		"call.duration_ms",
		metric.WithDescription("Dependency call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	callErrors, err := meter.Int64Counter(
		"call.errors",
		metric.WithDescription("Failed dependency calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter(
		"breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return &recorder{
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		backendFailures: backendFailures,
		retryAttempts:   retryAttempts,
		callDuration:    callDuration,
		callErrors:      callErrors,
		transitions:     transitions,
	}, nil
}

func (r *recorder) CacheHit(ctx context.Context, namespace string) {
	r.cacheHits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.namespace", namespace),
	))
}

func (r *recorder) CacheMiss(ctx context.Context, namespace string) {
	r.cacheMisses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.namespace", namespace),
	))
}

func (r *recorder) CacheBackendFailure(ctx context.Context, op string) {
	r.backendFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.op", op),
	))
}

func (r *recorder) RetryAttempt(ctx context.Context, dependency string, attempt int, delay time.Duration) {
	r.retryAttempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("dependency", dependency),
		attribute.Int("attempt", attempt),
	))
	_ = delay // carried in logs; the counter only needs cardinality-safe attributes
}

func (r *recorder) CallOutcome(ctx context.Context, dependency string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("dependency", dependency),
		attribute.Bool("error", err != nil),
	)
	r.callDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		r.callErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("dependency", dependency),
		))
	}
}

func (r *recorder) BreakerTransition(ctx context.Context, name, from, to string) {
	r.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("breaker", name),
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// nopRecorder discards all measurements.
type nopRecorder struct{}

// NopRecorder returns a Recorder that discards everything.
func NopRecorder() Recorder { return nopRecorder{} }

func (nopRecorder) CacheHit(context.Context, string)                               {}
func (nopRecorder) CacheMiss(context.Context, string)                              {}
func (nopRecorder) CacheBackendFailure(context.Context, string)                    {}
func (nopRecorder) RetryAttempt(context.Context, string, int, time.Duration)       {}
func (nopRecorder) CallOutcome(context.Context, string, time.Duration, error)      {}
func (nopRecorder) BreakerTransition(ctx context.Context, name, from, to string)   {}

// Ensure implementations satisfy Recorder.
var (
	_ Recorder = (*recorder)(nil)
	_ Recorder = nopRecorder{}
)

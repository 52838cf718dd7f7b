package observe

import (
	"context"
	"time"
)

// CallFunc is the signature of a dependency call wrapped by Middleware.
type CallFunc func(ctx context.Context) error

// Middleware wraps dependency calls with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe CallFunc.
//   - Errors: errors from the wrapped call are recorded and propagated
//     unchanged.
type Middleware struct {
	tracer   Tracer
	recorder Recorder
	logger   Logger
}

// NewMiddleware creates a Middleware from the given observability components.
func NewMiddleware(tracer Tracer, recorder Recorder, logger Logger) *Middleware {
	return &Middleware{
		tracer:   tracer,
		recorder: recorder,
		logger:   logger,
	}
}

// Wrap instruments a call to the named dependency.
func (m *Middleware) Wrap(dependency string, fn CallFunc) CallFunc {
	return func(ctx context.Context) error {
		ctx, span := m.tracer.StartSpan(ctx, dependency)
		start := time.Now()

		err := fn(ctx)

		duration := time.Since(start)
		m.tracer.EndSpan(span, err)
		m.recorder.CallOutcome(ctx, dependency, duration, err)

		log := m.logger.WithDependency(dependency)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			log.Error(ctx, "dependency call failed", fields...)
		} else {
			log.Debug(ctx, "dependency call completed", fields...)
		}

		return err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	recorder, err := NewRecorder(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), recorder, obs.Logger()), nil
}

// Package observe provides structured logging, metrics, and tracing for
// the resilience and caching layer.
//
// Every retry attempt, circuit-breaker transition, and cache-backend
// failure is emitted with enough context (dependency name, attempt number,
// delay, resulting category) to reconstruct the decision trail. Metrics
// are recorded fire-and-forget through OpenTelemetry; no component blocks
// on the observability sink.
package observe

// Package health probes the dependencies this service protects: the cache
// backend, circuit breakers guarding remote calls, and anything else a
// deployment wants surfaced on its readiness endpoint.
//
// A Checker reports one dependency. The Aggregator fans out over all
// registered checkers and folds their results into an overall status:
// an open breaker or an unreachable cache store marks the service
// degraded or unhealthy before callers find out the hard way.
package health

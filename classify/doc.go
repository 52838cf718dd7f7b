// Package classify maps errors from external dependencies to retry
// categories.
//
// Classification drives the retry executor and the background job runner:
// retryable errors (network faults, timeouts, 5xx responses) may succeed on
// another attempt, non-retryable errors (validation, lookup failures) will
// not, and critical errors (resource exhaustion) must escalate instead of
// being retried. Errors that match no registered category default to
// non-retryable so novel failures never cause retry storms.
package classify

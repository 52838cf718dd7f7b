package classify

import "errors"

// Sentinel errors for common failure modes of the report pipeline.
// Collaborators wrap these so classification survives error wrapping.
var (
	// ErrValidation indicates malformed or rejected input. Never retried.
	ErrValidation = errors.New("classify: validation failed")

	// ErrNotFound indicates a lookup miss in a collaborator. Never retried.
	ErrNotFound = errors.New("classify: not found")

	// ErrResourceExhausted indicates memory or quota exhaustion. Critical.
	ErrResourceExhausted = errors.New("classify: resource exhausted")
)

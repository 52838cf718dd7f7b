package health

import "errors"

var (
	// ErrCheckerNotFound indicates no checker is registered under the name.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrProbeTimeout indicates a probe did not finish within the deadline.
	ErrProbeTimeout = errors.New("health: probe timed out")
)

package classify

// Category is the retry disposition of an error.
type Category int

const (
	// CategoryUnknown means no classification could be made.
	CategoryUnknown Category = iota
	// CategoryRetryable means the error is transient and may succeed on retry.
	CategoryRetryable
	// CategoryNonRetryable means retrying will not help.
	CategoryNonRetryable
	// CategoryCritical means the error indicates resource exhaustion or a
	// system-level fault; it must not be retried and should escalate.
	CategoryCritical
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryRetryable:
		return "retryable"
	case CategoryNonRetryable:
		return "non_retryable"
	case CategoryCritical:
		return "critical"
	default:
		return "unknown"
	}
}

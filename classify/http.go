package classify

// ClassifyHTTPStatus maps an HTTP status code to a category.
//
// Request-level throttling and gateway failures (408, 429, 502, 503, 504)
// are retryable, client errors (400, 401, 403, 404, 422) are not, and the
// remaining 5xx range is retryable by default. Success and redirect codes
// return CategoryUnknown since they carry no failure to classify.
func ClassifyHTTPStatus(code int) Category {
	switch code {
	case 408, 429, 502, 503, 504:
		return CategoryRetryable
	case 400, 401, 403, 404, 422:
		return CategoryNonRetryable
	}

	if code >= 500 && code <= 599 {
		return CategoryRetryable
	}
	if code >= 400 && code <= 499 {
		return CategoryNonRetryable
	}

	return CategoryUnknown
}

// errors.go
// ---------
// Tagged failure type returned by the executor and configuration loading.
// Every terminal failure carries a machine-readable Kind plus the wrapped
// underlying cause, so callers can branch on the kind without parsing
// message text and still unwrap the original error.
package nftbridge

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a RequestError.
type ErrorKind string

const (
	// KindConfiguration marks a missing or invalid startup configuration,
	// such as an absent required API key. Never retried.
	KindConfiguration ErrorKind = "configuration"

	// KindHTTPStatus marks a non-2xx status outside 429. Terminal on the
	// first occurrence.
	KindHTTPStatus ErrorKind = "http_status"

	// KindRetryExhausted marks a retryable failure (transport error or 429)
	// that survived the full retry budget.
	KindRetryExhausted ErrorKind = "retry_exhausted"

	// KindInvalidJSON marks a 2xx response whose body is not valid JSON.
	KindInvalidJSON ErrorKind = "invalid_json"
)

// RequestError is the terminal failure surfaced by the request layer.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int    // set for KindHTTPStatus
	Reason     string // human context: status reason phrase or config detail
	cause      error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("request failed: HTTP %d %s", e.StatusCode, e.Reason)
	case KindRetryExhausted:
		if e.cause != nil {
			return fmt.Sprintf("request failed after retries: %v", e.cause)
		}
		return "request failed after retries"
	case KindInvalidJSON:
		return fmt.Sprintf("invalid JSON response: %v", e.cause)
	case KindConfiguration:
		return "configuration error: " + e.Reason
	}
	return "request error: " + e.Reason
}

func (e *RequestError) Unwrap() error { return e.cause }

// NewConfigurationError reports a startup misconfiguration.
func NewConfigurationError(reason string) *RequestError {
	return &RequestError{Kind: KindConfiguration, Reason: reason}
}

func newStatusError(status int, reason string) *RequestError {
	return &RequestError{Kind: KindHTTPStatus, StatusCode: status, Reason: reason}
}

func newRetryExhaustedError(cause error) *RequestError {
	return &RequestError{Kind: KindRetryExhausted, cause: cause}
}

func newInvalidJSONError(cause error) *RequestError {
	return &RequestError{Kind: KindInvalidJSON, cause: cause}
}

// KindOf extracts the ErrorKind from err's chain, or "" if err is not a
// RequestError.
func KindOf(err error) ErrorKind {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

package amadeus

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/exception"
)

var ErrBadRequest = exception.ApplicationError{
	StatusCode: http.StatusBadRequest,
	Message:    "provider rejected the request",
}

var ErrUnauthorized = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "provider authentication failed",
}

var ErrRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "provider rate limit exceeded",
}

var ErrProviderUnavailable = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "provider internal error or temporary unavailable",
}

var ErrMalformedPayload = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "provider returned a malformed payload",
}

var ErrRequestFailed = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "provider request failed",
}

// ProviderError is returned by every Client call that did not succeed.
// Err is one of the sentinels above, possibly carrying a cause.
type ProviderError struct {
	Operation  string
	StatusCode int
	Detail     string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", ProviderName, e.Operation, e.Err)
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}

	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ErrorDetail is the provider supplied explanation, safe to show to the caller.
func (e *ProviderError) ErrorDetail() string {
	return e.Detail
}

func newProviderError(operation string, sentinel exception.ApplicationError, cause error) *ProviderError {
	if cause != nil {
		sentinel = sentinel.WithCause(cause)
	}

	return &ProviderError{
		Operation: operation,
		Err:       sentinel,
	}
}

// retryable reports whether another attempt may succeed.
func retryable(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded) ||
		errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, ErrRequestFailed)
}

func sentinelForStatus(status int) exception.ApplicationError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusTooManyRequests:
		return ErrRateLimitExceeded
	case status >= http.StatusInternalServerError:
		return ErrProviderUnavailable
	default:
		return ErrBadRequest
	}
}

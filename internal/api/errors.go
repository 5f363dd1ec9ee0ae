package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// ErrorType is the category of an API failure.
type ErrorType int

const (
	// ErrTypeNetwork is a connection-level failure not covered by a more specific type
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout is a request that exceeded its deadline
	ErrTypeTimeout
	// ErrTypeConnectionRefused means nothing is listening at the base URL
	ErrTypeConnectionRefused
	// ErrTypeDNS is a hostname resolution failure
	ErrTypeDNS
	// ErrTypeHTTP is a non-2xx response
	ErrTypeHTTP
	// ErrTypeParse is a malformed response body
	ErrTypeParse
	// ErrTypeValidation is a request the service rejected as invalid (422) or
	// that failed local checks before sending
	ErrTypeValidation
	// ErrTypeUnknown is anything else
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// maxBodyExcerpt bounds how much of an error response body is kept.
const maxBodyExcerpt = 200

// Error is a classified failure talking to the service.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int    // HTTP status, zero for transport errors
	Body       string // excerpt of the response body for HTTP errors
	Err        error
	Retryable  bool
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Body != "" {
		msg += fmt.Sprintf(" (%s)", e.Body)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError maps a transport error onto an ErrorType.
func ClassifyNetworkError(err error) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Type: ErrTypeUnknown, Message: "request canceled", Err: err}
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Type: ErrTypeTimeout, Message: "request timed out", Err: err, Retryable: true}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &Error{Type: ErrTypeConnectionRefused, Message: "service refused connection", Err: err, Retryable: true}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err)
	}

	return &Error{Type: ErrTypeNetwork, Message: "network error occurred", Err: err, Retryable: true}
}

// NewNetworkError classifies err and replaces its message.
func NewNetworkError(message string, err error) *Error {
	classified := ClassifyNetworkError(err)
	if classified == nil {
		return &Error{Type: ErrTypeNetwork, Message: message, Retryable: true}
	}
	classified.Message = message
	return classified
}

// NewHTTPError builds an error for a non-2xx response. 422 is reported as a
// validation error; 5xx responses are retryable.
func NewHTTPError(statusCode int, body []byte) *Error {
	excerpt := string(body)
	if len(excerpt) > maxBodyExcerpt {
		excerpt = excerpt[:maxBodyExcerpt] + "..."
	}

	errType := ErrTypeHTTP
	if statusCode == http.StatusUnprocessableEntity {
		errType = ErrTypeValidation
	}
	return &Error{
		Type:       errType,
		Message:    fmt.Sprintf("unexpected status %d %s", statusCode, http.StatusText(statusCode)),
		StatusCode: statusCode,
		Body:       excerpt,
		Retryable:  statusCode >= 500,
	}
}

// NewParseError wraps a decoding failure
func NewParseError(message string, err error) *Error {
	return &Error{Type: ErrTypeParse, Message: message, Err: err}
}

// NewValidationError reports a request rejected before it was sent
func NewValidationError(message string) *Error {
	return &Error{Type: ErrTypeValidation, Message: message}
}

func asError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError reports transport failures (timeouts, refused, DNS included)
func IsNetworkError(err error) bool {
	if e, ok := asError(err); ok {
		switch e.Type {
		case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
			return true
		}
	}
	return false
}

// IsHTTPError reports non-2xx responses other than validation failures
func IsHTTPError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeHTTP
}

// IsValidationError reports requests the service rejected as invalid
func IsValidationError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeValidation
}

// IsNotFound reports a 404 response
func IsNotFound(err error) bool {
	e, ok := asError(err)
	return ok && e.StatusCode == http.StatusNotFound
}

// IsRetryable reports whether a read should be attempted again
func IsRetryable(err error) bool {
	e, ok := asError(err)
	return ok && e.Retryable
}

// ShortMessage returns a one-line message suitable for an alert.
func ShortMessage(err error) string {
	e, ok := asError(err)
	if !ok {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeTimeout:
		return "Service not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Service refused connection - is the server running?"
	case ErrTypeDNS:
		return "Cannot resolve service hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeHTTP:
		return fmt.Sprintf("Service error (HTTP %d)", e.StatusCode)
	case ErrTypeParse:
		return "Failed to parse service response"
	case ErrTypeValidation:
		if e.Body != "" {
			return "Rejected: " + e.Body
		}
		return e.Message
	default:
		return e.Message
	}
}

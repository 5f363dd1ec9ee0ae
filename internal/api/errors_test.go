package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    string
	}{
		{ErrTypeNetwork, "Network Error"},
		{ErrTypeTimeout, "Timeout"},
		{ErrTypeConnectionRefused, "Connection Refused"},
		{ErrTypeDNS, "DNS Error"},
		{ErrTypeHTTP, "HTTP Error"},
		{ErrTypeParse, "Parse Error"},
		{ErrTypeValidation, "Validation Error"},
		{ErrTypeUnknown, "Unknown Error"},
		{ErrorType(42), "ErrorType(42)"},
	}

	for _, tt := range tests {
		if got := tt.errType.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.errType, got, tt.want)
		}
	}
}

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{
			name:      "timeout",
			err:       os.ErrDeadlineExceeded,
			wantType:  ErrTypeTimeout,
			retryable: true,
		},
		{
			name:      "context deadline",
			err:       context.DeadlineExceeded,
			wantType:  ErrTypeTimeout,
			retryable: true,
		},
		{
			name:     "context canceled",
			err:      context.Canceled,
			wantType: ErrTypeUnknown,
		},
		{
			name:     "dns",
			err:      &net.DNSError{Name: "shoplist.invalid", Err: "no such host"},
			wantType: ErrTypeDNS,
		},
		{
			name:      "connection refused",
			err:       &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			wantType:  ErrTypeConnectionRefused,
			retryable: true,
		},
		{
			name: "refused wrapped in url error",
			err: &url.Error{Op: "Get", URL: "http://localhost:1", Err: &net.OpError{
				Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
			}},
			wantType:  ErrTypeConnectionRefused,
			retryable: true,
		},
		{
			name:      "generic",
			err:       errors.New("connection reset"),
			wantType:  ErrTypeNetwork,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", got.Retryable, tt.retryable)
			}
		})
	}

	if ClassifyNetworkError(nil) != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestNewHTTPError(t *testing.T) {
	tests := []struct {
		status    int
		wantType  ErrorType
		retryable bool
	}{
		{400, ErrTypeHTTP, false},
		{404, ErrTypeHTTP, false},
		{422, ErrTypeValidation, false},
		{500, ErrTypeHTTP, true},
		{503, ErrTypeHTTP, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := NewHTTPError(tt.status, []byte("details"))
			if err.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", err.Type, tt.wantType)
			}
			if err.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", err.Retryable, tt.retryable)
			}
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
			if !strings.Contains(err.Error(), "details") {
				t.Errorf("Error() = %q, missing body excerpt", err.Error())
			}
		})
	}
}

func TestNewHTTPError_TruncatesBody(t *testing.T) {
	err := NewHTTPError(500, []byte(strings.Repeat("x", 1000)))
	if len(err.Body) != maxBodyExcerpt+len("...") {
		t.Errorf("len(Body) = %d, want %d", len(err.Body), maxBodyExcerpt+3)
	}
}

func TestErrorHelpers_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("saving Weekdays: %w", NewHTTPError(422, nil))

	if !IsValidationError(wrapped) {
		t.Error("IsValidationError should see through wrapping")
	}
	if IsHTTPError(wrapped) {
		t.Error("422 is a validation error, not a generic HTTP error")
	}
	if IsNetworkError(wrapped) {
		t.Error("IsNetworkError should be false for HTTP errors")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewParseError("bad json", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestShortMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&Error{Type: ErrTypeTimeout}, "Service not responding (timeout)"},
		{&Error{Type: ErrTypeConnectionRefused}, "Service refused connection - is the server running?"},
		{NewHTTPError(500, nil), "Service error (HTTP 500)"},
		{NewHTTPError(422, []byte("negative amount")), "Rejected: negative amount"},
		{NewValidationError("list name is required"), "list name is required"},
		{errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		if got := ShortMessage(tt.err); got != tt.want {
			t.Errorf("ShortMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrEmptyResponse is returned by providers when the backend answered
// successfully but the answer carried no text at all.
var ErrEmptyResponse = errors.New("ai: backend returned an empty response")

// TransportError describes a failed round trip to a model backend.
//
// StatusCode is zero when no HTTP response was received (connection refused,
// DNS failure, timeout). Retryable records the classification made where the
// error was produced; see [IsTransient].
type TransportError struct {
	Provider   string
	StatusCode int
	Retryable  bool
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	prefix := "transport error"
	if e.Provider != "" {
		prefix = e.Provider + " " + prefix
	}

	detail := e.Message
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}

	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", prefix, e.StatusCode, detail)
	}
	return fmt.Sprintf("%s: %s", prefix, detail)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewStatusError builds a TransportError for a non-2xx HTTP answer. The
// retry classification follows [IsTransientStatus].
func NewStatusError(provider string, statusCode int, message string) *TransportError {
	return &TransportError{
		Provider:   provider,
		StatusCode: statusCode,
		Retryable:  IsTransientStatus(statusCode),
		Message:    message,
	}
}

// NewNetworkError wraps an error that happened before any HTTP status was
// received. Caller cancellation is never retryable; everything else at this
// layer (refused connections, resets, timeouts) is.
func NewNetworkError(provider string, err error) *TransportError {
	return &TransportError{
		Provider:  provider,
		Retryable: !errors.Is(err, context.Canceled),
		Err:       err,
	}
}

// NewClientError wraps a failure an SDK reported without an HTTP status.
// Unlike [NewNetworkError] it only marks network failures and deadline
// expiry as retryable; a response that could not be decoded, for example,
// fails the same way on every attempt.
func NewClientError(provider string, err error) *TransportError {
	var netErr net.Error
	retryable := !errors.Is(err, context.Canceled) &&
		(errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr))

	return &TransportError{
		Provider:  provider,
		Retryable: retryable,
		Err:       err,
	}
}

// IsTransientStatus reports whether an HTTP status code is worth retrying:
// request timeout (408), too early (425), rate limiting (429) and every 5xx.
func IsTransientStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return true
	}
	return statusCode >= 500 && statusCode <= 599
}

// IsTransient is the default retry classifier. It honours the classification
// stored on a *TransportError, treats deadline expiry and net.Error timeouts
// as transient, and everything else (including context cancellation) as fatal.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Retryable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

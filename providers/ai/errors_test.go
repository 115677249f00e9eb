package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
)

func TestIsTransientStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{200, false},
		{400, false},
		{401, false},
		{403, false},
		{404, false},
		{408, true},
		{425, true},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{529, true},
		{600, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			if got := IsTransientStatus(tt.status); got != tt.want {
				t.Errorf("IsTransientStatus(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

// timeoutErr satisfies net.Error.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "5xx status", err: NewStatusError("ollama", 503, "unavailable"), want: true},
		{name: "401 status", err: NewStatusError("ollama", 401, "unauthorized"), want: false},
		{name: "wrapped 429", err: fmt.Errorf("send: %w", NewStatusError("openai", 429, "slow down")), want: true},
		{name: "network error", err: NewNetworkError("ollama", errors.New("connection refused")), want: true},
		{name: "network error from cancellation", err: NewNetworkError("ollama", context.Canceled), want: false},
		{name: "bare cancellation", err: context.Canceled, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "net.Error", err: fmt.Errorf("dial: %w", timeoutErr{}), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "decode failure", err: errors.New("error parsing response json: unexpected end of JSON input"), want: false},
		{name: "net.Error", err: fmt.Errorf("post: %w", timeoutErr{}), want: true},
		{name: "deadline exceeded", err: fmt.Errorf("post: %w", context.DeadlineExceeded), want: true},
		{name: "cancellation", err: fmt.Errorf("post: %w", context.Canceled), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewClientError("openai", tt.err)
			if err.Retryable != tt.want {
				t.Errorf("Retryable = %v, want %v", err.Retryable, tt.want)
			}
			if IsTransient(err) != tt.want {
				t.Errorf("IsTransient = %v, want %v", IsTransient(err), tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("client error should unwrap to its cause")
			}
		})
	}
}

func TestTransportError_Message(t *testing.T) {
	statusErr := NewStatusError("ollama", 502, "bad gateway")
	if got := statusErr.Error(); got != "ollama transport error: status 502: bad gateway" {
		t.Errorf("unexpected message: %q", got)
	}

	cause := errors.New("connection refused")
	networkErr := NewNetworkError("", cause)
	if !strings.Contains(networkErr.Error(), "connection refused") {
		t.Errorf("network error should carry its cause, got %q", networkErr.Error())
	}
	if !errors.Is(networkErr, cause) {
		t.Error("network error should unwrap to its cause")
	}
}

package ai

import (
	"context"
)

// Provider is the interface every model backend must satisfy. It covers a
// single text-in/text-out round trip; conversation state, tools and streaming
// are intentionally absent.
type Provider interface {
	// Name returns a short identifier for the backend, used in logs.
	Name() string

	// Generate sends the prompt to the backend and returns the completed text.
	// Failures to reach the backend, or non-success responses from it, are
	// returned as *TransportError so callers can decide whether to retry.
	Generate(ctx context.Context, request GenerateRequest) (*GenerateResponse, error)
}

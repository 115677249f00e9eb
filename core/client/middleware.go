package client

import (
	"context"

	"github.com/leofalp/hitsfinder/providers/ai"
)

// SendFunc sends a single prompt to the model backend and returns the
// completed response. It is the base unit threaded through the middleware
// chain.
type SendFunc func(ctx context.Context, request ai.GenerateRequest) (*ai.GenerateResponse, error)

// Middleware intercepts and optionally transforms requests and responses.
// Each Middleware receives the next SendFunc in the chain and returns a new
// SendFunc that wraps it. Middlewares are applied outermost-first: the first
// middleware in the slice is the outermost wrapper.
type Middleware func(next SendFunc) SendFunc

// MiddlewareConfig is one entry of the chain. The Send field is required; a
// nil Send causes [New] to return a descriptive error.
type MiddlewareConfig struct {
	Send Middleware
}

// buildSendChain constructs the linear middleware chain from the slice of
// MiddlewareConfig values. The base function calls the provider directly.
// Middlewares are applied in reverse order so that the first entry in the
// slice becomes the outermost wrapper, i.e. the first to execute on an
// incoming request.
func buildSendChain(provider ai.Provider, middlewares []MiddlewareConfig) SendFunc {
	var chain SendFunc = func(ctx context.Context, request ai.GenerateRequest) (*ai.GenerateResponse, error) {
		return provider.Generate(ctx, request)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i].Send(chain)
	}

	return chain
}

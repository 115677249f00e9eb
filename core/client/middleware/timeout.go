package middleware

import (
	"context"
	"time"

	"github.com/leofalp/hitsfinder/core/client"
	"github.com/leofalp/hitsfinder/providers/ai"
)

// NewTimeoutMiddleware creates a MiddlewareConfig that enforces a per-request
// deadline on provider calls. The context is canceled once the provider
// returns or the deadline expires. A non-positive timeout disables the
// middleware.
//
// If the caller supplies a context that already has a shorter deadline, that
// shorter deadline wins as per normal context semantics.
func NewTimeoutMiddleware(timeout time.Duration) client.MiddlewareConfig {
	return client.MiddlewareConfig{Send: buildSendTimeout(timeout)}
}

// buildSendTimeout constructs the send middleware that adds a deadline.
func buildSendTimeout(timeout time.Duration) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		if timeout <= 0 {
			return next
		}

		return func(ctx context.Context, request ai.GenerateRequest) (*ai.GenerateResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}

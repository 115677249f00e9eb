// Package middleware provides built-in middleware implementations for the
// hitsfinder client. Each middleware is constructed via a New* function that
// returns a [client.MiddlewareConfig] ready to be passed to
// [client.WithMiddleware].
//
// # Available Middleware
//
//   - [NewRetryMiddleware]: Retries transient provider failures with
//     exponential backoff and jitter. Classification defaults to
//     [ai.IsTransient].
//
//   - [NewTimeoutMiddleware]: Adds a per-request deadline via
//     context.WithTimeout, so a stalled backend does not block the caller
//     indefinitely.
//
//   - [NewLoggingMiddleware]: Emits structured slog log entries before and
//     after every provider call, with three verbosity levels (Minimal,
//     Standard, Verbose).
//
// # Usage
//
//	c, err := client.New(provider,
//	    client.WithMiddleware(
//	        middleware.NewRetryMiddleware(middleware.RetryConfig{MaxAttempts: 3}),
//	        middleware.NewTimeoutMiddleware(30*time.Second),
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	    ),
//	)
//
// Middlewares execute outermost-first. In the example above each retry
// attempt gets its own timeout, and every attempt is logged:
//
//	Retry (outermost) → Timeout → Logging → Provider
package middleware

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/leofalp/hitsfinder/core/client"
	"github.com/leofalp/hitsfinder/core/retry"
	"github.com/leofalp/hitsfinder/providers/ai"
)

// RetryConfig holds the tuning parameters for the retry middleware. Zero values
// are replaced with the defaults documented below when NewRetryMiddleware is called.
type RetryConfig struct {
	// MaxAttempts is the total number of provider calls, including the first
	// one. A value of 3 means at most 2 retries.
	// Default: 3.
	MaxAttempts int

	// InitialBackoff is the wait duration before the first retry attempt.
	// Default: 1s.
	InitialBackoff time.Duration

	// MaxBackoff caps the computed backoff so it never exceeds this value.
	// Default: 30s.
	MaxBackoff time.Duration

	// BackoffFactor is the exponential growth multiplier applied to InitialBackoff
	// on successive retries (backoff = min(InitialBackoff * BackoffFactor^attempt, MaxBackoff)).
	// Default: 2.0.
	BackoffFactor float64

	// JitterFraction adds random noise to the computed backoff in the range
	// [0, JitterFraction * backoff]. Zero disables jitter.
	JitterFraction float64

	// RetryableFunc returns true when an error should trigger a retry.
	// Default: [ai.IsTransient].
	RetryableFunc func(error) bool

	// Logger, when set, receives a warning before every retry.
	Logger *slog.Logger
}

// applyRetryDefaults fills in zero-valued fields in config with sensible defaults.
func applyRetryDefaults(config *RetryConfig) {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}

	if config.InitialBackoff <= 0 {
		config.InitialBackoff = time.Second
	}

	if config.MaxBackoff <= 0 {
		config.MaxBackoff = 30 * time.Second
	}

	if config.BackoffFactor <= 0 {
		config.BackoffFactor = 2.0
	}

	if config.RetryableFunc == nil {
		config.RetryableFunc = ai.IsTransient
	}
}

// policy converts the middleware configuration into a retry policy.
func (config RetryConfig) policy(ctx context.Context, model string) retry.Policy {
	policy := retry.Policy{
		MaxAttempts:    config.MaxAttempts,
		BaseDelay:      config.InitialBackoff,
		MaxDelay:       config.MaxBackoff,
		Multiplier:     config.BackoffFactor,
		JitterFraction: config.JitterFraction,
		Retryable:      config.RetryableFunc,
	}

	if config.Logger != nil {
		logger := config.Logger
		policy.OnRetry = func(attempt int, err error, delay time.Duration) {
			logger.WarnContext(ctx, "llm send retry",
				slog.String("model", model),
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", config.MaxAttempts),
				slog.Duration("backoff", delay),
				slog.String("error", err.Error()),
			)
		}
	}

	return policy
}

// NewRetryMiddleware constructs a MiddlewareConfig that retries failed send
// requests according to the supplied RetryConfig. Zero-valued fields in config
// are replaced with safe defaults (see RetryConfig documentation).
//
// A non-retryable error is returned unchanged after the first attempt. On
// exhaustion the returned error wraps both [ErrRetryExhausted] and the last
// provider error, allowing callers to unwrap either. Cancellation while
// waiting returns ctx.Err().
func NewRetryMiddleware(config RetryConfig) client.MiddlewareConfig {
	applyRetryDefaults(&config)

	sendMiddleware := client.Middleware(func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.GenerateRequest) (*ai.GenerateResponse, error) {
			return retry.Do(ctx, config.policy(ctx, request.Model), func(ctx context.Context) (*ai.GenerateResponse, error) {
				return next(ctx, request)
			})
		}
	})

	return client.MiddlewareConfig{Send: sendMiddleware}
}

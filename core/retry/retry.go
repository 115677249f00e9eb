package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Policy holds the tuning parameters of a retry loop. Zero values are
// replaced with the defaults documented below.
type Policy struct {
	// MaxAttempts is the total number of calls made, including the first one.
	// Default: 3.
	MaxAttempts int

	// BaseDelay is the wait before the second attempt.
	// Default: 1s.
	BaseDelay time.Duration

	// MaxDelay caps the computed delay.
	// Default: 30s.
	MaxDelay time.Duration

	// Multiplier is the exponential growth factor:
	// delay(n) = min(BaseDelay * Multiplier^n, MaxDelay), n counted from 0.
	// Default: 2.0.
	Multiplier float64

	// JitterFraction adds random noise in [0, JitterFraction * delay].
	// Zero disables jitter.
	JitterFraction float64

	// Retryable reports whether a failure should be retried. A nil Retryable
	// retries every error.
	Retryable func(error) bool

	// OnRetry, when set, is called before each wait with the 1-based number of
	// the attempt that just failed, its error and the upcoming delay.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// withDefaults returns a copy of p with zero-valued fields filled in.
func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}

	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}

	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}

	if p.Multiplier <= 0 {
		p.Multiplier = 2.0
	}

	if p.Retryable == nil {
		p.Retryable = func(error) bool { return true }
	}

	return p
}

// Delay returns the wait that follows the given failed attempt (0-indexed):
// min(BaseDelay * Multiplier^attempt, MaxDelay) plus jitter.
func (p Policy) Delay(attempt int) time.Duration {
	p = p.withDefaults()

	base := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt))
	if base > float64(p.MaxDelay) {
		base = float64(p.MaxDelay)
	}

	jitter := base * p.JitterFraction * rand.Float64() //nolint:gosec // non-cryptographic jitter is intentional
	return time.Duration(base + jitter)
}

// Do calls op until it succeeds, fails with a non-retryable error, the
// attempts run out, or ctx is done.
//
// A non-retryable error is returned unchanged. On exhaustion the returned
// error wraps both [ErrExhausted] and the last failure. Cancellation while
// waiting between attempts returns ctx.Err().
func Do[T any](ctx context.Context, policy Policy, op func(ctx context.Context) (T, error)) (T, error) {
	policy = policy.withDefaults()

	var zero T
	var lastErr error

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := policy.Delay(attempt - 1)
			if policy.OnRetry != nil {
				policy.OnRetry(attempt, lastErr, delay)
			}

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !policy.Retryable(err) {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, policy.MaxAttempts, lastErr)
}

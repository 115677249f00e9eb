package middleware

import "github.com/leofalp/hitsfinder/core/retry"

// ErrRetryExhausted is returned by the retry middleware when all attempts
// have been consumed without a successful response from the provider. The
// error is wrapped with the last underlying provider error so callers can use
// [errors.Is] / [errors.As] to inspect the root cause.
//
// It is the same value as [retry.ErrExhausted].
//
// Example:
//
//	if errors.Is(err, middleware.ErrRetryExhausted) {
//	    // all attempts failed
//	}
var ErrRetryExhausted = retry.ErrExhausted

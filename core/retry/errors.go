package retry

import "errors"

// ErrExhausted is returned by [Do] when every allowed attempt failed with a
// retryable error. The returned error also wraps the last failure, so callers
// can use [errors.Is] / [errors.As] to inspect the root cause.
var ErrExhausted = errors.New("retry: all attempts exhausted")

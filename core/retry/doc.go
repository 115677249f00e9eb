// Package retry runs a fallible operation under a bounded exponential-backoff
// policy. It knows nothing about transports: the caller supplies the
// operation and a classifier that separates retry-worthy failures from
// fail-fast ones.
//
//	policy := retry.Policy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2}
//	text, err := retry.Do(ctx, policy, func(ctx context.Context) (string, error) {
//	    return call(ctx)
//	})
//
// Each call to [Do] keeps its own attempt counter, so a single Policy value can
// be shared by concurrent callers.
package retry

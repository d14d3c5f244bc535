package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// RetryPolicy configures retry behavior. It is a pure value type; the
// executor holds no mutable state between calls.
type RetryPolicy struct {
	// MaxAttempts is the maximum number of attempts including the first.
	// Default: 3
	MaxAttempts int

	// BaseDelay is the delay before the first retry.
	// Default: 1s
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries, jitter included.
	// Default: 30s
	MaxDelay time.Duration

	// Multiplier is the exponential backoff base.
	// Default: 2.0
	Multiplier float64

	// JitterFraction perturbs each delay by a random amount in
	// [0, JitterFraction*delay). Zero disables jitter.
	JitterFraction float64

	// RetryIf classifies failures. Only errors it accepts consume
	// further attempts; everything else propagates immediately.
	// Default: all non-nil errors are retried.
	RetryIf func(err error) bool

	// OnRetry is called before each backoff sleep.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Retry executes operations under a RetryPolicy.
type Retry struct {
	policy RetryPolicy
}

// NewRetry creates a retry executor, applying policy defaults.
func NewRetry(policy RetryPolicy) *Retry {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 3
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = time.Second
	}
	if policy.MaxDelay <= 0 {
		policy.MaxDelay = 30 * time.Second
	}
	if policy.Multiplier <= 0 {
		policy.Multiplier = 2.0
	}
	if policy.RetryIf == nil {
		policy.RetryIf = func(err error) bool { return err != nil }
	}
	return &Retry{policy: policy}
}

// Execute invokes op, retrying retryable failures with exponential backoff
// until it succeeds or attempts are exhausted. The error from the final
// attempt is returned unchanged; retries defer the underlying failure, they
// never rewrite it.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < r.policy.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.policy.RetryIf(err) {
			return err
		}
		if attempt == r.policy.MaxAttempts-1 {
			break
		}

		// The first backoff uses BaseDelay * Multiplier^0.
		delay := r.Delay(attempt)
		if r.policy.OnRetry != nil {
			r.policy.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// Delay returns the backoff before the n-th retry (0-indexed):
// min(BaseDelay * Multiplier^n, MaxDelay), perturbed by jitter if
// configured. The cap holds after jitter.
func (r *Retry) Delay(n int) time.Duration {
	delay := time.Duration(float64(r.policy.BaseDelay) * math.Pow(r.policy.Multiplier, float64(n)))
	if delay <= 0 || delay > r.policy.MaxDelay {
		// Negative means the float arithmetic overflowed.
		delay = r.policy.MaxDelay
	}

	if r.policy.JitterFraction > 0 {
		span := int64(r.policy.JitterFraction * float64(delay))
		if span > 0 {
			// #nosec G404 -- jitter is non-cryptographic timing variance.
			delay += time.Duration(rand.Int64N(span))
		}
		if delay > r.policy.MaxDelay {
			delay = r.policy.MaxDelay
		}
	}

	return delay
}

// Policy returns the effective policy with defaults applied.
func (r *Retry) Policy() RetryPolicy {
	return r.policy
}

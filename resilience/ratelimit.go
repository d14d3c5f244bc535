package resilience

import (
	"context"
	"sync"
	"time"
)

// RateLimiterConfig configures the token bucket.
type RateLimiterConfig struct {
	// RefillRate is the number of tokens accrued per second.
	// Default: 10
	RefillRate float64

	// Capacity is the maximum token count (burst size).
	// Default: 10
	Capacity int

	// WaitOnLimit suspends callers until tokens accrue instead of
	// failing fast with ErrRateLimitExceeded.
	// Default: false
	WaitOnLimit bool
}

// RateLimiter is a token-bucket rate limiter. Tokens accrue continuously at
// RefillRate up to Capacity; each admitted call consumes tokens. All
// mutation of the bucket happens under a single mutex.
type RateLimiter struct {
	config RateLimiterConfig

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter with a full bucket.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.RefillRate <= 0 {
		config.RefillRate = 10
	}
	if config.Capacity <= 0 {
		config.Capacity = 10
	}

	return &RateLimiter{
		config:     config,
		tokens:     float64(config.Capacity),
		lastRefill: time.Now(),
	}
}

// Allow reports whether one token was available and consumes it.
func (rl *RateLimiter) Allow() bool {
	return rl.AllowN(1)
}

// AllowN reports whether n tokens were available and consumes them.
func (rl *RateLimiter) AllowN(n int) bool {
	ok, _ := rl.takeN(n)
	return ok
}

// takeN deducts n tokens if available. On shortfall it returns the wait
// needed for enough tokens to accrue.
func (rl *RateLimiter) takeN(n int) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()

	if rl.tokens >= float64(n) {
		rl.tokens -= float64(n)
		return true, 0
	}

	shortfall := float64(n) - rl.tokens
	return false, time.Duration(shortfall / rl.config.RefillRate * float64(time.Second))
}

// Wait blocks until one token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.WaitN(ctx, 1)
}

// WaitN blocks until n tokens are available or ctx is done. The suspension
// is computed from the shortfall, not polled, so waiters do not busy-spin;
// the check is re-run after each sleep because concurrent callers may have
// drained the refill.
func (rl *RateLimiter) WaitN(ctx context.Context, n int) error {
	if n > rl.config.Capacity {
		return ErrRateLimitExceeded
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ok, wait := rl.takeN(n)
		if ok {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Execute runs op if admitted by the rate limit. With WaitOnLimit set the
// caller suspends until tokens accrue; otherwise saturation fails fast.
func (rl *RateLimiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := rl.Admit(ctx); err != nil {
		return err
	}
	return op(ctx)
}

// Admit consumes one token, suspending or failing fast per config. Tokens
// consumed by a call that is later cancelled are not refunded.
func (rl *RateLimiter) Admit(ctx context.Context) error {
	if rl.config.WaitOnLimit {
		return rl.Wait(ctx)
	}
	if !rl.Allow() {
		return ErrRateLimitExceeded
	}
	return nil
}

func (rl *RateLimiter) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	rl.lastRefill = now

	rl.tokens += elapsed.Seconds() * rl.config.RefillRate
	if rl.tokens > float64(rl.config.Capacity) {
		rl.tokens = float64(rl.config.Capacity)
	}
}

// Tokens returns the current token count after refill.
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refillLocked()
	return rl.tokens
}

package resilience

import (
	"context"
	"time"
)

// Timeout bounds the duration of a single attempt. The deadline applies per
// attempt, not per logical call: each retry gets a fresh budget.
type Timeout struct {
	limit time.Duration
}

// NewTimeout creates a timeout wrapper.
// A non-positive limit defaults to 30 seconds.
func NewTimeout(limit time.Duration) *Timeout {
	if limit <= 0 {
		limit = 30 * time.Second
	}
	return &Timeout{limit: limit}
}

// Execute runs op under the deadline. Exceeding it returns ErrTimeout after
// approximately the limit, even when op ignores its context; op's context
// is cancelled so a cooperative op stops promptly.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.limit)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return ErrTimeout
		}
		return ctx.Err()
	}
}

// Limit returns the per-attempt deadline.
func (t *Timeout) Limit() time.Duration {
	return t.limit
}

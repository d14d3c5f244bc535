package resilience

import (
	"context"
	"sync"
	"time"
)

// Operation is one guarded unit of work.
type Operation = func(ctx context.Context) error

// Stage is a middleware that guards an operation. Every pattern in this
// package implements it, so composition is an ordered list of stages
// rather than nested wrapping.
type Stage interface {
	Execute(ctx context.Context, op Operation) error
}

// PipelineConfig configures every stage of a reliability pipeline.
type PipelineConfig struct {
	RateLimit RateLimiterConfig
	Bulkhead  BulkheadConfig
	Breaker   CircuitBreakerConfig
	Retry     RetryPolicy

	// AttemptTimeout bounds each attempt inside the retry loop.
	// Default: 30s (see NewTimeout).
	AttemptTimeout time.Duration
}

// DefaultPipelineConfig returns a config with every stage at its defaults.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{}
}

// Pipeline composes admission control, endpoint protection, and retry into
// one guarded invocation:
//
//	Rate Limiter -> Bulkhead -> Circuit Breaker -> Retry -> Timeout -> op
//
// Admission control rejects excess load before it touches endpoint failure
// bookkeeping; the breaker fast-fails calls to a known-bad endpoint before
// any attempt; only calls that clear all three gates are retried. The
// breaker observes one logical outcome per call, not one per attempt.
//
// Circuit breakers are keyed per logical endpoint, so the endpoint is named
// at call time rather than fixed at construction.
type Pipeline struct {
	limiter  *RateLimiter
	bulkhead *Bulkhead
	breakers *BreakerGroup
	retry    *Retry
	timeout  *Timeout
}

// NewPipeline creates a pipeline, applying defaults per stage.
func NewPipeline(config PipelineConfig) *Pipeline {
	return &Pipeline{
		limiter:  NewRateLimiter(config.RateLimit),
		bulkhead: NewBulkhead(config.Bulkhead),
		breakers: NewBreakerGroup(config.Breaker),
		retry:    NewRetry(config.Retry),
		timeout:  NewTimeout(config.AttemptTimeout),
	}
}

// Execute runs op for the given endpoint through every stage in order.
func (p *Pipeline) Execute(ctx context.Context, endpoint string, op Operation) error {
	stages := []Stage{
		p.limiter,
		p.bulkhead,
		p.breakers.Get(endpoint),
		p.retry,
		p.timeout,
	}

	execute := op
	for i := len(stages) - 1; i >= 0; i-- {
		stage, inner := stages[i], execute
		execute = func(ctx context.Context) error {
			return stage.Execute(ctx, inner)
		}
	}
	return execute(ctx)
}

// Admission is the set of resources a long-lived call holds after clearing
// the admission and breaker gates: rate-limiter tokens (not refundable), a
// bulkhead permit, and a breaker slot. The caller must settle it exactly
// once when the call terminates; Settle on every exit path is safe because
// only the first settlement counts.
type Admission struct {
	permit  *Permit
	breaker *CircuitBreaker
	once    sync.Once
}

// Admit clears the rate limiter, bulkhead, and circuit breaker for one call
// whose body outlives the handshake (a token stream). On rejection nothing
// is held.
func (p *Pipeline) Admit(ctx context.Context, endpoint string) (*Admission, error) {
	if err := p.limiter.Admit(ctx); err != nil {
		return nil, err
	}

	permit, err := p.bulkhead.Acquire(ctx)
	if err != nil {
		// Consumed tokens are not refunded on a rejected call.
		return nil, err
	}

	breaker := p.breakers.Get(endpoint)
	if err := breaker.Allow(); err != nil {
		permit.Release()
		return nil, err
	}

	return &Admission{permit: permit, breaker: breaker}, nil
}

// Settle records the call outcome with the circuit breaker and releases the
// bulkhead permit. Idempotent.
func (a *Admission) Settle(outcome Outcome) {
	a.once.Do(func() {
		a.breaker.RecordOutcome(outcome)
		a.permit.Release()
	})
}

// Retry returns the pipeline's retry executor, for callers that drive
// attempts themselves under an admission.
func (p *Pipeline) Retry() *Retry {
	return p.retry
}

// Timeout returns the pipeline's per-attempt timeout.
func (p *Pipeline) Timeout() *Timeout {
	return p.timeout
}

// Breakers returns the pipeline's breaker group, for health reporting.
func (p *Pipeline) Breakers() *BreakerGroup {
	return p.breakers
}

// Metrics returns a snapshot of admission-control statistics.
func (p *Pipeline) Metrics() PipelineMetrics {
	return PipelineMetrics{
		Bulkhead: p.bulkhead.Metrics(),
		Tokens:   p.limiter.Tokens(),
		Breakers: p.breakers.States(),
	}
}

// PipelineMetrics contains pipeline statistics.
type PipelineMetrics struct {
	Bulkhead BulkheadMetrics
	Tokens   float64
	Breakers map[string]State
}

// Package resilience provides the reliability pipeline that guards LLM API
// calls: rate limiting, concurrency isolation, endpoint circuit breaking,
// and retry with exponential backoff.
//
// # Patterns
//
//   - Rate Limiter: token-bucket admission control on call rate.
//
//   - Bulkhead: admission control on in-flight call count, with an
//     optional bounded FIFO wait queue.
//
//   - Circuit Breaker: per-endpoint failure-aware gate that fails calls
//     fast while an endpoint is presumed unhealthy.
//
//   - Retry: exponential backoff with jitter applied to a single admitted
//     call; the final attempt's error surfaces unchanged.
//
//   - Timeout: per-attempt deadline.
//
// # Composition
//
// Each pattern implements the Stage interface and can be used alone. The
// Pipeline composes them in a fixed, auditable order:
//
//	pipeline := resilience.NewPipeline(resilience.PipelineConfig{
//	    RateLimit: resilience.RateLimiterConfig{RefillRate: 5, Capacity: 10},
//	    Bulkhead:  resilience.BulkheadConfig{MaxConcurrent: 8},
//	    Breaker:   resilience.CircuitBreakerConfig{FailureThreshold: 5},
//	    Retry:     resilience.RetryPolicy{MaxAttempts: 3},
//	})
//
//	err := pipeline.Execute(ctx, "acme/acme-large", func(ctx context.Context) error {
//	    return callEndpoint(ctx)
//	})
//
// Admission control rejects excess load before it reaches endpoint failure
// bookkeeping, and the circuit breaker sees one logical outcome per call no
// matter how many attempts the retry stage consumed.
//
// Calls whose work outlives the handshake (token streams) use
// Pipeline.Admit to hold admission resources for the life of the stream and
// settle them exactly once at termination.
package resilience

package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

// BenchmarkCircuitBreaker_Execute_Closed measures happy path execution.
func BenchmarkCircuitBreaker_Execute_Closed(b *testing.B) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 100,
		ResetTimeout:     time.Minute,
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}
}

// BenchmarkCircuitBreaker_StateCheck measures state inspection overhead.
func BenchmarkCircuitBreaker_StateCheck(b *testing.B) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 5,
		ResetTimeout:     time.Minute,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.State()
	}
}

// BenchmarkCircuitBreaker_Metrics measures metrics retrieval.
func BenchmarkCircuitBreaker_Metrics(b *testing.B) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 5,
		ResetTimeout:     time.Minute,
	})
	ctx := context.Background()

	// Generate some activity
	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Metrics()
	}
}

// BenchmarkCircuitBreaker_Concurrent measures parallel execution.
func BenchmarkCircuitBreaker_Concurrent(b *testing.B) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1000,
		ResetTimeout:     time.Minute,
	})
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = cb.Execute(ctx, func(ctx context.Context) error {
				return nil
			})
		}
	})
}

// BenchmarkBreakerGroup_Get measures per-endpoint breaker lookup.
func BenchmarkBreakerGroup_Get(b *testing.B) {
	g := NewBreakerGroup(CircuitBreakerConfig{})
	g.Get("acme/large")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Get("acme/large")
	}
}

// BenchmarkRetry_NoRetries measures retry with immediate success.
func BenchmarkRetry_NoRetries(b *testing.B) {
	retry := NewRetry(RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = retry.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}
}

// BenchmarkRetry_Delay measures backoff computation.
func BenchmarkRetry_Delay(b *testing.B) {
	retry := NewRetry(RetryPolicy{
		MaxAttempts:    5,
		BaseDelay:      100 * time.Millisecond,
		MaxDelay:       time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.2,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = retry.Delay(i % 5)
	}
}

// BenchmarkRateLimiter_Allow measures single token check.
func BenchmarkRateLimiter_Allow(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{
		RefillRate: 1000000, // Very high rate to avoid blocking
		Capacity:   1000000,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rl.Allow()
	}
}

// BenchmarkRateLimiter_AllowN measures batch token check.
func BenchmarkRateLimiter_AllowN(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{
		RefillRate: 1000000,
		Capacity:   1000000,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rl.AllowN(10)
	}
}

// BenchmarkRateLimiter_Tokens measures token count retrieval.
func BenchmarkRateLimiter_Tokens(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{
		RefillRate: 100,
		Capacity:   10,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rl.Tokens()
	}
}

// BenchmarkRateLimiter_Concurrent measures parallel token checks.
func BenchmarkRateLimiter_Concurrent(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{
		RefillRate: 1000000,
		Capacity:   1000000,
	})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = rl.Allow()
		}
	})
}

// BenchmarkBulkhead_Execute measures semaphore acquire/release.
func BenchmarkBulkhead_Execute(b *testing.B) {
	bh := NewBulkhead(BulkheadConfig{
		MaxConcurrent: 1000,
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bh.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}
}

// BenchmarkBulkhead_AcquireRelease measures acquire/release pair.
func BenchmarkBulkhead_AcquireRelease(b *testing.B) {
	bh := NewBulkhead(BulkheadConfig{
		MaxConcurrent: 1000,
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, _ := bh.Acquire(ctx)
		p.Release()
	}
}

// BenchmarkBulkhead_Metrics measures metrics retrieval.
func BenchmarkBulkhead_Metrics(b *testing.B) {
	bh := NewBulkhead(BulkheadConfig{
		MaxConcurrent: 10,
	})
	ctx := context.Background()

	// Hold some permits
	p1, _ := bh.Acquire(ctx)
	p2, _ := bh.Acquire(ctx)
	defer p1.Release()
	defer p2.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bh.Metrics()
	}
}

// BenchmarkBulkhead_Concurrent measures parallel semaphore operations.
func BenchmarkBulkhead_Concurrent(b *testing.B) {
	bh := NewBulkhead(BulkheadConfig{
		MaxConcurrent: 100,
	})
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = bh.Execute(ctx, func(ctx context.Context) error {
				return nil
			})
		}
	})
}

// BenchmarkTimeout_Execute_Fast measures fast execution path.
func BenchmarkTimeout_Execute_Fast(b *testing.B) {
	timeout := NewTimeout(time.Second)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = timeout.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}
}

// BenchmarkPipeline_Execute measures the fully composed stack.
func BenchmarkPipeline_Execute(b *testing.B) {
	p := NewPipeline(PipelineConfig{
		RateLimit: RateLimiterConfig{RefillRate: 1000000, Capacity: 1000000},
		Bulkhead:  BulkheadConfig{MaxConcurrent: 1000},
		Breaker:   CircuitBreakerConfig{FailureThreshold: 100, ResetTimeout: time.Minute},
		Retry:     RetryPolicy{MaxAttempts: 3, BaseDelay: 100 * time.Millisecond},
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Execute(ctx, "acme/large", func(ctx context.Context) error {
			return nil
		})
	}
}

// BenchmarkPipeline_AdmitSettle measures stream admission overhead.
func BenchmarkPipeline_AdmitSettle(b *testing.B) {
	p := NewPipeline(PipelineConfig{
		RateLimit: RateLimiterConfig{RefillRate: 1000000, Capacity: 1000000},
		Bulkhead:  BulkheadConfig{MaxConcurrent: 1000},
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		adm, _ := p.Admit(ctx, "acme/large")
		adm.Settle(OutcomeSuccess)
	}
}

// BenchmarkPipeline_Concurrent measures parallel pipeline usage.
func BenchmarkPipeline_Concurrent(b *testing.B) {
	p := NewPipeline(PipelineConfig{
		RateLimit: RateLimiterConfig{RefillRate: 1000000, Capacity: 1000000},
		Bulkhead:  BulkheadConfig{MaxConcurrent: 1000},
		Breaker:   CircuitBreakerConfig{FailureThreshold: 10000, ResetTimeout: time.Minute},
	})
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = p.Execute(ctx, "acme/large", func(ctx context.Context) error {
				return nil
			})
		}
	})
}

// BenchmarkState_String measures state string conversion.
func BenchmarkState_String(b *testing.B) {
	states := []State{StateClosed, StateOpen, StateHalfOpen}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = states[i%3].String()
	}
}

// BenchmarkErrorIs measures error checking with errors.Is.
func BenchmarkErrorIs(b *testing.B) {
	err := ErrCircuitOpen

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = errors.Is(err, ErrCircuitOpen)
	}
}

package health

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/modelgate/resilience"
)

// openBreaker drives the given endpoint's breaker to the open state.
func openBreaker(g *resilience.BreakerGroup, endpoint string, threshold int) {
	cb := g.Get(endpoint)
	for i := 0; i < threshold; i++ {
		cb.RecordOutcome(resilience.OutcomeFailure)
	}
}

// TestEndpointChecker_Name verifies the checker reports its configured name.
func TestEndpointChecker_Name(t *testing.T) {
	breakers := resilience.NewBreakerGroup(resilience.CircuitBreakerConfig{})
	checker := NewEndpointChecker("endpoints", breakers)

	if checker.Name() != "endpoints" {
		t.Errorf("expected name 'endpoints', got %q", checker.Name())
	}
}

// TestEndpointChecker_NoEndpoints verifies an empty group is healthy.
func TestEndpointChecker_NoEndpoints(t *testing.T) {
	breakers := resilience.NewBreakerGroup(resilience.CircuitBreakerConfig{})
	checker := NewEndpointChecker("endpoints", breakers)

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", result.Status)
	}
	if !strings.Contains(result.Message, "no endpoints") {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

// TestEndpointChecker_AllClosed verifies all-closed circuits report healthy.
func TestEndpointChecker_AllClosed(t *testing.T) {
	breakers := resilience.NewBreakerGroup(resilience.CircuitBreakerConfig{})
	breakers.Get("acme/large")
	breakers.Get("acme/small")
	checker := NewEndpointChecker("endpoints", breakers)

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", result.Status)
	}
	if len(result.Details) != 2 {
		t.Errorf("expected 2 endpoint details, got %d", len(result.Details))
	}
	if result.Details["acme/large"] != "closed" {
		t.Errorf("expected closed detail, got %v", result.Details["acme/large"])
	}
}

// TestEndpointChecker_OpenCircuitUnhealthy verifies an open circuit dominates.
func TestEndpointChecker_OpenCircuitUnhealthy(t *testing.T) {
	breakers := resilience.NewBreakerGroup(resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		ResetTimeout:     time.Minute,
	})
	breakers.Get("acme/large")
	openBreaker(breakers, "acme/small", 2)
	checker := NewEndpointChecker("endpoints", breakers)

	result := checker.Check(context.Background())
	if result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", result.Status)
	}
	if result.Details["acme/small"] != "open" {
		t.Errorf("expected open detail, got %v", result.Details["acme/small"])
	}
	if result.Details["acme/large"] != "closed" {
		t.Errorf("expected closed detail, got %v", result.Details["acme/large"])
	}
}

// TestEndpointChecker_HalfOpenDegraded verifies a probing circuit reports
// degraded when no circuit is fully open.
func TestEndpointChecker_HalfOpenDegraded(t *testing.T) {
	breakers := resilience.NewBreakerGroup(resilience.CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     5 * time.Millisecond,
	})
	openBreaker(breakers, "acme/large", 1)
	time.Sleep(10 * time.Millisecond)
	checker := NewEndpointChecker("endpoints", breakers)

	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", result.Status)
	}
	if result.Details["acme/large"] != "half-open" {
		t.Errorf("expected half-open detail, got %v", result.Details["acme/large"])
	}
}

// TestEndpointChecker_OpenDominates verifies one open circuit makes the
// whole checker unhealthy regardless of healthy neighbors.
func TestEndpointChecker_OpenDominates(t *testing.T) {
	breakers := resilience.NewBreakerGroup(resilience.CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     time.Minute,
	})
	openBreaker(breakers, "acme/large", 1)
	breakers.Get("acme/small")
	breakers.Get("zephyr/mini")
	checker := NewEndpointChecker("endpoints", breakers)

	result := checker.Check(context.Background())
	if result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", result.Status)
	}
}

// TestEndpointChecker_RecoveryRestoresHealthy verifies a closed-again circuit
// reports healthy.
func TestEndpointChecker_RecoveryRestoresHealthy(t *testing.T) {
	breakers := resilience.NewBreakerGroup(resilience.CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     time.Minute,
	})
	openBreaker(breakers, "acme/large", 1)
	breakers.Get("acme/large").Reset()
	checker := NewEndpointChecker("endpoints", breakers)

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy after reset, got %s", result.Status)
	}
}

// TestEndpointChecker_Info verifies per-endpoint state reporting.
func TestEndpointChecker_Info(t *testing.T) {
	breakers := resilience.NewBreakerGroup(resilience.CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     time.Minute,
	})
	breakers.Get("acme/large")
	openBreaker(breakers, "zephyr/mini", 1)
	checker := NewEndpointChecker("endpoints", breakers)

	info, err := checker.Info(context.Background())
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if len(info) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(info))
	}
	if info["acme/large"] != "closed" {
		t.Errorf("expected closed, got %v", info["acme/large"])
	}
	if info["zephyr/mini"] != "open" {
		t.Errorf("expected open, got %v", info["zephyr/mini"])
	}
}

// TestEndpointChecker_WithAggregator verifies the checker composes with the
// aggregator and HTTP readiness reporting.
func TestEndpointChecker_WithAggregator(t *testing.T) {
	breakers := resilience.NewBreakerGroup(resilience.CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     time.Minute,
	})
	breakers.Get("acme/large")

	agg := NewAggregator()
	agg.Register("endpoints", NewEndpointChecker("endpoints", breakers))

	results := agg.CheckAll(context.Background())
	if agg.OverallStatus(results) != StatusHealthy {
		t.Errorf("expected overall healthy, got %s", agg.OverallStatus(results))
	}

	openBreaker(breakers, "acme/large", 1)
	results = agg.CheckAll(context.Background())
	if agg.OverallStatus(results) != StatusUnhealthy {
		t.Errorf("expected overall unhealthy, got %s", agg.OverallStatus(results))
	}
}

// Package health reports the health of LLM endpoints and the components
// around them.
//
// A Checker is any component that can report its health status. The Status
// type represents the health state: Healthy, Degraded, or Unhealthy.
//
// The EndpointChecker derives endpoint health from circuit-breaker state:
// a closed circuit is healthy, a half-open circuit is degraded, and an open
// circuit is unhealthy.
//
//	checker := health.NewEndpointChecker("llm", client.Pipeline().Breakers())
//	result := checker.Check(ctx)
//	if result.Status == health.StatusUnhealthy {
//	    log.Printf("endpoints failing: %s", result.Message)
//	}
//
// # Aggregating Health Checks
//
// Use Aggregator to combine multiple health checks into a single composite
// check:
//
//	agg := health.NewAggregator()
//	agg.Register("endpoints", endpointChecker)
//	agg.Register("catalog", catalogChecker)
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
//
// # HTTP Endpoints
//
// The package provides HTTP handlers for common health check patterns:
//
//	// Liveness probe (for Kubernetes)
//	http.Handle("/healthz", health.LivenessHandler())
//
//	// Readiness probe with component checks
//	http.Handle("/readyz", health.ReadinessHandler(aggregator))
//
//	// Detailed health status
//	http.Handle("/health", health.DetailedHandler(aggregator))
package health

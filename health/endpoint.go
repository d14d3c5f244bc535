package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/modelgate/resilience"
)

// EndpointChecker reports the health of the LLM endpoints guarded by a
// breaker group. Circuit state maps directly onto health status: a closed
// circuit is healthy, a half-open circuit is degraded (a probe is deciding),
// and an open circuit is unhealthy.
type EndpointChecker struct {
	name     string
	breakers *resilience.BreakerGroup
}

// NewEndpointChecker creates a checker over the given breaker group.
func NewEndpointChecker(name string, breakers *resilience.BreakerGroup) *EndpointChecker {
	return &EndpointChecker{name: name, breakers: breakers}
}

// Name returns the name of this checker.
func (c *EndpointChecker) Name() string {
	return c.name
}

// Check reports the aggregate health of all known endpoints. The worst
// endpoint dominates; an endpoint only becomes known after its first call.
func (c *EndpointChecker) Check(ctx context.Context) Result {
	states := c.breakers.States()
	if len(states) == 0 {
		return Healthy("no endpoints called yet")
	}

	details := make(map[string]any, len(states))
	var open, halfOpen int
	for endpoint, state := range states {
		details[endpoint] = state.String()
		switch state {
		case resilience.StateOpen:
			open++
		case resilience.StateHalfOpen:
			halfOpen++
		}
	}

	switch {
	case open > 0:
		return Unhealthy(fmt.Sprintf("%d of %d endpoints have an open circuit", open, len(states)), nil).
			WithDetails(details)
	case halfOpen > 0:
		return Degraded(fmt.Sprintf("%d of %d endpoints are probing recovery", halfOpen, len(states))).
			WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("all %d endpoints closed", len(states))).
			WithDetails(details)
	}
}

// Info returns per-endpoint circuit states.
func (c *EndpointChecker) Info(ctx context.Context) (map[string]any, error) {
	states := c.breakers.States()
	info := make(map[string]any, len(states))
	for endpoint, state := range states {
		info[endpoint] = state.String()
	}
	return info, nil
}

var _ InfoChecker = (*EndpointChecker)(nil)

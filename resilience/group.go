package resilience

import "sync"

// BreakerGroup manages one circuit breaker per logical endpoint, created
// lazily with a shared config. Keying breakers per endpoint keeps failures
// on one endpoint from starving calls to another.
type BreakerGroup struct {
	config CircuitBreakerConfig

	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker
}

// NewBreakerGroup creates an empty breaker group.
func NewBreakerGroup(config CircuitBreakerConfig) *BreakerGroup {
	return &BreakerGroup{
		config:   config,
		breakers: make(map[string]*CircuitBreaker),
	}
}

// Get returns the breaker for endpoint, creating it on first use.
func (g *BreakerGroup) Get(endpoint string) *CircuitBreaker {
	g.mu.RLock()
	cb, ok := g.breakers[endpoint]
	g.mu.RUnlock()
	if ok {
		return cb
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if cb, ok := g.breakers[endpoint]; ok {
		return cb
	}
	cb = NewCircuitBreaker(g.config)
	g.breakers[endpoint] = cb
	return cb
}

// States returns a snapshot of every known endpoint's circuit state.
func (g *BreakerGroup) States() map[string]State {
	g.mu.RLock()
	defer g.mu.RUnlock()

	states := make(map[string]State, len(g.breakers))
	for endpoint, cb := range g.breakers {
		states[endpoint] = cb.State()
	}
	return states
}

package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the endpoint is presumed healthy.
	StateClosed State = iota
	// StateOpen means calls fail fast without reaching the endpoint.
	StateOpen
	// StateHalfOpen means a trial call is probing whether the endpoint
	// recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Outcome classifies how a guarded call ended for breaker bookkeeping.
type Outcome int

const (
	// OutcomeSuccess counts toward closing the circuit.
	OutcomeSuccess Outcome = iota
	// OutcomeFailure counts toward opening the circuit.
	OutcomeFailure
	// OutcomeIgnore counts as neither. Cancellations report this: an
	// abandoned call says nothing about endpoint health.
	OutcomeIgnore
)

// CircuitBreakerConfig configures a circuit breaker.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures before the
	// circuit opens.
	// Default: 5
	FailureThreshold int

	// ResetTimeout is how long an open circuit waits before allowing a
	// trial call.
	// Default: 30 seconds
	ResetTimeout time.Duration

	// Classify maps a call error to an Outcome. The default treats nil
	// as success, context cancellation as ignored, and everything else,
	// deadline expiry included, as failure.
	Classify func(err error) Outcome

	// OnStateChange is called when the circuit state changes.
	OnStateChange func(from, to State)
}

// CircuitBreaker guards exactly one logical endpoint. All state transitions
// happen under a single mutex so they are atomic with respect to concurrent
// callers.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	openedAt    time.Time
	trialActive bool
}

// NewCircuitBreaker creates a circuit breaker, applying config defaults.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.Classify == nil {
		config.Classify = DefaultClassify
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// DefaultClassify is the default outcome classifier: nil is success,
// context.Canceled is ignored, anything else is a failure. A deadline
// expiry counts as a failure because a struggling endpoint manifests as
// timeouts long before it returns errors.
func DefaultClassify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled):
		return OutcomeIgnore
	default:
		return OutcomeFailure
	}
}

// Execute runs op through the circuit breaker. While the circuit is open it
// returns ErrCircuitOpen without invoking op.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := cb.Allow(); err != nil {
		return err
	}

	err := op(ctx)
	cb.Record(err)
	return err
}

// Allow reserves the right to make one call. It returns ErrCircuitOpen when
// the circuit is open or a trial call is already in flight. Every accepted
// Allow must be balanced by exactly one Record or RecordOutcome.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentStateLocked() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		// One trial at a time probes the endpoint.
		if cb.trialActive {
			return ErrCircuitOpen
		}
		cb.trialActive = true
	}
	return nil
}

// Record settles a call admitted by Allow using the configured classifier.
func (cb *CircuitBreaker) Record(err error) {
	cb.RecordOutcome(cb.config.Classify(err))
}

// RecordOutcome settles a call admitted by Allow.
func (cb *CircuitBreaker) RecordOutcome(outcome Outcome) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state

	switch cb.state {
	case StateClosed:
		switch outcome {
		case OutcomeSuccess:
			cb.failures = 0
		case OutcomeFailure:
			cb.failures++
			if cb.failures >= cb.config.FailureThreshold {
				cb.openedAt = time.Now()
				cb.state = StateOpen
			}
		}

	case StateHalfOpen:
		cb.trialActive = false
		switch outcome {
		case OutcomeSuccess:
			cb.state = StateClosed
			cb.failures = 0
			cb.successes = 0
		case OutcomeFailure:
			// Failed probe: reopen and restart the reset timer.
			cb.openedAt = time.Now()
			cb.state = StateOpen
		}

	case StateOpen:
		// A call admitted in half-open may settle after the breaker
		// reopened behind it. Nothing to account for.
	}

	if oldState != cb.state && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, cb.state)
	}
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentStateLocked()
}

// Reset returns the circuit to closed with counters cleared.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state
	cb.state = StateClosed
	cb.failures = 0
	cb.successes = 0
	cb.trialActive = false

	if oldState != StateClosed && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, StateClosed)
	}
}

func (cb *CircuitBreaker) currentStateLocked() State {
	if cb.state == StateOpen && time.Since(cb.openedAt) >= cb.config.ResetTimeout {
		cb.state = StateHalfOpen
		cb.trialActive = false
		if cb.config.OnStateChange != nil {
			cb.config.OnStateChange(StateOpen, StateHalfOpen)
		}
	}
	return cb.state
}

// Metrics returns current circuit breaker statistics.
func (cb *CircuitBreaker) Metrics() CircuitBreakerMetrics {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return CircuitBreakerMetrics{
		State:    cb.currentStateLocked(),
		Failures: cb.failures,
		OpenedAt: cb.openedAt,
	}
}

// CircuitBreakerMetrics contains circuit breaker statistics.
type CircuitBreakerMetrics struct {
	State    State
	Failures int
	OpenedAt time.Time
}

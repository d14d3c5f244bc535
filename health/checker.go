package health

import (
	"context"
	"time"
)

// Status grades a component's health. The zero value is healthy so that a
// freshly constructed Result defaults to the benign state.
type Status int

const (
	// StatusHealthy means the component is fully operational.
	StatusHealthy Status = iota
	// StatusDegraded means the component works but with reduced capacity,
	// for example an endpoint probing recovery through a half-open circuit.
	StatusDegraded
	// StatusUnhealthy means the component is not usable.
	StatusUnhealthy
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is one health check's outcome.
type Result struct {
	// Status grades the component.
	Status Status

	// Message explains the grade in one line.
	Message string

	// Details carries arbitrary per-component metadata, such as the
	// circuit state of each endpoint.
	Details map[string]any

	// Duration is how long the check took to run.
	Duration time.Duration

	// Timestamp is when the check ran.
	Timestamp time.Time

	// Error is the underlying failure for unhealthy results.
	Error error
}

func newResult(status Status, message string) Result {
	return Result{Status: status, Message: message, Timestamp: time.Now()}
}

// Healthy builds a healthy result with the given message.
func Healthy(message string) Result {
	return newResult(StatusHealthy, message)
}

// Degraded builds a degraded result with the given message.
func Degraded(message string) Result {
	return newResult(StatusDegraded, message)
}

// Unhealthy builds an unhealthy result carrying the underlying error.
func Unhealthy(message string, err error) Result {
	r := newResult(StatusUnhealthy, message)
	r.Error = err
	return r
}

// WithDetails returns a copy of the result with details attached.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// WithDuration returns a copy of the result with the measured duration.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Checker is anything that can report its own health.
type Checker interface {
	// Name identifies this checker within an aggregator.
	Name() string

	// Check runs the health check. Implementations should honor ctx
	// cancellation; the aggregator enforces an outer timeout regardless.
	Check(ctx context.Context) Result
}

// CheckerFunc adapts a plain function into a named Checker.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc wraps fn as a Checker with the given name.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name identifies this checker.
func (f *CheckerFunc) Name() string {
	return f.name
}

// Check invokes the wrapped function.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}

// PingChecker is a Checker whose component can also be pinged directly.
type PingChecker interface {
	Checker

	// Ping reports whether the component is reachable.
	Ping(ctx context.Context) error
}

// InfoChecker is a Checker that can expose per-component detail beyond
// the graded Result, such as the state of every known endpoint.
type InfoChecker interface {
	Checker

	// Info returns detailed component state.
	Info(ctx context.Context) (map[string]any, error)
}

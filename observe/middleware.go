package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Instrumentation bundles tracing, metrics, and logging for LLM calls. A
// call is observed from admission to stream termination, so the span and
// the accounting outlive the handshake.
//
// Contract:
//   - Concurrency: safe for concurrent use; each CallObservation belongs to
//     one call.
//   - Errors: recording is best-effort and must not panic.
type Instrumentation struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewInstrumentation creates an Instrumentation from explicit components.
func NewInstrumentation(tracer Tracer, metrics Metrics, logger Logger) *Instrumentation {
	return &Instrumentation{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NewNoopInstrumentation creates an Instrumentation that records nothing.
func NewNoopInstrumentation() *Instrumentation {
	return &Instrumentation{
		tracer:  newNoopTracer(),
		metrics: &noopMetrics{},
		logger:  &noopLogger{},
	}
}

// InstrumentationFromObserver creates an Instrumentation from an Observer.
func InstrumentationFromObserver(obs Observer) (*Instrumentation, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewInstrumentation(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Begin opens the observation for one call: a span is started and a
// call-scoped logger attached. The returned context carries the span.
func (i *Instrumentation) Begin(ctx context.Context, meta CallMeta) (context.Context, *CallObservation) {
	ctx, span := i.tracer.StartSpan(ctx, meta)

	return ctx, &CallObservation{
		inst:   i,
		meta:   meta,
		span:   span,
		logger: i.logger.WithCall(meta),
		start:  time.Now(),
	}
}

// Logger returns the instrumentation's logger.
func (i *Instrumentation) Logger() Logger {
	return i.logger
}

// CallObservation tracks one call from admission to termination.
type CallObservation struct {
	inst   *Instrumentation
	meta   CallMeta
	span   trace.Span
	logger Logger
	start  time.Time
	ended  bool
}

// Tokens records token consumption for the call.
func (o *CallObservation) Tokens(ctx context.Context, input, output int) {
	o.inst.metrics.RecordTokens(ctx, o.meta, input, output)
}

// Cost records the computed cost of the call.
func (o *CallObservation) Cost(ctx context.Context, usd float64) {
	o.inst.metrics.RecordCost(ctx, o.meta, usd)
}

// End closes the observation: the span is ended with err's status, call
// metrics are recorded, and one summary line is logged. Repeated calls are
// no-ops so End can sit on every exit path.
func (o *CallObservation) End(ctx context.Context, err error) {
	if o.ended {
		return
	}
	o.ended = true

	duration := time.Since(o.start)
	o.inst.tracer.EndSpan(o.span, err)
	o.inst.metrics.RecordCall(ctx, o.meta, duration, err)

	fields := []Field{
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		o.logger.Error(ctx, "llm call failed", fields...)
	} else {
		o.logger.Info(ctx, "llm call completed", fields...)
	}
}

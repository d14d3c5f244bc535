package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records LLM call metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one completed call with duration and error status.
	RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error)

	// RecordTokens records token consumption for one call.
	RecordTokens(ctx context.Context, meta CallMeta, input, output int)

	// RecordCost records the computed cost of one call in USD.
	RecordCost(ctx context.Context, meta CallMeta, usd float64)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	inputTokens  metric.Int64Counter
	outputTokens metric.Int64Counter
	costTotal    metric.Float64Counter
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"llm.call.total",
		metric.WithDescription("Total number of LLM calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"llm.call.errors",
		metric.WithDescription("Total number of failed LLM calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"llm.call.duration_ms",
		metric.WithDescription("LLM call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	inputTokens, err := meter.Int64Counter(
		"llm.tokens.input",
		metric.WithDescription("Input tokens consumed"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	outputTokens, err := meter.Int64Counter(
		"llm.tokens.output",
		metric.WithDescription("Output tokens generated"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	costTotal, err := meter.Float64Counter(
		"llm.cost.usd",
		metric.WithDescription("Computed call cost in USD"),
		metric.WithUnit("{usd}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		inputTokens:  inputTokens,
		outputTokens: outputTokens,
		costTotal:    costTotal,
	}, nil
}

func (m *metricsImpl) attrs(meta CallMeta) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("llm.provider", meta.Provider),
		attribute.String("llm.model", meta.Model),
	)
}

// RecordCall records metrics for one completed call.
func (m *metricsImpl) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error) {
	opt := m.attrs(meta)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordTokens records token consumption for one call.
func (m *metricsImpl) RecordTokens(ctx context.Context, meta CallMeta, input, output int) {
	opt := m.attrs(meta)
	m.inputTokens.Add(ctx, int64(input), opt)
	m.outputTokens.Add(ctx, int64(output), opt)
}

// RecordCost records the computed cost of one call.
func (m *metricsImpl) RecordCost(ctx context.Context, meta CallMeta, usd float64) {
	m.costTotal.Add(ctx, usd, m.attrs(meta))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordTokens(ctx context.Context, meta CallMeta, input, output int) {}

func (m *noopMetrics) RecordCost(ctx context.Context, meta CallMeta, usd float64) {}

package observe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*metricsImpl, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

// TestMetrics_TotalCounterIncrements verifies llm.call.total is incremented.
func TestMetrics_TotalCounterIncrements(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := CallMeta{
		CallID:   "call-1",
		Provider: "acme",
		Model:    "large",
	}

	m.RecordCall(context.Background(), meta, 100*time.Millisecond, nil)

	// Collect and verify metrics
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "llm.call.total")
	if found == nil {
		t.Fatal("llm.call.total metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if sum.DataPoints[0].Value != 1 {
		t.Errorf("expected count 1, got %d", sum.DataPoints[0].Value)
	}
}

// TestMetrics_ErrorCounterOnSuccess verifies errors counter NOT incremented on success.
func TestMetrics_ErrorCounterOnSuccess(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := CallMeta{CallID: "call-1", Provider: "acme", Model: "large"}
	m.RecordCall(context.Background(), meta, 50*time.Millisecond, nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "llm.call.errors")
	if found == nil {
		// If metric doesn't exist at all (no errors recorded), that's acceptable
		return
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		return // Different type, skip
	}
	if len(sum.DataPoints) > 0 && sum.DataPoints[0].Value != 0 {
		t.Errorf("expected errors count 0, got %d", sum.DataPoints[0].Value)
	}
}

// TestMetrics_ErrorCounterOnFailure verifies errors counter incremented on failure.
func TestMetrics_ErrorCounterOnFailure(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := CallMeta{CallID: "call-1", Provider: "acme", Model: "large"}
	testErr := errors.New("call failed")
	m.RecordCall(context.Background(), meta, 50*time.Millisecond, testErr)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "llm.call.errors")
	if found == nil {
		t.Fatal("llm.call.errors metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if sum.DataPoints[0].Value != 1 {
		t.Errorf("expected errors count 1, got %d", sum.DataPoints[0].Value)
	}
}

// TestMetrics_DurationHistogramRecords verifies duration is recorded.
func TestMetrics_DurationHistogramRecords(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := CallMeta{CallID: "call-1", Provider: "acme", Model: "large"}
	duration := 50 * time.Millisecond
	m.RecordCall(context.Background(), meta, duration, nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "llm.call.duration_ms")
	if found == nil {
		t.Fatal("llm.call.duration_ms metric not found")
	}

	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no data points")
	}

	// Verify sum is approximately 50ms
	dp := hist.DataPoints[0]
	if dp.Sum < 40 || dp.Sum > 60 {
		t.Errorf("expected duration ~50ms, got %f", dp.Sum)
	}
}

// TestMetrics_TokenCounters verifies input/output token accounting.
func TestMetrics_TokenCounters(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := CallMeta{CallID: "call-1", Provider: "acme", Model: "large"}
	m.RecordTokens(context.Background(), meta, 120, 45)
	m.RecordTokens(context.Background(), meta, 80, 15)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	input := findMetric(rm, "llm.tokens.input")
	if input == nil {
		t.Fatal("llm.tokens.input metric not found")
	}
	if sum, ok := input.Data.(metricdata.Sum[int64]); ok && len(sum.DataPoints) > 0 {
		if sum.DataPoints[0].Value != 200 {
			t.Errorf("expected input tokens 200, got %d", sum.DataPoints[0].Value)
		}
	}

	output := findMetric(rm, "llm.tokens.output")
	if output == nil {
		t.Fatal("llm.tokens.output metric not found")
	}
	if sum, ok := output.Data.(metricdata.Sum[int64]); ok && len(sum.DataPoints) > 0 {
		if sum.DataPoints[0].Value != 60 {
			t.Errorf("expected output tokens 60, got %d", sum.DataPoints[0].Value)
		}
	}
}

// TestMetrics_CostCounter verifies the USD cost counter accumulates.
func TestMetrics_CostCounter(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := CallMeta{CallID: "call-1", Provider: "acme", Model: "large"}
	m.RecordCost(context.Background(), meta, 0.00105)
	m.RecordCost(context.Background(), meta, 0.002)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "llm.cost.usd")
	if found == nil {
		t.Fatal("llm.cost.usd metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[float64])
	if !ok {
		t.Fatalf("expected Sum[float64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	want := 0.00105 + 0.002
	if got := sum.DataPoints[0].Value; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected cost %f, got %f", want, got)
	}
}

// TestMetrics_LabelsApplied verifies labels include call metadata.
func TestMetrics_LabelsApplied(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := CallMeta{
		CallID:   "call-1",
		Provider: "acme",
		Model:    "large",
	}
	m.RecordCall(context.Background(), meta, 10*time.Millisecond, nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "llm.call.total")
	if found == nil {
		t.Fatal("llm.call.total metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}

	// Verify attributes
	attrs := sum.DataPoints[0].Attributes
	var foundProvider, foundModel bool
	for iter := attrs.Iter(); iter.Next(); {
		kv := iter.Attribute()
		switch string(kv.Key) {
		case "llm.provider":
			foundProvider = true
			if kv.Value.AsString() != "acme" {
				t.Errorf("expected llm.provider='acme', got %q", kv.Value.AsString())
			}
		case "llm.model":
			foundModel = true
			if kv.Value.AsString() != "large" {
				t.Errorf("expected llm.model='large', got %q", kv.Value.AsString())
			}
		case "llm.call_id":
			// Call ids are unbounded; they must never become a metric label.
			t.Error("llm.call_id must not appear as a metric attribute")
		}
	}

	if !foundProvider {
		t.Error("llm.provider attribute not found")
	}
	if !foundModel {
		t.Error("llm.model attribute not found")
	}
}

// TestMetrics_ConcurrentRecording verifies thread safety.
func TestMetrics_ConcurrentRecording(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := CallMeta{CallID: "call-1", Provider: "acme", Model: "large"}
	const numGoroutines = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			m.RecordCall(context.Background(), meta, time.Millisecond, nil)
		}()
	}

	wg.Wait()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "llm.call.total")
	if found == nil {
		t.Fatal("llm.call.total metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if sum.DataPoints[0].Value != numGoroutines {
		t.Errorf("expected count %d, got %d", numGoroutines, sum.DataPoints[0].Value)
	}
}

// findMetric searches for a metric by name in ResourceMetrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

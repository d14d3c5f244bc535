package observe

import "errors"

// Configuration errors returned by Config.Validate.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty.
	ErrMissingServiceName = errors.New("observe: service name is required")

	// ErrInvalidSamplePct indicates Tracing.SamplePct falls outside
	// [MinSamplePct, MaxSamplePct].
	ErrInvalidSamplePct = errors.New("observe: sample percentage must be between 0.0 and 1.0")

	// ErrInvalidTracingExporter indicates an unknown tracing exporter name.
	ErrInvalidTracingExporter = errors.New("observe: invalid tracing exporter")

	// ErrInvalidMetricsExporter indicates an unknown metrics exporter name.
	ErrInvalidMetricsExporter = errors.New("observe: invalid metrics exporter")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("observe: invalid log level")
)

// Runtime errors.
var (
	// ErrNilObserver indicates a nil Observer was provided.
	ErrNilObserver = errors.New("observe: observer is nil")

	// ErrMissingProvider indicates CallMeta.Provider is empty.
	ErrMissingProvider = errors.New("observe: provider is required")

	// ErrMissingModel indicates CallMeta.Model is empty.
	ErrMissingModel = errors.New("observe: model is required")
)

// Bounds for Tracing.SamplePct.
const (
	MinSamplePct = 0.0
	MaxSamplePct = 1.0
)

// ValidTracingExporters lists the tracing exporter names Validate accepts.
var ValidTracingExporters = []string{"otlp", "jaeger", "stdout", "none", ""}

// ValidMetricsExporters lists the metrics exporter names Validate accepts.
var ValidMetricsExporters = []string{"otlp", "prometheus", "stdout", "none", ""}

// ValidLogLevels lists the log level names Validate accepts.
var ValidLogLevels = []string{"debug", "info", "warn", "error", ""}

// RedactedFields lists field keys whose values are masked in log output.
// These fields may carry prompt contents or credentials.
var RedactedFields = []string{
	"prompt",
	"messages",
	"password",
	"secret",
	"token",
	"api_key",
	"apiKey",
	"credential",
}

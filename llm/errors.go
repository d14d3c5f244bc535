package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind categorizes an error returned by this package.
type Kind string

const (
	// KindProviderUnsupported means no transport is registered for the
	// requested vendor. Fatal, never retried.
	KindProviderUnsupported Kind = "provider_unsupported"

	// KindModelNotFound means the model id is absent from the provider
	// catalog. Fatal.
	KindModelNotFound Kind = "model_not_found"

	// KindValidation means the request options are malformed. Fatal.
	KindValidation Kind = "validation"

	// KindRateLimited means admission was rejected by the rate limiter.
	// The caller may retry later.
	KindRateLimited Kind = "rate_limited"

	// KindBulkheadSaturated means admission was rejected by the
	// concurrency limiter.
	KindBulkheadSaturated Kind = "bulkhead_saturated"

	// KindCircuitOpen means the endpoint is presumed unhealthy and the
	// call failed fast without reaching the wire.
	KindCircuitOpen Kind = "circuit_open"

	// KindTimeout means the operation exceeded its deadline.
	KindTimeout Kind = "timeout"

	// KindRetryableTransport covers network failures, 5xx, and 429
	// responses. Retried by the pipeline, counted by the breaker.
	KindRetryableTransport Kind = "retryable_transport"

	// KindNonRetryableTransport covers 4xx responses other than 429,
	// such as auth failures. Propagated immediately, counted by the
	// breaker.
	KindNonRetryableTransport Kind = "non_retryable_transport"

	// KindIncompleteStream means the stream ended without a terminal
	// finish event.
	KindIncompleteStream Kind = "incomplete_stream"
)

// Error is the provider-neutral error returned to callers. Raw transport
// errors never escape the pipeline boundary; they are carried here via Err
// with the original message and status preserved.
type Error struct {
	Kind    Kind
	Message string

	// StatusCode is the HTTP status reported by the transport, if any.
	StatusCode int

	// Attempts is the number of attempts made before the error surfaced.
	Attempts int

	// Elapsed is the wall time spent on the call including backoff.
	Elapsed time.Duration

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("llm: %s: %s", e.Kind, e.Message)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the error may succeed on a later attempt.
func (e *Error) Retryable() bool {
	return e.Kind == KindRetryableTransport
}

// KindOf returns the Kind of err, or "" if err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsRetryable reports whether err should be retried by the pipeline.
// Typed errors qualify only when their kind is retryable; an untyped
// error defaults to retryable, matching its eventual translation, since
// providers report wire failures either as *Error or untyped. Admission
// rejections, timeouts, and cancellation propagate immediately.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable()
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	kind, _ := classifyUntyped(err)
	return kind == KindRetryableTransport
}

// NewError creates an Error of the given kind.
func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// TransportError classifies a transport failure by HTTP status. Status 429
// and all 5xx are retryable; any other 4xx is not. Status 0 means the
// request never produced a response (network failure) and is retryable.
func TransportError(status int, message string, err error) *Error {
	kind := KindRetryableTransport
	if status >= 400 && status < 500 && status != 429 {
		kind = KindNonRetryableTransport
	}
	return &Error{Kind: kind, Message: message, StatusCode: status, Err: err}
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

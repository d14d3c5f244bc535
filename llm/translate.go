package llm

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/modelgate/resilience"
)

// translateError converts pipeline and transport errors into the caller
// taxonomy at the pipeline boundary. Typed errors pass through with attempt
// and elapsed context filled in; context.Canceled is returned unchanged so
// callers can match their own cancellation idiomatically. Nothing about the
// original failure is lost: the source error stays reachable via Unwrap.
func translateError(err error, attempts int, elapsed time.Duration) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var e *Error
	if errors.As(err, &e) {
		// Copy before annotating: the source error may be shared.
		out := *e
		if out.Attempts == 0 {
			out.Attempts = attempts
		}
		if out.Elapsed == 0 {
			out.Elapsed = elapsed
		}
		return &out
	}

	kind, message := classifyUntyped(err)

	return &Error{
		Kind:     kind,
		Message:  message,
		Attempts: attempts,
		Elapsed:  elapsed,
		Err:      err,
	}
}

// classifyUntyped maps an error that carries no *Error to its Kind. The
// default mirrors the provider contract: an error a provider did not type
// is a retryable transport failure. IsRetryable uses the same mapping so
// the retry loop and the translated error never disagree.
func classifyUntyped(err error) (Kind, string) {
	switch {
	case errors.Is(err, resilience.ErrRateLimitExceeded):
		return KindRateLimited, "admission rejected by rate limiter"
	case errors.Is(err, resilience.ErrBulkheadFull):
		return KindBulkheadSaturated, "admission rejected by bulkhead"
	case errors.Is(err, resilience.ErrCircuitOpen):
		return KindCircuitOpen, "endpoint circuit is open"
	case errors.Is(err, resilience.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout, "operation exceeded its deadline"
	}
	return KindRetryableTransport, "transport failure"
}

// outcomeOf maps a translated error to a breaker outcome. Cancellation is
// neutral; a timeout counts as a failure; admission rejections never reach
// the breaker so any other error is an endpoint failure.
func outcomeOf(err error) resilience.Outcome {
	switch {
	case err == nil:
		return resilience.OutcomeSuccess
	case errors.Is(err, context.Canceled):
		return resilience.OutcomeIgnore
	default:
		return resilience.OutcomeFailure
	}
}

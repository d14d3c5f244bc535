package llm

import (
	"context"
	"time"

	"github.com/jonwraymond/modelgate/observe"
	"github.com/jonwraymond/modelgate/resilience"
)

// guardedStream wraps a provider stream with the resources the call holds:
// the pipeline admission (bulkhead permit plus breaker slot) and the
// telemetry observation. Both are settled exactly once, on whichever comes
// first of the terminal event, a stream failure, or Close.
type guardedStream struct {
	inner    Stream
	adm      *resilience.Admission
	obs      *observe.CallObservation
	ctx      context.Context
	desc     ModelDescriptor
	attempts int
	start    time.Time

	event    StreamEvent
	err      error
	finished bool
	done     bool
}

// Next advances to the next event. Provider error events are not delivered;
// they terminate the stream and surface through Err.
func (s *guardedStream) Next() bool {
	if s.done {
		return false
	}

	if !s.inner.Next() {
		s.done = true
		if err := s.inner.Err(); err != nil {
			s.fail(err)
		} else if !s.finished {
			// The connection dropped mid-stream: the endpoint failed
			// to deliver a terminal event.
			s.fail(NewError(KindIncompleteStream, "stream ended without a finish event", nil))
		} else {
			s.settle(resilience.OutcomeSuccess, nil)
		}
		return false
	}

	ev := s.inner.Event()
	switch ev.Type {
	case EventFinish:
		s.finished = true
		// Record provider-reported counters now, while the observation
		// is still open; Close or the next Next ends it.
		if u := ev.Usage; u != nil && !u.IsZero() {
			s.obs.Tokens(s.ctx, u.Input, u.Output+u.Reasoning)
			s.obs.Cost(s.ctx, s.desc.Cost(*u))
		}
	case EventError:
		s.done = true
		err := ev.Err
		if err == nil {
			err = NewError(KindRetryableTransport, "provider reported an unspecified stream error", nil)
		}
		s.fail(err)
		return false
	}

	s.event = ev
	return true
}

// Event returns the current event. Valid only after Next reports true.
func (s *guardedStream) Event() StreamEvent {
	return s.event
}

// Err returns the terminal error, if any.
func (s *guardedStream) Err() error {
	return s.err
}

// Close releases the call's resources. Closing before the terminal event
// cancels the call; the breaker records a neutral outcome because an
// abandoned stream says nothing about endpoint health.
func (s *guardedStream) Close() error {
	err := s.inner.Close()
	if !s.done {
		s.done = true
		s.settle(resilience.OutcomeIgnore, nil)
	}
	return err
}

func (s *guardedStream) fail(err error) {
	s.err = translateError(err, s.attempts, time.Since(s.start))
	s.settle(outcomeOf(s.err), s.err)
}

// settle reports the call outcome once: admission resources are returned
// and the telemetry observation ends.
func (s *guardedStream) settle(outcome resilience.Outcome, err error) {
	s.adm.Settle(outcome)
	s.obs.End(s.ctx, err)
}

var _ Stream = (*guardedStream)(nil)

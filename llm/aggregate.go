package llm

import "strings"

// aggregator folds a stream of events into a Response. Events must be
// observed in emission order; the terminal finish event carries the
// authoritative usage counters.
type aggregator struct {
	text      strings.Builder
	toolCalls []ToolCall
	usage     TokenUsage
	finish    FinishReason
	finished  bool
}

func newAggregator() *aggregator {
	return &aggregator{}
}

func (a *aggregator) observe(ev StreamEvent) {
	switch ev.Type {
	case EventTextDelta:
		a.text.WriteString(ev.Text)
	case EventToolCall:
		if ev.ToolCall != nil {
			a.toolCalls = append(a.toolCalls, *ev.ToolCall)
		}
	case EventFinish:
		a.finished = true
		a.finish = ev.FinishReason
		if ev.Usage != nil {
			a.usage = *ev.Usage
		}
	}
}

// response builds the aggregated Response. A stream that never delivered a
// finish event yields an IncompleteStream error.
func (a *aggregator) response() (*Response, error) {
	if !a.finished {
		return nil, NewError(KindIncompleteStream, "stream ended without a finish event", nil)
	}

	finish := a.finish
	if finish == "" {
		finish = FinishUnknown
	}

	return &Response{
		Text:         a.text.String(),
		ToolCalls:    a.toolCalls,
		Usage:        a.usage,
		FinishReason: finish,
	}, nil
}

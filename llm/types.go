package llm

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single provider-neutral conversation message.
type Message struct {
	Role    Role
	Content string
}

// SystemMessage creates a system message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// UserMessage creates a user message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// ToolCall is a structured tool invocation emitted by the model.
type ToolCall struct {
	// ID is the provider-assigned identifier for this invocation.
	ID string

	// Name is the tool being invoked.
	Name string

	// Arguments is the JSON-encoded argument payload.
	Arguments string
}

// ToolSpec describes a tool the model may call.
type ToolSpec struct {
	Name        string
	Description string

	// Schema is the JSON schema for the tool's arguments.
	Schema map[string]any
}

// FinishReason indicates why the model stopped generating.
type FinishReason string

const (
	FinishStop      FinishReason = "stop"
	FinishLength    FinishReason = "length"
	FinishToolCalls FinishReason = "tool_calls"
	FinishError     FinishReason = "error"
	FinishUnknown   FinishReason = "unknown"
)

// EventType discriminates StreamEvent payloads.
type EventType string

const (
	// EventStart opens a logical response.
	EventStart EventType = "start"
	// EventTextDelta carries an incremental piece of response text.
	EventTextDelta EventType = "text_delta"
	// EventToolCall carries one complete tool invocation.
	EventToolCall EventType = "tool_call"
	// EventTextEnd closes the text portion of the response.
	EventTextEnd EventType = "text_end"
	// EventFinish is terminal and carries the finish reason and usage.
	EventFinish EventType = "finish"
	// EventError is terminal and carries a provider-reported error.
	EventError EventType = "error"
)

// StreamEvent is one element of a streamed response. Exactly the fields
// relevant to Type are populated; all others are zero.
//
// Events for one call arrive in provider emission order. EventFinish and
// EventError are terminal: no further events follow either.
type StreamEvent struct {
	Type EventType

	// Text is the delta payload for EventTextDelta.
	Text string

	// ToolCall is populated for EventToolCall.
	ToolCall *ToolCall

	// FinishReason is populated for EventFinish.
	FinishReason FinishReason

	// Usage is populated for EventFinish when the provider reports
	// token counters.
	Usage *TokenUsage

	// Err is populated for EventError.
	Err error
}

// Stream is a lazy, finite, non-restartable sequence of stream events.
//
// Contract:
//   - Next advances to the next event and reports whether one is available.
//   - Event is valid only after Next returns true, and only until the next
//     call to Next.
//   - Err reports the terminal error, if any, once Next has returned false.
//   - Close releases all resources held by the call. It is idempotent and
//     must be called even when the stream was fully consumed. Closing a
//     partially consumed stream cancels the underlying call.
type Stream interface {
	Next() bool
	Event() StreamEvent
	Err() error
	Close() error
}

// Response is the aggregated result of a completed call.
type Response struct {
	// Text is the concatenation of all text deltas, in emission order.
	Text string

	// ToolCalls holds the structured tool invocations, if any.
	ToolCalls []ToolCall

	// Usage holds the token counters reported by the provider.
	Usage TokenUsage

	// Cost is the computed cost of the call in USD.
	Cost float64

	// FinishReason reports why generation stopped.
	FinishReason FinishReason

	// Model is the descriptor of the model that served the call.
	Model ModelDescriptor
}

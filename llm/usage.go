package llm

// TokenUsage tracks token consumption for one call. All counters are
// non-negative.
type TokenUsage struct {
	// Input is the prompt tokens processed.
	Input int

	// Output is the completion tokens generated.
	Output int

	// Reasoning is the interleaved-thinking tokens generated, when the
	// model reports them separately from Output.
	Reasoning int

	// CacheRead is the prompt tokens served from provider-side cache.
	CacheRead int

	// CacheWrite is the prompt tokens written to provider-side cache.
	CacheWrite int
}

// Total is the sum of all counters.
func (u TokenUsage) Total() int {
	return u.Input + u.Output + u.Reasoning + u.CacheRead + u.CacheWrite
}

// Billable is the sum of counters the provider charges for.
func (u TokenUsage) Billable() int {
	return u.Input + u.Output + u.Reasoning + u.CacheWrite
}

// Add returns the element-wise sum of u and v.
func (u TokenUsage) Add(v TokenUsage) TokenUsage {
	return TokenUsage{
		Input:      u.Input + v.Input,
		Output:     u.Output + v.Output,
		Reasoning:  u.Reasoning + v.Reasoning,
		CacheRead:  u.CacheRead + v.CacheRead,
		CacheWrite: u.CacheWrite + v.CacheWrite,
	}
}

// IsZero reports whether all counters are zero.
func (u TokenUsage) IsZero() bool {
	return u == TokenUsage{}
}

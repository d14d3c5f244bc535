package llm

// Capabilities declares what a model supports.
type Capabilities struct {
	ToolCalls   bool
	Reasoning   bool
	Attachments bool
}

// Pricing holds cost rates in USD per one million tokens.
type Pricing struct {
	InputPer1M      float64
	OutputPer1M     float64
	CacheReadPer1M  float64
	CacheWritePer1M float64
}

// ModelDescriptor identifies a model and its declared properties.
//
// Descriptors are fetched from the provider catalog once per model id and
// cached for the lifetime of the client.
type ModelDescriptor struct {
	// ID is the provider-scoped model identifier.
	ID string

	// Provider is the vendor identifier the model is served by.
	Provider string

	// Family groups related model generations.
	Family string

	Capabilities Capabilities
	Pricing      Pricing

	// ContextWindow is the maximum total tokens per call.
	ContextWindow int

	// MaxOutputTokens is the maximum output tokens per call.
	MaxOutputTokens int
}

// Endpoint returns the logical endpoint key for this model, used to key
// circuit breakers so failures on one endpoint never starve another.
func (d ModelDescriptor) Endpoint() string {
	return d.Provider + "/" + d.ID
}

// Cost computes the USD cost of the given usage at this model's rates.
func (d ModelDescriptor) Cost(u TokenUsage) float64 {
	const million = 1e6
	return float64(u.Input)/million*d.Pricing.InputPer1M +
		float64(u.Output+u.Reasoning)/million*d.Pricing.OutputPer1M +
		float64(u.CacheRead)/million*d.Pricing.CacheReadPer1M +
		float64(u.CacheWrite)/million*d.Pricing.CacheWritePer1M
}

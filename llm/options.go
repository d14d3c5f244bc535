package llm

// ResponseFormat constrains the shape of the model output.
type ResponseFormat string

const (
	ResponseFormatText ResponseFormat = "text"
	ResponseFormatJSON ResponseFormat = "json"
)

// RequestOptions holds the optional sampling and output knobs for a call.
//
// Options are tri-state: an option left unset is never forwarded to the
// provider, so provider defaults apply. A zero-value RequestOptions forwards
// nothing. Values are immutable once constructed; the With methods return a
// modified copy.
type RequestOptions struct {
	temperature     *float64
	topP            *float64
	maxOutputTokens *int
	responseFormat  *ResponseFormat
	thinkingBudget  *int
}

// WithTemperature returns a copy with the sampling temperature set.
func (o RequestOptions) WithTemperature(t float64) RequestOptions {
	o.temperature = &t
	return o
}

// WithTopP returns a copy with nucleus sampling set.
func (o RequestOptions) WithTopP(p float64) RequestOptions {
	o.topP = &p
	return o
}

// WithMaxOutputTokens returns a copy with the output token limit set.
func (o RequestOptions) WithMaxOutputTokens(n int) RequestOptions {
	o.maxOutputTokens = &n
	return o
}

// WithResponseFormat returns a copy with the response format set.
func (o RequestOptions) WithResponseFormat(f ResponseFormat) RequestOptions {
	o.responseFormat = &f
	return o
}

// WithThinkingBudget returns a copy with the interleaved-thinking token
// budget set.
func (o RequestOptions) WithThinkingBudget(n int) RequestOptions {
	o.thinkingBudget = &n
	return o
}

// Temperature reports the temperature and whether it was set.
func (o RequestOptions) Temperature() (float64, bool) {
	if o.temperature == nil {
		return 0, false
	}
	return *o.temperature, true
}

// TopP reports the top-p value and whether it was set.
func (o RequestOptions) TopP() (float64, bool) {
	if o.topP == nil {
		return 0, false
	}
	return *o.topP, true
}

// MaxOutputTokens reports the output token limit and whether it was set.
func (o RequestOptions) MaxOutputTokens() (int, bool) {
	if o.maxOutputTokens == nil {
		return 0, false
	}
	return *o.maxOutputTokens, true
}

// ResponseFormat reports the response format and whether it was set.
func (o RequestOptions) ResponseFormat() (ResponseFormat, bool) {
	if o.responseFormat == nil {
		return "", false
	}
	return *o.responseFormat, true
}

// ThinkingBudget reports the thinking budget and whether it was set.
func (o RequestOptions) ThinkingBudget() (int, bool) {
	if o.thinkingBudget == nil {
		return 0, false
	}
	return *o.thinkingBudget, true
}

// Map returns the explicitly set options keyed by wire name. Unset options
// are absent, never present with a placeholder value.
func (o RequestOptions) Map() map[string]any {
	m := make(map[string]any)
	if o.temperature != nil {
		m["temperature"] = *o.temperature
	}
	if o.topP != nil {
		m["top_p"] = *o.topP
	}
	if o.maxOutputTokens != nil {
		m["max_output_tokens"] = *o.maxOutputTokens
	}
	if o.responseFormat != nil {
		m["response_format"] = string(*o.responseFormat)
	}
	if o.thinkingBudget != nil {
		m["thinking_budget"] = *o.thinkingBudget
	}
	return m
}

// Validate checks that every set option is in range.
func (o RequestOptions) Validate() error {
	if o.temperature != nil && (*o.temperature < 0 || *o.temperature > 2) {
		return validationError("temperature must be in [0, 2]")
	}
	if o.topP != nil && (*o.topP <= 0 || *o.topP > 1) {
		return validationError("top_p must be in (0, 1]")
	}
	if o.maxOutputTokens != nil && *o.maxOutputTokens <= 0 {
		return validationError("max_output_tokens must be positive")
	}
	if o.responseFormat != nil {
		switch *o.responseFormat {
		case ResponseFormatText, ResponseFormatJSON:
		default:
			return validationError("unknown response format " + string(*o.responseFormat))
		}
	}
	if o.thinkingBudget != nil && *o.thinkingBudget < 0 {
		return validationError("thinking_budget must be non-negative")
	}
	return nil
}

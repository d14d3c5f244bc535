// Package llm provides a provider-neutral client for hosted language-model
// APIs, hardened against the failure modes of networked, rate-limited,
// cost-metered services.
//
// The package defines the data model shared by all providers (messages,
// request options, model descriptors, stream events, token usage), an
// abstract Provider capability implemented by vendor transports, a Registry
// that selects transports by vendor identifier, and a Client that drives
// every call through a resilience pipeline (rate limiter, bulkhead, circuit
// breaker, retry) before it reaches the wire.
//
// # Usage
//
//	reg := llm.NewRegistry()
//	reg.Register("acme", acmeProvider)
//
//	client, err := llm.NewClient(llm.ClientConfig{
//	    Registry:        reg,
//	    DefaultProvider: "acme",
//	    Pipeline:        resilience.DefaultPipelineConfig(),
//	})
//	if err != nil {
//	    return err
//	}
//
//	resp, err := client.ChatCompletion(ctx, "acme/acme-large",
//	    "You are a terse assistant.", "What is a bulkhead?", llm.RequestOptions{})
//
// Streaming callers use Client.Stream and pull events until the stream is
// exhausted; stopping early cancels the call and releases all admission
// resources.
//
// Vendor transports are out of scope for this package: implement the
// Provider interface and register it. Every error returned to callers is a
// *Error carrying one of the Kind values in this package; raw transport
// errors never escape the pipeline boundary.
package llm

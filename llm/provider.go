package llm

import (
	"context"
	"sort"
	"sync"
)

// Provider is the capability a vendor transport must supply. The client
// depends on nothing else about the vendor.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: methods must honor cancellation/deadlines.
//   - Errors: failures should be reported as *Error (TransportError for
//     wire failures); other errors are treated as retryable transport
//     failures.
type Provider interface {
	// ListModels returns the provider's model catalog.
	ListModels(ctx context.Context) ([]ModelDescriptor, error)

	// Stream opens a streamed call. The returned stream yields events in
	// provider emission order and is finite and non-restartable.
	Stream(ctx context.Context, model ModelDescriptor, messages []Message, tools []ToolSpec, opts RequestOptions) (Stream, error)

	// EstimateUsage approximates token usage for a completed call whose
	// finish event carried no counters.
	EstimateUsage(messages []Message, responseText string) TokenUsage
}

// Registry selects vendor transports by provider identifier.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Register panics on a duplicate or empty name; registration happens
//     once at setup.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under the given vendor name.
func (r *Registry) Register(name string, p Provider) {
	if name == "" {
		panic("llm: provider name must not be empty")
	}
	if p == nil {
		panic("llm: provider must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.providers[name]; dup {
		panic("llm: provider " + name + " registered twice")
	}
	r.providers[name] = p
}

// Lookup returns the provider registered under name, or a
// ProviderUnsupported error.
func (r *Registry) Lookup(name string) (Provider, error) {
	r.mu.RLock()
	p, ok := r.providers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, NewError(KindProviderUnsupported, "no transport registered for provider "+name, nil)
	}
	return p, nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package llm

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/modelgate/observe"
	"github.com/jonwraymond/modelgate/resilience"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// Registry supplies vendor transports. Required.
	Registry *Registry

	// DefaultProvider is used for model ids without a "vendor/" prefix.
	// Optional; unqualified ids fail with ProviderUnsupported when unset.
	DefaultProvider string

	// Pipeline configures the reliability pipeline. The retry
	// classifier defaults to IsRetryable so only retryable transport
	// failures consume attempts.
	Pipeline resilience.PipelineConfig

	// Instrumentation records call telemetry.
	// Default: no-op.
	Instrumentation *observe.Instrumentation
}

// Client invokes hosted language models through the reliability pipeline.
//
// The client holds only the model-descriptor cache and references to the
// pipeline and registry; all per-call state lives in the call itself, so
// one Client serves concurrent callers.
type Client struct {
	registry        *Registry
	defaultProvider string
	pipeline        *resilience.Pipeline
	catalog         *catalog
	inst            *observe.Instrumentation
}

// NewClient creates a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Registry == nil {
		return nil, validationError("registry is required")
	}
	if config.Pipeline.Retry.RetryIf == nil {
		config.Pipeline.Retry.RetryIf = IsRetryable
	}
	inst := config.Instrumentation
	if inst == nil {
		inst = observe.NewNoopInstrumentation()
	}

	return &Client{
		registry:        config.Registry,
		defaultProvider: config.DefaultProvider,
		pipeline:        resilience.NewPipeline(config.Pipeline),
		catalog:         newCatalog(),
		inst:            inst,
	}, nil
}

// Pipeline returns the client's reliability pipeline, for metrics and
// health reporting.
func (c *Client) Pipeline() *resilience.Pipeline {
	return c.pipeline
}

// splitModelID resolves "vendor/model" ids against the registry and bare
// ids against the default provider.
func (c *Client) splitModelID(id string) (provider Provider, vendor, model string, err error) {
	vendor, model, ok := strings.Cut(id, "/")
	if !ok {
		vendor, model = c.defaultProvider, id
		if vendor == "" {
			return nil, "", "", NewError(KindProviderUnsupported,
				"model id "+id+" has no vendor prefix and no default provider is configured", nil)
		}
	}
	if model == "" {
		return nil, "", "", validationError("model id must not be empty")
	}

	provider, err = c.registry.Lookup(vendor)
	if err != nil {
		return nil, "", "", err
	}
	return provider, vendor, model, nil
}

// ResolveModel fetches and caches the descriptor for a model id. The
// provider catalog is fetched through the pipeline once per provider and
// reused for the lifetime of the client; an id absent from the catalog
// fails with ModelNotFound.
func (c *Client) ResolveModel(ctx context.Context, id string) (ModelDescriptor, error) {
	provider, vendor, model, err := c.splitModelID(id)
	if err != nil {
		return ModelDescriptor{}, err
	}

	return c.catalog.resolve(ctx, vendor, model, func(ctx context.Context) ([]ModelDescriptor, error) {
		// The op runs on the attempt-timeout goroutine, which may
		// outlive its attempt; the mutex keeps those writes ordered
		// against the reads below, and a fetch that lands after its
		// deadline is discarded rather than returned half-raced.
		var (
			mu          sync.Mutex
			descriptors []ModelDescriptor
			attempts    int
		)
		start := time.Now()

		err := c.pipeline.Execute(ctx, vendor+"/catalog", func(ctx context.Context) error {
			mu.Lock()
			attempts++
			mu.Unlock()

			d, err := provider.ListModels(ctx)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			descriptors = d
			return nil
		})

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			return nil, translateError(err, attempts, time.Since(start))
		}
		return descriptors, nil
	})
}

// Stream opens a streamed call to the given model. The returned stream is
// lazy, finite, and non-restartable; events arrive in provider emission
// order. Closing the stream before the terminal event cancels the call and
// releases all admission resources.
func (c *Client) Stream(ctx context.Context, model string, messages []Message, opts RequestOptions) (Stream, error) {
	return c.StreamTools(ctx, model, messages, nil, opts)
}

// StreamTools is Stream with tool definitions forwarded to the provider.
func (c *Client) StreamTools(ctx context.Context, model string, messages []Message, tools []ToolSpec, opts RequestOptions) (Stream, error) {
	if len(messages) == 0 {
		return nil, validationError("at least one message is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	desc, err := c.ResolveModel(ctx, model)
	if err != nil {
		return nil, err
	}
	provider, _, _, err := c.splitModelID(model)
	if err != nil {
		return nil, err
	}

	meta := observe.CallMeta{
		CallID:   uuid.NewString(),
		Provider: desc.Provider,
		Model:    desc.ID,
	}
	ctx, obs := c.inst.Begin(ctx, meta)

	start := time.Now()
	adm, err := c.pipeline.Admit(ctx, desc.Endpoint())
	if err != nil {
		err = translateError(err, 0, time.Since(start))
		obs.End(ctx, err)
		return nil, err
	}

	// Only the handshake is retried. A started stream is
	// non-restartable: replaying half-delivered events would corrupt
	// the aggregate. A handshake that completes after its attempt
	// deadline arrived too late to use: its stream is closed, not
	// handed over. The mutex orders those late writes against the
	// reads below.
	var (
		mu    sync.Mutex
		inner Stream
	)
	attempts := 0
	err = c.pipeline.Retry().Execute(ctx, func(ctx context.Context) error {
		attempts++
		return c.pipeline.Timeout().Execute(ctx, func(ctx context.Context) error {
			s, err := provider.Stream(ctx, desc, messages, tools, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if ctx.Err() != nil {
				s.Close()
				return ctx.Err()
			}
			inner = s
			return nil
		})
	})

	mu.Lock()
	stream := inner
	mu.Unlock()

	if err != nil {
		// The final attempt may have handed its stream over in the
		// same instant the deadline fired.
		if stream != nil {
			stream.Close()
		}
		err = translateError(err, attempts, time.Since(start))
		adm.Settle(outcomeOf(err))
		obs.End(ctx, err)
		return nil, err
	}

	return &guardedStream{
		inner:    stream,
		adm:      adm,
		obs:      obs,
		ctx:      ctx,
		desc:     desc,
		attempts: attempts,
		start:    start,
	}, nil
}

// Complete consumes a streamed call and returns the aggregated response:
// text deltas concatenated in order, tool calls collected, and usage taken
// from the terminal finish event. A stream that ends without a finish event
// fails with IncompleteStream.
func (c *Client) Complete(ctx context.Context, model string, messages []Message, opts RequestOptions) (*Response, error) {
	stream, err := c.Stream(ctx, model, messages, opts)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	agg := newAggregator()
	for stream.Next() {
		agg.observe(stream.Event())
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	resp, err := agg.response()
	if err != nil {
		return nil, err
	}

	gs := stream.(*guardedStream)
	estimated := false
	if resp.Usage.IsZero() {
		// The provider reported no counters; fall back to estimation
		// so cost accounting stays populated.
		if provider, _, _, perr := c.splitModelID(model); perr == nil {
			resp.Usage = provider.EstimateUsage(messages, resp.Text)
			estimated = true
		}
	}
	resp.Model = gs.desc
	resp.Cost = gs.desc.Cost(resp.Usage)

	if estimated {
		// Reported counters were recorded at the finish event, inside
		// the observation; estimated ones only exist now that the full
		// text is known, so record them on the call's own context.
		gs.obs.Tokens(gs.ctx, resp.Usage.Input, resp.Usage.Output+resp.Usage.Reasoning)
		gs.obs.Cost(gs.ctx, resp.Cost)
	}

	return resp, nil
}

// ChatCompletion is a convenience wrapper that sends a two-message request
// (system prompt, user message) and returns the aggregated response.
func (c *Client) ChatCompletion(ctx context.Context, model, systemPrompt, userMessage string, opts RequestOptions) (*Response, error) {
	messages := []Message{
		SystemMessage(systemPrompt),
		UserMessage(userMessage),
	}
	return c.Complete(ctx, model, messages, opts)
}

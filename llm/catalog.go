package llm

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// catalog caches model descriptors per provider for the lifetime of the
// client. A provider's model list is fetched on the first lookup against
// that provider and reused for every later lookup; concurrent first lookups
// are collapsed into a single fetch.
type catalog struct {
	mu      sync.RWMutex
	models  map[string]ModelDescriptor // keyed by provider-qualified endpoint
	fetched map[string]bool            // providers whose catalog is loaded

	group singleflight.Group
}

func newCatalog() *catalog {
	return &catalog{
		models:  make(map[string]ModelDescriptor),
		fetched: make(map[string]bool),
	}
}

// resolve returns the descriptor for model id on the named provider,
// fetching the provider catalog through fetch on first use.
func (c *catalog) resolve(ctx context.Context, provider, id string, fetch func(context.Context) ([]ModelDescriptor, error)) (ModelDescriptor, error) {
	c.mu.RLock()
	loaded := c.fetched[provider]
	d, ok := c.models[provider+"/"+id]
	c.mu.RUnlock()

	if ok {
		return d, nil
	}
	if loaded {
		return ModelDescriptor{}, NewError(KindModelNotFound, "model "+id+" not found in "+provider+" catalog", nil)
	}

	_, err, _ := c.group.Do(provider, func() (any, error) {
		// Re-check under the flight: a previous flight may have loaded
		// the catalog while this caller was queued.
		c.mu.RLock()
		loaded := c.fetched[provider]
		c.mu.RUnlock()
		if loaded {
			return nil, nil
		}

		// Collapsed callers share this one fetch; detach it from the
		// winning caller's cancellation so one caller's cancel cannot
		// fail the whole cohort. Attempt deadlines inside fetch still
		// bound it.
		descriptors, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		for _, d := range descriptors {
			c.models[d.Provider+"/"+d.ID] = d
		}
		c.fetched[provider] = true
		c.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		return ModelDescriptor{}, err
	}

	c.mu.RLock()
	d, ok = c.models[provider+"/"+id]
	c.mu.RUnlock()
	if !ok {
		return ModelDescriptor{}, NewError(KindModelNotFound, "model "+id+" not found in "+provider+" catalog", nil)
	}
	return d, nil
}

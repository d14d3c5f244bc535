package resilience

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// BulkheadConfig configures the bulkhead.
type BulkheadConfig struct {
	// MaxConcurrent is the maximum number of in-flight permits.
	// Default: 10
	MaxConcurrent int

	// QueueSize is the number of callers allowed to wait for a permit,
	// served in FIFO order. Zero means no queue: saturation fails
	// immediately with ErrBulkheadFull.
	// Default: 0
	QueueSize int
}

// Bulkhead limits concurrent operations. A permit is a scoped resource:
// acquired before the guarded call and released on every exit path.
type Bulkhead struct {
	config BulkheadConfig
	sem    *semaphore.Weighted

	mu        sync.Mutex
	active    int
	waiting   int
	maxActive int
	rejected  int64
}

// NewBulkhead creates a bulkhead.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}
	if config.QueueSize < 0 {
		config.QueueSize = 0
	}

	return &Bulkhead{
		config: config,
		sem:    semaphore.NewWeighted(int64(config.MaxConcurrent)),
	}
}

// Permit is a held bulkhead slot. Release is idempotent, so deferred
// releases compose with explicit ones on error paths.
type Permit struct {
	b    *Bulkhead
	once sync.Once
}

// Release returns the slot to the bulkhead.
func (p *Permit) Release() {
	p.once.Do(func() {
		p.b.sem.Release(1)
		p.b.mu.Lock()
		p.b.active--
		p.b.mu.Unlock()
	})
}

// Acquire obtains a permit. When all permits are taken, up to QueueSize
// callers wait in FIFO order; beyond that, or with no queue configured,
// Acquire fails immediately with ErrBulkheadFull. A context cancellation
// while queued returns ctx.Err() without consuming a permit.
func (b *Bulkhead) Acquire(ctx context.Context) (*Permit, error) {
	if b.sem.TryAcquire(1) {
		return b.admitted(), nil
	}

	b.mu.Lock()
	if b.waiting >= b.config.QueueSize {
		b.rejected++
		b.mu.Unlock()
		return nil, ErrBulkheadFull
	}
	b.waiting++
	b.mu.Unlock()

	err := b.sem.Acquire(ctx, 1)

	b.mu.Lock()
	b.waiting--
	b.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return b.admitted(), nil
}

func (b *Bulkhead) admitted() *Permit {
	b.mu.Lock()
	b.active++
	if b.active > b.maxActive {
		b.maxActive = b.active
	}
	b.mu.Unlock()
	return &Permit{b: b}
}

// Execute runs op while holding a permit. The permit is released on every
// exit path, panics included.
func (b *Bulkhead) Execute(ctx context.Context, op func(context.Context) error) error {
	permit, err := b.Acquire(ctx)
	if err != nil {
		return err
	}
	defer permit.Release()

	return op(ctx)
}

// Metrics returns current bulkhead statistics.
func (b *Bulkhead) Metrics() BulkheadMetrics {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BulkheadMetrics{
		Active:        b.active,
		Waiting:       b.waiting,
		MaxActive:     b.maxActive,
		Available:     b.config.MaxConcurrent - b.active,
		MaxConcurrent: b.config.MaxConcurrent,
		Rejected:      b.rejected,
	}
}

// BulkheadMetrics contains bulkhead statistics.
type BulkheadMetrics struct {
	Active        int
	Waiting       int
	MaxActive     int
	Available     int
	MaxConcurrent int
	Rejected      int64
}

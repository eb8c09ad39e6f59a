// Package events delivers product events outside the request path.
package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"ecommerce_api/internal/domain/entities"
	"ecommerce_api/internal/usecase/interfaces"
)

var (
	// ErrDispatchFailure wraps every reason an event was not accepted.
	ErrDispatchFailure = errors.New("event dispatch failed")
	ErrQueueFull       = errors.New("event queue is full")
	ErrQueueClosed     = errors.New("event queue is closed")
)

const (
	defaultQueueSize      = 256
	defaultWorkers        = 2
	defaultPublishTimeout = 5 * time.Second
)

// Publisher delivers one event to its final destination.
type Publisher interface {
	Publish(ctx context.Context, ev entities.ProductEvent) error
}

type Options struct {
	QueueSize      int
	Workers        int
	PublishTimeout time.Duration
}

// Stats is a point-in-time snapshot of the dispatcher counters.
type Stats struct {
	Enqueued  uint64
	Published uint64
	Failed    uint64
	Rejected  uint64
	Depth     int
}

// Dispatcher is a bounded in-process queue drained by a fixed worker pool.
// Dispatch never waits for room in the queue and never retries.
type Dispatcher struct {
	publisher Publisher
	opts      Options

	mu     sync.RWMutex
	closed bool
	queue  chan entities.ProductEvent

	startOnce sync.Once
	wg        sync.WaitGroup

	enqueued  atomic.Uint64
	published atomic.Uint64
	failed    atomic.Uint64
	rejected  atomic.Uint64
}

var _ interfaces.IEventNotifier = (*Dispatcher)(nil)

func NewDispatcher(publisher Publisher, opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = defaultPublishTimeout
	}
	return &Dispatcher{
		publisher: publisher,
		opts:      opts,
		queue:     make(chan entities.ProductEvent, opts.QueueSize),
	}
}

// Start launches the workers. Calling it more than once has no effect.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		for i := 0; i < d.opts.Workers; i++ {
			d.wg.Add(1)
			go d.work(i)
		}
		log.Printf("[events][dispatcher] started workers=%d queue_size=%d", d.opts.Workers, d.opts.QueueSize)
	})
}

// Dispatch enqueues ev and returns immediately.
func (d *Dispatcher) Dispatch(_ context.Context, ev entities.ProductEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.rejected.Add(1)
		return fmt.Errorf("%w: %w", ErrDispatchFailure, ErrQueueClosed)
	}
	select {
	case d.queue <- ev:
		d.enqueued.Add(1)
		return nil
	default:
		d.rejected.Add(1)
		return fmt.Errorf("%w: %w", ErrDispatchFailure, ErrQueueFull)
	}
}

// Close stops intake and waits for the workers to drain what is queued.
// It returns ctx.Err() if ctx ends first; the workers keep draining.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Printf("[events][dispatcher] drained published=%d failed=%d", d.published.Load(), d.failed.Load())
		return nil
	case <-ctx.Done():
		log.Printf("[events][dispatcher] drain interrupted pending=%d", len(d.queue))
		return ctx.Err()
	}
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Enqueued:  d.enqueued.Load(),
		Published: d.published.Load(),
		Failed:    d.failed.Load(),
		Rejected:  d.rejected.Load(),
		Depth:     len(d.queue),
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.opts.PublishTimeout)
		err := d.publisher.Publish(ctx, ev)
		cancel()
		if err != nil {
			d.failed.Add(1)
			log.Printf("[events][dispatcher] publish failed worker=%d type=%s product_id=%s correlation_id=%s err=%v",
				id, ev.EventType, ev.ProductID, ev.CorrelationID, err)
			continue
		}
		d.published.Add(1)
	}
}

package events

import (
	"context"
	"log"
	"time"

	"ecommerce_api/internal/domain/entities"

	"github.com/sony/gobreaker/v2"
)

const (
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
)

// BreakerPublisher stops calling a failing backend for a while so the
// workers fail fast instead of spending the publish timeout on every event.
type BreakerPublisher struct {
	next Publisher
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerPublisher(name string, next Publisher, maxFailures uint32, openTimeout time.Duration) *BreakerPublisher {
	if maxFailures == 0 {
		maxFailures = defaultBreakerFailures
	}
	if openTimeout <= 0 {
		openTimeout = defaultBreakerTimeout
	}
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[events][breaker] state change name=%s from=%s to=%s", name, from, to)
		},
	})
	return &BreakerPublisher{next: next, cb: cb}
}

func (p *BreakerPublisher) Publish(ctx context.Context, ev entities.ProductEvent) error {
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.next.Publish(ctx, ev)
	})
	return err
}

func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}

package events

import (
	"context"

	"ecommerce_api/internal/domain/entities"
)

// EventStore persists product events, e.g. the DynamoDB audit table.
type EventStore interface {
	Save(ctx context.Context, ev entities.ProductEvent) error
}

type StorePublisher struct {
	store EventStore
}

func NewStorePublisher(store EventStore) *StorePublisher {
	return &StorePublisher{store: store}
}

func (p *StorePublisher) Publish(ctx context.Context, ev entities.ProductEvent) error {
	return p.store.Save(ctx, ev)
}

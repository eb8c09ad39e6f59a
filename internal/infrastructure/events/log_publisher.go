package events

import (
	"context"
	"log"

	"ecommerce_api/internal/domain/entities"
)

// LogPublisher writes events to the process log. It is the default backend.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, ev entities.ProductEvent) error {
	log.Printf("[events][log] type=%s product_id=%s code=%s price=%s actor=%s correlation_id=%s",
		ev.EventType, ev.ProductID, ev.ProductCode, ev.ProductPrice, ev.ActorEmail, ev.CorrelationID)
	return nil
}

package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductEventType string

const (
	ProductEventCreated ProductEventType = "PRODUCT_CREATED"
	ProductEventUpdated ProductEventType = "PRODUCT_UPDATED"
	ProductEventDeleted ProductEventType = "PRODUCT_DELETED"
)

// ProductEvent describes one committed catalog mutation. The catalog only
// emits it; storage and delivery belong to whoever drains the notifier.
type ProductEvent struct {
	EventType     ProductEventType `json:"eventType"`
	ProductID     string           `json:"productId"`
	ProductCode   string           `json:"productCode"`
	ProductPrice  decimal.Decimal  `json:"productPrice"`
	ActorEmail    string           `json:"actorEmail"`
	CorrelationID string           `json:"correlationId"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

// RequestMeta carries the caller identity and request id of a mutation.
type RequestMeta struct {
	RequestID  string
	ActorEmail string
}

func NewProductEvent(eventType ProductEventType, p Product, meta RequestMeta, now time.Time) ProductEvent {
	return ProductEvent{
		EventType:     eventType,
		ProductID:     p.ID,
		ProductCode:   p.Code,
		ProductPrice:  p.Price,
		ActorEmail:    meta.ActorEmail,
		CorrelationID: meta.RequestID,
		OccurredAt:    now.UTC(),
	}
}

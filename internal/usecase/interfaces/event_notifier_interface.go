package interfaces

import (
	"context"
	"ecommerce_api/internal/domain/entities"
)

//go:generate mockgen -source=event_notifier_interface.go -destination=mocks/event_notifier_mock.go -package=mock_interfaces

// IEventNotifier hands a product event over for asynchronous processing.
//
// Dispatch returns as soon as the event was accepted, never after it was
// processed. There is no retry behind it.
type IEventNotifier interface {
	Dispatch(ctx context.Context, ev entities.ProductEvent) error
}

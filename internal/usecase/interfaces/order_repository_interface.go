package interfaces

import (
	"context"
	"ecommerce_api/internal/domain/entities"
)

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/order_repository_mock.go -package=mock_interfaces

// IOrderRepository abstracts the Order Store, keyed by (customer email, order id).
// The bool results follow the same convention as IProductRepository.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, bool, error)
	GetByID(ctx context.Context, email, orderID string) (entities.Order, bool, error)
	ListByCustomer(ctx context.Context, email string) ([]entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	Delete(ctx context.Context, email, orderID string) (entities.Order, bool, error)
}

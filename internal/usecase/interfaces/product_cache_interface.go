package interfaces

import (
	"context"
	"ecommerce_api/internal/domain/entities"
)

//go:generate mockgen -source=product_cache_interface.go -destination=mocks/product_cache_mock.go -package=mock_interfaces

// IProductCache is a read-through cache for product lookups by id.
// Order creation never reads from it.
//
// Generation must be read before the store lookup whose result is passed to
// Set; Set reports false when a Delete happened in between.
type IProductCache interface {
	Get(ctx context.Context, id string) (entities.Product, bool, error)
	Generation(ctx context.Context, id string) (int64, error)
	Set(ctx context.Context, p entities.Product, generation int64) (bool, error)
	Delete(ctx context.Context, id string) error
}

package interfaces

import (
	"context"
	"ecommerce_api/internal/domain/entities"
)

//go:generate mockgen -source=product_repository_interface.go -destination=mocks/product_repository_mock.go -package=mock_interfaces

// IProductRepository abstracts the Catalog Store.
//
// Conditional operations report their precondition outcome through the bool
// result instead of an error:
//   - Create: false when a product with the same id already exists
//   - Update/Delete: false when no product with the id exists
//   - Get*: false when nothing matched
//
// The error result is reserved for store failures.

type IProductRepository interface {
	Create(ctx context.Context, p entities.Product) (entities.Product, bool, error)
	Update(ctx context.Context, p entities.Product) (entities.Product, bool, error)
	Delete(ctx context.Context, id string) (entities.Product, bool, error)
	GetByID(ctx context.Context, id string) (entities.Product, bool, error)
	GetByCode(ctx context.Context, code string) (entities.Product, bool, error)
	// GetByCodes resolves distinct codes; codes without a product are absent
	// from the returned map.
	GetByCodes(ctx context.Context, codes []string) (map[string]entities.Product, error)
	List(ctx context.Context) ([]entities.Product, error)
}

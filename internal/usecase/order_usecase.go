package usecase

import (
	"context"
	"ecommerce_api/internal/domain/entities"
	"ecommerce_api/internal/usecase/interfaces"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IOrderUseCase exposes the order operations.
//
// Create is a two-phase, non-transactional operation: products are resolved
// from the catalog first, then the order is written. A product deleted or
// repriced between the two phases is not detected; the order keeps whatever
// was read in phase one.
type IOrderUseCase interface {
	Create(ctx context.Context, email string, productCodes []string, payment entities.PaymentMethod, shipping entities.Shipping) (entities.Order, error)
	Get(ctx context.Context, email, orderID string) (entities.Order, error)
	ListByCustomer(ctx context.Context, email string) ([]entities.Order, error)
	ListAll(ctx context.Context) ([]entities.Order, error)
	Delete(ctx context.Context, email, orderID string) (entities.Order, error)
}

type OrderUseCase struct {
	repo        interfaces.IOrderRepository
	productRepo interfaces.IProductRepository
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository, productRepo interfaces.IProductRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo, productRepo: productRepo}
}

func (u *OrderUseCase) Create(ctx context.Context, email string, productCodes []string, payment entities.PaymentMethod, shipping entities.Shipping) (entities.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return entities.Order{}, invalid("customer email is required")
	}
	if len(productCodes) == 0 {
		return entities.Order{}, invalid("at least one product code is required")
	}
	codes := make([]string, len(productCodes))
	for i, c := range productCodes {
		codes[i] = strings.TrimSpace(c)
		if codes[i] == "" {
			return entities.Order{}, invalid("product code at position %d is empty", i)
		}
	}
	if !payment.Valid() {
		return entities.Order{}, invalid("unknown payment method %q", payment)
	}
	if !shipping.Valid() {
		return entities.Order{}, invalid("unknown shipping %s/%s", shipping.Type, shipping.Carrier)
	}

	// Phase one: resolve every code against the catalog.
	resolved, err := u.productRepo.GetByCodes(ctx, codes)
	if err != nil {
		return entities.Order{}, storeErr("resolve order products", err)
	}
	products := make([]entities.Product, 0, len(codes))
	var missing []string
	for _, c := range codes {
		p, ok := resolved[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		products = append(products, p)
	}
	if len(missing) > 0 {
		log.Printf("[order][usecase] unresolved product codes email=%s codes=%v", email, missing)
		return entities.Order{}, fmt.Errorf("%w: %s", ErrOrderProductNotFound, strings.Join(missing, ","))
	}

	// Phase two: freeze prices into the order and write it.
	snapshots, total := entities.SnapshotProducts(products)
	o := entities.Order{
		CustomerEmail: email,
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Products:      snapshots,
		Billing:       entities.Billing{PaymentMethod: payment, TotalPrice: total},
		Shipping:      shipping,
	}

	created, ok, err := u.repo.Create(ctx, o)
	if err != nil {
		return entities.Order{}, storeErr("create order", err)
	}
	if !ok {
		return entities.Order{}, conflict("order %s already exists", o.ID)
	}
	log.Printf("[order][usecase] created email=%s order_id=%s items=%d total=%s", created.CustomerEmail, created.ID, len(created.Products), created.Billing.TotalPrice)
	return created, nil
}

func (u *OrderUseCase) Get(ctx context.Context, email, orderID string) (entities.Order, error) {
	email, orderID = strings.TrimSpace(email), strings.TrimSpace(orderID)
	if email == "" || orderID == "" {
		return entities.Order{}, invalid("customer email and order id are required")
	}

	o, ok, err := u.repo.GetByID(ctx, email, orderID)
	if err != nil {
		return entities.Order{}, storeErr("get order", err)
	}
	if !ok {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) ListByCustomer(ctx context.Context, email string) ([]entities.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("customer email is required")
	}

	orders, err := u.repo.ListByCustomer(ctx, email)
	if err != nil {
		return nil, storeErr("list customer orders", err)
	}
	return orders, nil
}

func (u *OrderUseCase) ListAll(ctx context.Context) ([]entities.Order, error) {
	orders, err := u.repo.List(ctx)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	return orders, nil
}

func (u *OrderUseCase) Delete(ctx context.Context, email, orderID string) (entities.Order, error) {
	email, orderID = strings.TrimSpace(email), strings.TrimSpace(orderID)
	if email == "" || orderID == "" {
		return entities.Order{}, invalid("customer email and order id are required")
	}

	deleted, ok, err := u.repo.Delete(ctx, email, orderID)
	if err != nil {
		return entities.Order{}, storeErr("delete order", err)
	}
	if !ok {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] deleted email=%s order_id=%s", deleted.CustomerEmail, deleted.ID)
	return deleted, nil
}

package usecase

import (
	"context"
	"ecommerce_api/internal/domain/entities"
	"ecommerce_api/internal/usecase/interfaces"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IProductUseCase exposes the catalog operations.
//
// Every committed mutation dispatches exactly one ProductEvent after the store
// confirmed the write. A failed dispatch is logged and never turns a committed
// mutation into an error.
type IProductUseCase interface {
	Create(ctx context.Context, meta entities.RequestMeta, p entities.Product) (entities.Product, error)
	Update(ctx context.Context, meta entities.RequestMeta, id string, p entities.Product) (entities.Product, error)
	Delete(ctx context.Context, meta entities.RequestMeta, id string) (entities.Product, error)
	GetByID(ctx context.Context, id string) (entities.Product, error)
	GetByCode(ctx context.Context, code string) (entities.Product, error)
	List(ctx context.Context) ([]entities.Product, error)
}

type ProductUseCase struct {
	repo     interfaces.IProductRepository
	notifier interfaces.IEventNotifier
	cache    interfaces.IProductCache
}

var _ IProductUseCase = (*ProductUseCase)(nil)

// NewProductUseCase wires the catalog. cache may be nil.
func NewProductUseCase(repo interfaces.IProductRepository, notifier interfaces.IEventNotifier, cache interfaces.IProductCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, notifier: notifier, cache: cache}
}

func (u *ProductUseCase) Create(ctx context.Context, meta entities.RequestMeta, p entities.Product) (entities.Product, error) {
	p.Code = strings.TrimSpace(p.Code)
	if p.Code == "" {
		return entities.Product{}, invalid("product code is required")
	}
	if err := validateMutableFields(p); err != nil {
		return entities.Product{}, err
	}

	// Code uniqueness is checked before the write; two concurrent creates with
	// the same code can still both pass this check.
	if _, exists, err := u.repo.GetByCode(ctx, p.Code); err != nil {
		return entities.Product{}, storeErr("get product by code", err)
	} else if exists {
		return entities.Product{}, conflict("product code %q already exists", p.Code)
	}

	p.ID = uuid.NewString()
	created, ok, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.Product{}, storeErr("create product", err)
	}
	if !ok {
		return entities.Product{}, conflict("product id %s already exists", p.ID)
	}
	log.Printf("[product][usecase] created product_id=%s code=%s request_id=%s", created.ID, created.Code, meta.RequestID)

	u.notify(ctx, entities.ProductEventCreated, created, meta)
	return created, nil
}

func (u *ProductUseCase) Update(ctx context.Context, meta entities.RequestMeta, id string, p entities.Product) (entities.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Product{}, invalid("product id is required")
	}
	if err := validateMutableFields(p); err != nil {
		return entities.Product{}, err
	}

	p.ID = id
	updated, ok, err := u.repo.Update(ctx, p)
	if err != nil {
		return entities.Product{}, storeErr("update product", err)
	}
	if !ok {
		return entities.Product{}, ErrProductNotFound
	}
	log.Printf("[product][usecase] updated product_id=%s code=%s request_id=%s", updated.ID, updated.Code, meta.RequestID)

	u.evict(ctx, updated.ID)
	u.notify(ctx, entities.ProductEventUpdated, updated, meta)
	return updated, nil
}

func (u *ProductUseCase) Delete(ctx context.Context, meta entities.RequestMeta, id string) (entities.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Product{}, invalid("product id is required")
	}

	deleted, ok, err := u.repo.Delete(ctx, id)
	if err != nil {
		return entities.Product{}, storeErr("delete product", err)
	}
	if !ok {
		return entities.Product{}, ErrProductNotFound
	}
	log.Printf("[product][usecase] deleted product_id=%s code=%s request_id=%s", deleted.ID, deleted.Code, meta.RequestID)

	u.evict(ctx, deleted.ID)
	u.notify(ctx, entities.ProductEventDeleted, deleted, meta)
	return deleted, nil
}

func (u *ProductUseCase) GetByID(ctx context.Context, id string) (entities.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Product{}, invalid("product id is required")
	}

	var (
		cacheable  bool
		generation int64
	)
	if u.cache != nil {
		if p, hit, err := u.cache.Get(ctx, id); err != nil {
			log.Printf("[product][usecase] cache get failed product_id=%s err=%v", id, err)
		} else if hit {
			return p, nil
		}
		// Read before the store so an eviction in between invalidates the fill.
		gen, err := u.cache.Generation(ctx, id)
		if err != nil {
			log.Printf("[product][usecase] cache generation failed product_id=%s err=%v", id, err)
		} else {
			cacheable, generation = true, gen
		}
	}

	p, ok, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Product{}, storeErr("get product", err)
	}
	if !ok {
		return entities.Product{}, ErrProductNotFound
	}

	if cacheable {
		stored, err := u.cache.Set(ctx, p, generation)
		if err != nil {
			log.Printf("[product][usecase] cache set failed product_id=%s err=%v", id, err)
		} else if !stored {
			log.Printf("[product][usecase] cache fill skipped; product changed during read product_id=%s", id)
		}
	}
	return p, nil
}

func (u *ProductUseCase) GetByCode(ctx context.Context, code string) (entities.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entities.Product{}, invalid("product code is required")
	}

	p, ok, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		return entities.Product{}, storeErr("get product by code", err)
	}
	if !ok {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (u *ProductUseCase) List(ctx context.Context) ([]entities.Product, error) {
	products, err := u.repo.List(ctx)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	return products, nil
}

// notify runs after the store confirmed the write, so the event is sent even
// if the caller goes away now.
func (u *ProductUseCase) notify(ctx context.Context, eventType entities.ProductEventType, p entities.Product, meta entities.RequestMeta) {
	if u.notifier == nil {
		log.Printf("[product][usecase] notifier not configured; event dropped type=%s product_id=%s", eventType, p.ID)
		return
	}
	ev := entities.NewProductEvent(eventType, p, meta, time.Now())
	if err := u.notifier.Dispatch(context.WithoutCancel(ctx), ev); err != nil {
		log.Printf("[product][usecase] event dispatch failed type=%s product_id=%s request_id=%s err=%v", eventType, p.ID, meta.RequestID, err)
	}
}

func (u *ProductUseCase) evict(ctx context.Context, id string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(context.WithoutCancel(ctx), id); err != nil {
		log.Printf("[product][usecase] cache evict failed product_id=%s err=%v", id, err)
	}
}

func validateMutableFields(p entities.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("product name is required")
	}
	if p.Price.IsNegative() {
		return invalid("product price must not be negative")
	}
	return nil
}

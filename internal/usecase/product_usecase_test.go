package usecase

import (
	"context"
	"errors"
	"testing"

	"ecommerce_api/internal/domain/entities"
	mock_interfaces "ecommerce_api/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var testMeta = entities.RequestMeta{RequestID: "req-1", ActorEmail: "admin@shop.test"}

func TestProductUseCase_Create(t *testing.T) {
	t.Run("missing code", func(t *testing.T) {
		uc := NewProductUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), testMeta, entities.Product{Name: "Phone", Code: "  "})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		uc := NewProductUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), testMeta, entities.Product{Code: "AAA"})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		uc := NewProductUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), testMeta, entities.Product{Code: "AAA", Name: "Phone", Price: decimal.NewFromInt(-1)})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("duplicate code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		uc := NewProductUseCase(repo, notifier, nil)

		repo.EXPECT().GetByCode(gomock.Any(), "AAA").Return(entities.Product{ID: "p0", Code: "AAA"}, true, nil)

		_, err := uc.Create(context.Background(), testMeta, entities.Product{Code: "AAA", Name: "Phone"})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("store failure is classified and nothing is dispatched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		uc := NewProductUseCase(repo, notifier, nil)

		repo.EXPECT().GetByCode(gomock.Any(), "AAA").Return(entities.Product{}, false, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Product{}, false, context.Canceled)

		_, err := uc.Create(context.Background(), testMeta, entities.Product{Code: "AAA", Name: "Phone"})
		if !errors.Is(err, ErrStoreUnavailable) || !errors.Is(err, context.Canceled) {
			t.Fatalf("expected wrapped store error, got %v", err)
		}
	})

	t.Run("success dispatches created event after the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		uc := NewProductUseCase(repo, notifier, nil)

		price := decimal.NewFromInt(100)
		gomock.InOrder(
			repo.EXPECT().GetByCode(gomock.Any(), "AAA").Return(entities.Product{}, false, nil),
			repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Product{})).DoAndReturn(
				func(_ context.Context, p entities.Product) (entities.Product, bool, error) {
					if p.ID == "" || p.Code != "AAA" || !p.Price.Equal(price) {
						t.Fatalf("unexpected product: %+v", p)
					}
					return p, true, nil
				},
			),
			notifier.EXPECT().Dispatch(gomock.Any(), gomock.AssignableToTypeOf(entities.ProductEvent{})).DoAndReturn(
				func(_ context.Context, ev entities.ProductEvent) error {
					if ev.EventType != entities.ProductEventCreated || ev.ProductCode != "AAA" || ev.ProductID == "" {
						t.Fatalf("unexpected event: %+v", ev)
					}
					if ev.ActorEmail != "admin@shop.test" || ev.CorrelationID != "req-1" {
						t.Fatalf("unexpected event meta: %+v", ev)
					}
					return nil
				},
			),
		)

		res, err := uc.Create(context.Background(), testMeta, entities.Product{Code: " AAA ", Name: "Phone", Price: price})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID == "" {
			t.Fatalf("expected generated id")
		}
	})

	t.Run("dispatch failure does not fail the mutation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		uc := NewProductUseCase(repo, notifier, nil)

		repo.EXPECT().GetByCode(gomock.Any(), "AAA").Return(entities.Product{}, false, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Product) (entities.Product, bool, error) { return p, true, nil },
		)
		notifier.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(errors.New("queue full"))

		if _, err := uc.Create(context.Background(), testMeta, entities.Product{Code: "AAA", Name: "Phone"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("dispatch survives a cancelled request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		uc := NewProductUseCase(repo, notifier, nil)

		ctx, cancel := context.WithCancel(context.Background())
		repo.EXPECT().GetByCode(gomock.Any(), "AAA").Return(entities.Product{}, false, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Product) (entities.Product, bool, error) {
				cancel()
				return p, true, nil
			},
		)
		notifier.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ entities.ProductEvent) error {
				if ctx.Err() != nil {
					t.Fatalf("dispatch context should not be cancelled")
				}
				return nil
			},
		)

		if _, err := uc.Create(ctx, testMeta, entities.Product{Code: "AAA", Name: "Phone"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestProductUseCase_Update(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewProductUseCase(nil, nil, nil)
		_, err := uc.Update(context.Background(), testMeta, " ", entities.Product{Name: "Phone"})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("not found never dispatches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		uc := NewProductUseCase(repo, notifier, nil)

		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.Product{}, false, nil)

		_, err := uc.Update(context.Background(), testMeta, "missing", entities.Product{Name: "Phone"})
		if !errors.Is(err, ErrProductNotFound) || !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("success evicts cache and dispatches updated event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		cache := mock_interfaces.NewMockIProductCache(ctrl)
		uc := NewProductUseCase(repo, notifier, cache)

		stored := entities.Product{ID: "p1", Code: "AAA", Name: "Phone 2", Price: decimal.NewFromInt(99)}
		gomock.InOrder(
			repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Product{})).DoAndReturn(
				func(_ context.Context, p entities.Product) (entities.Product, bool, error) {
					if p.ID != "p1" {
						t.Fatalf("expected id from path, got %q", p.ID)
					}
					return stored, true, nil
				},
			),
			cache.EXPECT().Delete(gomock.Any(), "p1").Return(nil),
			notifier.EXPECT().Dispatch(gomock.Any(), gomock.AssignableToTypeOf(entities.ProductEvent{})).DoAndReturn(
				func(_ context.Context, ev entities.ProductEvent) error {
					if ev.EventType != entities.ProductEventUpdated || !ev.ProductPrice.Equal(decimal.NewFromInt(99)) {
						t.Fatalf("event must carry the post-update record: %+v", ev)
					}
					return nil
				},
			),
		)

		res, err := uc.Update(context.Background(), testMeta, " p1 ", entities.Product{Name: "Phone 2", Price: decimal.NewFromInt(99)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Name != "Phone 2" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestProductUseCase_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		uc := NewProductUseCase(repo, notifier, nil)

		repo.EXPECT().Delete(gomock.Any(), "p1").Return(entities.Product{}, false, nil)

		_, err := uc.Delete(context.Background(), testMeta, "p1")
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo, nil, nil)

		repo.EXPECT().Delete(gomock.Any(), "p1").Return(entities.Product{}, false, errors.New("db"))

		_, err := uc.Delete(context.Background(), testMeta, "p1")
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})

	t.Run("success returns deleted record and dispatches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		uc := NewProductUseCase(repo, notifier, nil)

		deleted := entities.Product{ID: "p1", Code: "AAA", Name: "Phone"}
		repo.EXPECT().Delete(gomock.Any(), "p1").Return(deleted, true, nil)
		notifier.EXPECT().Dispatch(gomock.Any(), gomock.AssignableToTypeOf(entities.ProductEvent{})).DoAndReturn(
			func(_ context.Context, ev entities.ProductEvent) error {
				if ev.EventType != entities.ProductEventDeleted || ev.ProductID != "p1" || ev.ProductCode != "AAA" {
					t.Fatalf("unexpected event: %+v", ev)
				}
				return nil
			},
		)

		res, err := uc.Delete(context.Background(), testMeta, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Code != "AAA" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestProductUseCase_Getters(t *testing.T) {
	t.Run("GetByID cache hit skips store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		cache := mock_interfaces.NewMockIProductCache(ctrl)
		uc := NewProductUseCase(repo, nil, cache)

		cache.EXPECT().Get(gomock.Any(), "p1").Return(entities.Product{ID: "p1"}, true, nil)

		res, err := uc.GetByID(context.Background(), "p1")
		if err != nil || res.ID != "p1" {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("GetByID cache miss fills cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		cache := mock_interfaces.NewMockIProductCache(ctrl)
		uc := NewProductUseCase(repo, nil, cache)

		p := entities.Product{ID: "p1", Code: "AAA"}
		gomock.InOrder(
			cache.EXPECT().Get(gomock.Any(), "p1").Return(entities.Product{}, false, errors.New("redis down")),
			cache.EXPECT().Generation(gomock.Any(), "p1").Return(int64(3), nil),
			repo.EXPECT().GetByID(gomock.Any(), "p1").Return(p, true, nil),
			cache.EXPECT().Set(gomock.Any(), p, int64(3)).Return(true, nil),
		)

		res, err := uc.GetByID(context.Background(), "p1")
		if err != nil || res.Code != "AAA" {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("GetByID skips fill when generation is unreadable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		cache := mock_interfaces.NewMockIProductCache(ctrl)
		uc := NewProductUseCase(repo, nil, cache)

		p := entities.Product{ID: "p1", Code: "AAA"}
		cache.EXPECT().Get(gomock.Any(), "p1").Return(entities.Product{}, false, nil)
		cache.EXPECT().Generation(gomock.Any(), "p1").Return(int64(0), errors.New("redis down"))
		repo.EXPECT().GetByID(gomock.Any(), "p1").Return(p, true, nil)

		res, err := uc.GetByID(context.Background(), "p1")
		if err != nil || res.Code != "AAA" {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("GetByID stale fill is not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		cache := mock_interfaces.NewMockIProductCache(ctrl)
		uc := NewProductUseCase(repo, nil, cache)

		p := entities.Product{ID: "p1", Code: "AAA"}
		cache.EXPECT().Get(gomock.Any(), "p1").Return(entities.Product{}, false, nil)
		cache.EXPECT().Generation(gomock.Any(), "p1").Return(int64(1), nil)
		repo.EXPECT().GetByID(gomock.Any(), "p1").Return(p, true, nil)
		cache.EXPECT().Set(gomock.Any(), p, int64(1)).Return(false, nil)

		res, err := uc.GetByID(context.Background(), "p1")
		if err != nil || res.Code != "AAA" {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "p1").Return(entities.Product{}, false, nil)

		_, err := uc.GetByID(context.Background(), "p1")
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("GetByCode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo, nil, nil)

		repo.EXPECT().GetByCode(gomock.Any(), "AAA").Return(entities.Product{ID: "p1", Code: "AAA"}, true, nil)
		repo.EXPECT().GetByCode(gomock.Any(), "BBB").Return(entities.Product{}, false, nil)

		if res, err := uc.GetByCode(context.Background(), " AAA "); err != nil || res.ID != "p1" {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
		if _, err := uc.GetByCode(context.Background(), "BBB"); !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
		if _, err := uc.GetByCode(context.Background(), ""); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo, nil, nil)

		repo.EXPECT().List(gomock.Any()).Return([]entities.Product{{ID: "p1"}, {ID: "p2"}}, nil)

		res, err := uc.List(context.Background())
		if err != nil || len(res) != 2 {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})
}

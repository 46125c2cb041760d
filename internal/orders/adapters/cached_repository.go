package adapters

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/cache"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
)

const orderCacheTTL = 5 * time.Minute

// CachedRepository adds cache-aside reads on top of another repository.
// Cache failures never surface to callers; they just fall through to the
// backing store.
type CachedRepository struct {
	repo   ports.OrderRepository
	cache  cache.Cache
	logger *slog.Logger
}

func NewCachedRepository(repo ports.OrderRepository, c cache.Cache, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

func (r *CachedRepository) Create(ctx context.Context, order domain.Order) error {
	return r.repo.Create(ctx, order)
}

func (r *CachedRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	key := cacheKey(id)

	if raw, err := r.cache.Get(ctx, key); err != nil {
		r.logger.DebugContext(ctx, "order cache read failed", "order_id", id, "error", err)
	} else if raw != "" {
		var order domain.Order
		if err := json.Unmarshal([]byte(raw), &order); err == nil {
			return &order, nil
		}
		r.logger.DebugContext(ctx, "order cache entry invalid", "order_id", id)
	}

	order, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(order); err == nil {
		if err := r.cache.Set(ctx, key, string(raw), orderCacheTTL); err != nil {
			r.logger.DebugContext(ctx, "order cache write failed", "order_id", id, "error", err)
		}
	}

	return order, nil
}

func (r *CachedRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	return r.repo.List(ctx, filter)
}

func (r *CachedRepository) Save(ctx context.Context, order domain.Order, expectedVersion int64) (*domain.Order, error) {
	saved, err := r.repo.Save(ctx, order, expectedVersion)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, order.ID)
	return saved, nil
}

func (r *CachedRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	if err := r.repo.SoftDelete(ctx, id, deletedAt); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedRepository) invalidate(ctx context.Context, id string) {
	if err := r.cache.Del(ctx, cacheKey(id)); err != nil {
		r.logger.DebugContext(ctx, "order cache invalidation failed", "order_id", id, "error", err)
	}
}

func cacheKey(id string) string {
	return "order:" + id
}

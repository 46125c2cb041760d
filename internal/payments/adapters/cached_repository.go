package adapters

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/cache"
	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
)

const paymentCacheTTL = 5 * time.Minute

// CachedRepository adds cache-aside reads for single-payment lookups. The
// ledger is never cached; history reads always hit the backing store.
type CachedRepository struct {
	repo   ports.PaymentRepository
	cache  cache.Cache
	logger *slog.Logger
}

func NewCachedRepository(repo ports.PaymentRepository, c cache.Cache, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

func (r *CachedRepository) Create(ctx context.Context, payment domain.Payment, first domain.StatusChange) error {
	return r.repo.Create(ctx, payment, first)
}

func (r *CachedRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	key := cacheKey(id)

	if raw, err := r.cache.Get(ctx, key); err != nil {
		r.logger.DebugContext(ctx, "payment cache read failed", "payment_id", id, "error", err)
	} else if raw != "" {
		var payment domain.Payment
		if err := json.Unmarshal([]byte(raw), &payment); err == nil {
			return &payment, nil
		}
		r.logger.DebugContext(ctx, "payment cache entry invalid", "payment_id", id)
	}

	payment, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(payment); err == nil {
		if err := r.cache.Set(ctx, key, string(raw), paymentCacheTTL); err != nil {
			r.logger.DebugContext(ctx, "payment cache write failed", "payment_id", id, "error", err)
		}
	}

	return payment, nil
}

func (r *CachedRepository) Save(ctx context.Context, payment domain.Payment, expectedVersion int64, change *domain.StatusChange) (*domain.Payment, error) {
	saved, err := r.repo.Save(ctx, payment, expectedVersion, change)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, payment.ID)
	return saved, nil
}

func (r *CachedRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	if err := r.repo.SoftDelete(ctx, id, deletedAt); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedRepository) History(ctx context.Context, paymentID string) ([]domain.StatusChange, error) {
	return r.repo.History(ctx, paymentID)
}

func (r *CachedRepository) invalidate(ctx context.Context, id string) {
	if err := r.cache.Del(ctx, cacheKey(id)); err != nil {
		r.logger.DebugContext(ctx, "payment cache invalidation failed", "payment_id", id, "error", err)
	}
}

func cacheKey(id string) string {
	return "payment:" + id
}

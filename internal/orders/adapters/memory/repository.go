package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
)

// Repository provides an in-memory store useful for local development and
// tests. It honors the same version-checked save semantics as the postgres
// adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{orders: make(map[string]domain.Order)}
}

// Create stores a new order aggregate.
func (r *Repository) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

// GetByID fetches a single live order by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok || order.IsDeleted() {
		return nil, ports.ErrNotFound
	}
	clone := cloneOrder(order)
	return &clone, nil
}

// List returns live orders respecting the provided filter. Pagination is 1-based.
func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Order
	for _, order := range r.orders {
		if order.IsDeleted() {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.UserID != nil && order.UserID != *filter.UserID {
			continue
		}
		result = append(result, cloneOrder(order))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(result) {
		return []domain.Order{}, nil
	}

	end := start + pageSize
	if end > len(result) {
		end = len(result)
	}

	return result[start:end], nil
}

// Save replaces the aggregate when the stored version still matches
// expectedVersion, bumping the version on success.
func (r *Repository) Save(_ context.Context, order domain.Order, expectedVersion int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return nil, ports.ErrVersionConflict
	}

	order.Version = expectedVersion + 1
	for i := range order.Items {
		order.Items[i].Version++
	}
	r.orders[order.ID] = cloneOrder(order)

	clone := cloneOrder(order)
	return &clone, nil
}

// SoftDelete marks the order (and, implicitly, its items) deleted.
func (r *Repository) SoftDelete(_ context.Context, id string, deletedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok || order.IsDeleted() {
		return ports.ErrNotFound
	}

	order.DeletedAt = &deletedAt
	order.UpdatedAt = deletedAt
	r.orders[id] = order
	return nil
}

func cloneOrder(order domain.Order) domain.Order {
	clone := order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	if order.DeletedAt != nil {
		at := *order.DeletedAt
		clone.DeletedAt = &at
	}
	return clone
}

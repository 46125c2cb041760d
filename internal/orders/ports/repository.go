package ports

import (
	"context"
	"errors"
	"time"

	"github.com/commercekit/commerce-core/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application
// layer. The order and its items form one aggregate: Create and Save persist
// them as a single atomic unit, and reads always return the full aggregate.
//
// Save is a compare-and-swap: it only writes when the stored row version
// still equals expectedVersion, bumping the version on success. A mismatch
// surfaces as ErrVersionConflict with no partial write.
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	Save(ctx context.Context, order domain.Order, expectedVersion int64) (*domain.Order, error)
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
}

// ListFilter narrows list queries by status, owner, and pagination.
// Soft-deleted orders are always excluded.
type ListFilter struct {
	Status   *domain.OrderStatus
	UserID   *string
	Page     int
	PageSize int
}

var (
	// ErrNotFound is returned when the requested order does not exist or has
	// been soft-deleted.
	ErrNotFound = errors.New("order not found")

	// ErrVersionConflict is returned when a version-checked save loses to a
	// concurrent writer. The caller decides whether to reload and retry.
	ErrVersionConflict = errors.New("order version conflict")
)

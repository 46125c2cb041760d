package ports

import (
	"context"
	"errors"
	"time"

	"github.com/commercekit/commerce-core/internal/payments/domain"
)

// PaymentRepository exposes persistence operations required by the
// application layer.
//
// Create persists the payment and its first ledger row as one atomic unit:
// a payment with zero history entries must never exist. Save is a
// compare-and-swap on the payment row version; when change is non-nil the
// ledger append commits in the same transaction as the status swap.
type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment, first domain.StatusChange) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	Save(ctx context.Context, payment domain.Payment, expectedVersion int64, change *domain.StatusChange) (*domain.Payment, error)
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
	History(ctx context.Context, paymentID string) ([]domain.StatusChange, error)
}

var (
	// ErrNotFound is returned when the requested payment does not exist or
	// has been soft-deleted.
	ErrNotFound = errors.New("payment not found")

	// ErrVersionConflict is returned when a version-checked save loses to a
	// concurrent writer.
	ErrVersionConflict = errors.New("payment version conflict")
)

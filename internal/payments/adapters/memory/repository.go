package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
)

// Repository provides an in-memory payment store for local development and
// tests, with the same atomicity and version-check semantics as the postgres
// adapter.
type Repository struct {
	mu       sync.RWMutex
	payments map[string]domain.Payment
	history  map[string][]domain.StatusChange
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		payments: make(map[string]domain.Payment),
		history:  make(map[string][]domain.StatusChange),
	}
}

// Create stores the payment together with its first ledger entry.
func (r *Repository) Create(_ context.Context, payment domain.Payment, first domain.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.ID] = payment
	r.history[payment.ID] = []domain.StatusChange{first}
	return nil
}

// GetByID fetches a single live payment by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payment, ok := r.payments[id]
	if !ok || payment.IsDeleted() {
		return nil, ports.ErrNotFound
	}
	clone := payment
	return &clone, nil
}

// Save replaces the payment when the stored version still matches
// expectedVersion; a non-nil change is appended to the ledger in the same
// critical section.
func (r *Repository) Save(_ context.Context, payment domain.Payment, expectedVersion int64, change *domain.StatusChange) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.payments[payment.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return nil, ports.ErrVersionConflict
	}

	payment.Version = expectedVersion + 1
	r.payments[payment.ID] = payment
	if change != nil {
		r.history[payment.ID] = append(r.history[payment.ID], *change)
	}

	clone := payment
	return &clone, nil
}

// SoftDelete marks the payment deleted; the ledger stays untouched.
func (r *Repository) SoftDelete(_ context.Context, id string, deletedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[id]
	if !ok || payment.IsDeleted() {
		return ports.ErrNotFound
	}

	payment.DeletedAt = &deletedAt
	payment.UpdatedAt = deletedAt
	r.payments[id] = payment
	return nil
}

// History returns the ledger, oldest entry first. It is served even for
// soft-deleted payments: the audit trail outlives the existence flag.
func (r *Repository) History(_ context.Context, paymentID string) ([]domain.StatusChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, ok := r.history[paymentID]
	if !ok {
		return nil, ports.ErrNotFound
	}

	result := make([]domain.StatusChange, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].ChangedAt.Before(result[j].ChangedAt)
	})

	return result, nil
}

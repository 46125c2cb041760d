package queries

import (
	"context"
	"strings"

	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
)

// GetPaymentQuery retrieves a payment by ID. Soft-deleted payments are never
// returned.
type GetPaymentQuery struct {
	PaymentID string
}

// Validate ensures the query has valid parameters.
func (q GetPaymentQuery) Validate() error {
	if strings.TrimSpace(q.PaymentID) == "" {
		return &domain.ValidationError{Msg: "payment_id is required"}
	}
	return nil
}

// GetPaymentQueryHandler executes GetPaymentQuery.
type GetPaymentQueryHandler struct {
	repo ports.PaymentRepository
}

// NewGetPaymentQueryHandler constructs a GetPaymentQueryHandler.
func NewGetPaymentQueryHandler(repo ports.PaymentRepository) *GetPaymentQueryHandler {
	return &GetPaymentQueryHandler{repo: repo}
}

// Handle executes the query and retrieves the payment.
func (h *GetPaymentQueryHandler) Handle(ctx context.Context, query GetPaymentQuery) (*domain.Payment, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.GetByID(ctx, query.PaymentID)
}

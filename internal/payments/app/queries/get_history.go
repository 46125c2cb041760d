package queries

import (
	"context"
	"strings"

	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
)

// GetHistoryQuery retrieves the append-only status ledger of a payment,
// oldest entry first. The ledger survives soft deletion of the payment.
type GetHistoryQuery struct {
	PaymentID string
}

// Validate ensures the query has valid parameters.
func (q GetHistoryQuery) Validate() error {
	if strings.TrimSpace(q.PaymentID) == "" {
		return &domain.ValidationError{Msg: "payment_id is required"}
	}
	return nil
}

// GetHistoryQueryHandler executes GetHistoryQuery.
type GetHistoryQueryHandler struct {
	repo ports.PaymentRepository
}

// NewGetHistoryQueryHandler constructs a GetHistoryQueryHandler.
func NewGetHistoryQueryHandler(repo ports.PaymentRepository) *GetHistoryQueryHandler {
	return &GetHistoryQueryHandler{repo: repo}
}

// Handle executes the query.
func (h *GetHistoryQueryHandler) Handle(ctx context.Context, query GetHistoryQuery) ([]domain.StatusChange, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.History(ctx, query.PaymentID)
}

package queries

import (
	"context"

	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
)

// ListOrdersQuery retrieves a page of live orders matching the filter.
type ListOrdersQuery struct {
	Filter ports.ListFilter
}

// ListOrdersQueryHandler executes ListOrdersQuery.
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewListOrdersQueryHandler constructs a ListOrdersQueryHandler.
func NewListOrdersQueryHandler(repo ports.OrderRepository) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo}
}

// Handle executes the query.
func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]domain.Order, error) {
	return h.repo.List(ctx, query.Filter)
}

package app

import (
	"context"
	"log/slog"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/orders/app/commands"
	"github.com/commercekit/commerce-core/internal/orders/app/queries"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/metrics"
	"github.com/commercekit/commerce-core/internal/orders/ports"
)

// Config carries the tunables of the order lifecycle.
type Config struct {
	MaxItemQuantity int
}

// Service bundles use cases for handling orders via the API.
type Service struct {
	createHandler commands.CreateOrderHandler
	updateHandler commands.UpdateOrderHandler
	cancelHandler commands.CancelOrderHandler
	statusHandler commands.UpdateOrderStatusHandler
	getHandler    *queries.GetOrderQueryHandler
	listHandler   *queries.ListOrdersQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	events ports.EventBus,
	audit audit.Sink,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	cfg Config,
) *Service {
	createCore := commands.NewCreateOrderCommandHandler(repo, events, audit, logger, cfg.MaxItemQuantity)
	statusCore := commands.NewUpdateOrderStatusCommandHandler(repo, events, audit, logger)

	return &Service{
		createHandler: commands.NewObservableCreateOrderHandler(createCore, logger, metrics),
		updateHandler: commands.NewUpdateOrderCommandHandler(repo, events, audit, logger, cfg.MaxItemQuantity),
		cancelHandler: commands.NewCancelOrderCommandHandler(repo, events, audit, logger),
		statusHandler: commands.NewObservableUpdateOrderStatusHandler(statusCore, logger, metrics),
		getHandler:    queries.NewGetOrderQueryHandler(repo),
		listHandler:   queries.NewListOrdersQueryHandler(repo),
	}
}

// CreateOrder orchestrates order creation and event emission.
func (s *Service) CreateOrder(ctx context.Context, cmd commands.CreateOrderCommand) (*domain.Order, error) {
	return s.createHandler.Handle(ctx, cmd)
}

// UpdateOrder applies a partial update under an optimistic version check.
func (s *Service) UpdateOrder(ctx context.Context, cmd commands.UpdateOrderCommand) (*domain.Order, error) {
	return s.updateHandler.Handle(ctx, cmd)
}

// CancelOrder cancels an eligible order.
func (s *Service) CancelOrder(ctx context.Context, cmd commands.CancelOrderCommand) error {
	return s.cancelHandler.Handle(ctx, cmd)
}

// UpdateOrderStatus moves an order along the transition graph.
func (s *Service) UpdateOrderStatus(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*domain.Order, error) {
	return s.statusHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order by ID.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.getHandler.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// ListOrders returns orders using a filter.
func (s *Service) ListOrders(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	return s.listHandler.Handle(ctx, queries.ListOrdersQuery{Filter: filter})
}

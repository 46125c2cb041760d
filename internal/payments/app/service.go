package app

import (
	"context"
	"log/slog"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/payments/app/commands"
	"github.com/commercekit/commerce-core/internal/payments/app/queries"
	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/metrics"
	"github.com/commercekit/commerce-core/internal/payments/ports"
)

// Service bundles use cases for handling payments via the API.
type Service struct {
	createHandler  commands.CreatePaymentHandler
	statusHandler  commands.UpdatePaymentStatusHandler
	deleteHandler  commands.SoftDeletePaymentHandler
	getHandler     *queries.GetPaymentQueryHandler
	historyHandler *queries.GetHistoryQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.PaymentRepository,
	reference ports.ReferenceData,
	events ports.EventBus,
	audit audit.Sink,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	createCore := commands.NewCreatePaymentCommandHandler(repo, reference, events, audit, logger)
	statusCore := commands.NewUpdatePaymentStatusCommandHandler(repo, events, audit, logger)

	return &Service{
		createHandler:  commands.NewObservableCreatePaymentHandler(createCore, logger, metrics),
		statusHandler:  commands.NewObservableUpdatePaymentStatusHandler(statusCore, logger, metrics),
		deleteHandler:  commands.NewSoftDeletePaymentCommandHandler(repo, audit, logger),
		getHandler:     queries.NewGetPaymentQueryHandler(repo),
		historyHandler: queries.NewGetHistoryQueryHandler(repo),
	}
}

// CreatePayment orchestrates payment creation with its first ledger entry.
func (s *Service) CreatePayment(ctx context.Context, cmd commands.CreatePaymentCommand) (*domain.Payment, error) {
	return s.createHandler.Handle(ctx, cmd)
}

// UpdatePaymentStatus moves a payment along the transition graph.
func (s *Service) UpdatePaymentStatus(ctx context.Context, cmd commands.UpdatePaymentStatusCommand) (*domain.Payment, error) {
	return s.statusHandler.Handle(ctx, cmd)
}

// SoftDeletePayment marks a payment deleted without touching its lifecycle.
func (s *Service) SoftDeletePayment(ctx context.Context, cmd commands.SoftDeletePaymentCommand) error {
	return s.deleteHandler.Handle(ctx, cmd)
}

// GetPayment retrieves a payment by ID.
func (s *Service) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.getHandler.Handle(ctx, queries.GetPaymentQuery{PaymentID: id})
}

// GetPaymentStatusHistory returns the payment's ledger, oldest first.
func (s *Service) GetPaymentStatusHistory(ctx context.Context, id string) ([]domain.StatusChange, error) {
	return s.historyHandler.Handle(ctx, queries.GetHistoryQuery{PaymentID: id})
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
)

type CancelOrderCommand struct {
	OrderID string
	Actor   domain.Actor
}

func (c CancelOrderCommand) Validate() error {
	if c.OrderID == "" {
		return &domain.ValidationError{Msg: "order_id is required"}
	}
	return nil
}

type CancelOrderHandler interface {
	Handle(ctx context.Context, cmd CancelOrderCommand) error
}

type CancelOrderCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
	audit  audit.Sink
	logger *slog.Logger
}

func NewCancelOrderCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
	audit audit.Sink,
	logger *slog.Logger,
) *CancelOrderCommandHandler {
	return &CancelOrderCommandHandler{
		repo:   repo,
		events: events,
		audit:  audit,
		logger: logger,
	}
}

// Handle cancels an order: the status moves to CANCELLED through the regular
// transition graph and the row is soft-deleted in the same save, so cancelled
// orders keep their final status on record while dropping out of default
// queries.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return err
	}

	if !cmd.Actor.MayModify(*order) {
		return &domain.ModificationNotAllowedError{OrderID: order.ID, Reason: "actor is not the owner"}
	}
	if !order.Status.IsCancellable() {
		return &domain.CancellationNotAllowedError{OrderID: order.ID, Status: order.Status}
	}

	now := time.Now().UTC()
	order.Status = domain.StatusCancelled
	order.UpdatedAt = now
	order.DeletedAt = &now

	if _, err := h.repo.Save(ctx, *order, order.Version); err != nil {
		return err
	}

	if err := h.events.PublishOrderCancelled(ctx, order.ID); err != nil {
		h.logger.WarnContext(ctx, "order cancelled event not published", "order_id", order.ID, "error", err)
	}
	h.audit.Record(ctx, audit.Entry{
		Entity:   "order",
		EntityID: order.ID,
		Action:   "cancelled",
		Actor:    cmd.Actor.UserID,
	})

	return nil
}

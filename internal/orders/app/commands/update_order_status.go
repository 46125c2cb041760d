package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
)

type UpdateOrderStatusCommand struct {
	OrderID      string
	TargetStatus string
	Actor        domain.Actor
}

func (c UpdateOrderStatusCommand) Validate() error {
	if c.OrderID == "" {
		return &domain.ValidationError{Msg: "order_id is required"}
	}
	if c.TargetStatus == "" {
		return &domain.ValidationError{Msg: "target_status is required"}
	}
	return nil
}

type UpdateOrderStatusHandler interface {
	Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error)
}

type UpdateOrderStatusCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
	audit  audit.Sink
	logger *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
	audit audit.Sink,
	logger *slog.Logger,
) *UpdateOrderStatusCommandHandler {
	return &UpdateOrderStatusCommandHandler{
		repo:   repo,
		events: events,
		audit:  audit,
		logger: logger,
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	target, err := domain.ParseStatus(cmd.TargetStatus)
	if err != nil {
		return nil, err
	}

	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if err := domain.Transitions.Validate(string(order.Status), string(target)); err != nil {
		return nil, err
	}

	// Self-transition is a legal no-op.
	if order.Status == target {
		return order, nil
	}

	previous := order.Status
	order.Status = target
	order.UpdatedAt = time.Now().UTC()

	saved, err := h.repo.Save(ctx, *order, order.Version)
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderStatusChanged(ctx, saved.ID, string(previous), string(target)); err != nil {
		h.logger.WarnContext(ctx, "order status event not published", "order_id", saved.ID, "error", err)
	}
	h.audit.Record(ctx, audit.Entry{
		Entity:   "order",
		EntityID: saved.ID,
		Action:   "status_changed",
		Actor:    cmd.Actor.UserID,
		Detail:   string(previous) + " -> " + string(target),
	})

	return saved, nil
}

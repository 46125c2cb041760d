package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
)

// UpdateOrderCommand applies a partial update to an order. Only non-nil patch
// fields overwrite; Items, when present, replaces the full line-item set and
// the total is recomputed.
type UpdateOrderCommand struct {
	OrderID         string
	Actor           domain.Actor
	ExpectedVersion int64
	Items           *[]ItemInput
}

func (c UpdateOrderCommand) Validate() error {
	if c.OrderID == "" {
		return &domain.ValidationError{Msg: "order_id is required"}
	}
	if c.ExpectedVersion < 1 {
		return &domain.ValidationError{Msg: "expected_version is required"}
	}
	if c.Items != nil && len(*c.Items) == 0 {
		return &domain.ValidationError{Msg: "items must not be emptied"}
	}
	return nil
}

type UpdateOrderHandler interface {
	Handle(ctx context.Context, cmd UpdateOrderCommand) (*domain.Order, error)
}

type UpdateOrderCommandHandler struct {
	repo        ports.OrderRepository
	events      ports.EventBus
	audit       audit.Sink
	logger      *slog.Logger
	maxQuantity int
}

func NewUpdateOrderCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
	audit audit.Sink,
	logger *slog.Logger,
	maxQuantity int,
) *UpdateOrderCommandHandler {
	return &UpdateOrderCommandHandler{
		repo:        repo,
		events:      events,
		audit:       audit,
		logger:      logger,
		maxQuantity: maxQuantity,
	}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if !cmd.Actor.MayModify(*order) {
		return nil, &domain.ModificationNotAllowedError{OrderID: order.ID, Reason: "actor is not the owner"}
	}

	now := time.Now().UTC()
	if !order.Status.IsModifiable() {
		return nil, &domain.ModificationNotAllowedError{
			OrderID: order.ID,
			Reason:  fmt.Sprintf("status %s is frozen for changes", order.Status),
		}
	}
	if !order.IsWithinModificationWindow(now) {
		return nil, &domain.ModificationNotAllowedError{OrderID: order.ID, Reason: "modification window has elapsed"}
	}

	if cmd.Items != nil {
		order.Items = buildItems(order.ID, *cmd.Items)
		order.TotalAmount = order.ComputeTotal()
	}
	order.UpdatedAt = now

	if err := order.Validate(h.maxQuantity); err != nil {
		return nil, err
	}
	for i := range order.Items {
		order.Items[i].FinalPrice = order.Items[i].ComputeFinalPrice()
	}

	saved, err := h.repo.Save(ctx, *order, cmd.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderUpdated(ctx, saved.ID); err != nil {
		h.logger.WarnContext(ctx, "order updated event not published", "order_id", saved.ID, "error", err)
	}
	h.audit.Record(ctx, audit.Entry{
		Entity:   "order",
		EntityID: saved.ID,
		Action:   "updated",
		Actor:    cmd.Actor.UserID,
	})

	return saved, nil
}

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemInput carries the caller-supplied fields for one line item.
type ItemInput struct {
	ProductID     string
	Quantity      int
	UnitPrice     decimal.Decimal
	DiscountValue decimal.Decimal
	FinalPrice    decimal.Decimal
}

type CreateOrderCommand struct {
	UserID string
	Items  []ItemInput

	// TotalAmount is optional. When supplied it must match the computed item
	// total exactly: a mismatch is a client computation bug, not a rounding
	// artifact, and fails loudly.
	TotalAmount *decimal.Decimal
}

func (c CreateOrderCommand) Validate() error {
	if c.UserID == "" {
		return &domain.ValidationError{Msg: "user_id is required"}
	}
	if len(c.Items) == 0 {
		return &domain.ValidationError{Msg: "at least one item is required"}
	}
	return nil
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

type CreateOrderCommandHandler struct {
	repo        ports.OrderRepository
	events      ports.EventBus
	audit       audit.Sink
	logger      *slog.Logger
	maxQuantity int
}

func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
	audit audit.Sink,
	logger *slog.Logger,
	maxQuantity int,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo:        repo,
		events:      events,
		audit:       audit,
		logger:      logger,
		maxQuantity: maxQuantity,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()

	order := domain.Order{
		ID:            orderID,
		UserID:        cmd.UserID,
		Status:        domain.StatusPending,
		Items:         buildItems(orderID, cmd.Items),
		CorrelationID: uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
	}
	order.TotalAmount = order.ComputeTotal()

	if cmd.TotalAmount != nil && !cmd.TotalAmount.Equal(order.TotalAmount) {
		return nil, &domain.ValidationError{
			Msg: fmt.Sprintf("supplied total_amount %s does not match computed %s", cmd.TotalAmount, order.TotalAmount),
		}
	}

	if err := order.Validate(h.maxQuantity); err != nil {
		return nil, err
	}

	// Caller-supplied final prices have passed the tolerance check; persist
	// the recomputed values, never the input.
	for i := range order.Items {
		order.Items[i].FinalPrice = order.Items[i].ComputeFinalPrice()
	}

	if err := h.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Side channels run after the commit and never fail the operation.
	if err := h.events.PublishOrderCreated(ctx, order.ID); err != nil {
		h.logger.WarnContext(ctx, "order created event not published", "order_id", order.ID, "error", err)
	}
	h.audit.Record(ctx, audit.Entry{
		Entity:   "order",
		EntityID: order.ID,
		Action:   "created",
		Actor:    cmd.UserID,
	})

	return &order, nil
}

func buildItems(orderID string, inputs []ItemInput) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, domain.OrderItem{
			ID:            uuid.NewString(),
			OrderID:       orderID,
			ProductID:     in.ProductID,
			Quantity:      in.Quantity,
			UnitPrice:     in.UnitPrice,
			DiscountValue: in.DiscountValue,
			FinalPrice:    in.FinalPrice,
			Version:       1,
		})
	}
	return items
}

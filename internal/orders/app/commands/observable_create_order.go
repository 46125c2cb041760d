package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/metrics"
	"github.com/commercekit/commerce-core/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableCreateOrderHandler decorates order creation with a span, the
// domain counters, and request logging.
type ObservableCreateOrderHandler struct {
	handler CreateOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCreateOrderHandler(handler CreateOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCreateOrderHandler {
	return &ObservableCreateOrderHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateOrderCommand.Handle")
	defer span.End()

	o.logger.InfoContext(ctx, "creating order",
		"user_id", cmd.UserID,
		"item_count", len(cmd.Items),
	)

	start := time.Now()
	order, err := o.handler.Handle(ctx, cmd)
	o.metrics.RecordOrderCreationDuration(ctx, time.Since(start).Seconds())
	o.metrics.RecordOrderCreated(ctx, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to create order",
			"error", err,
			"user_id", cmd.UserID,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("order.status", string(order.Status)),
		attribute.String("order.total_amount", order.TotalAmount.String()),
	)
	telemetry.SetSpanSuccess(span)

	o.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total_amount", order.TotalAmount.String(),
	)

	return order, nil
}

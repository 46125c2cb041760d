package commands

import (
	"context"
	"log/slog"

	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/metrics"
	"github.com/commercekit/commerce-core/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableUpdateOrderStatusHandler struct {
	handler UpdateOrderStatusHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableUpdateOrderStatusHandler(handler UpdateOrderStatusHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableUpdateOrderStatusHandler {
	return &ObservableUpdateOrderStatusHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableUpdateOrderStatusHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "UpdateOrderStatusCommand.Handle")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", cmd.OrderID),
		attribute.String("order.target_status", cmd.TargetStatus),
	)

	order, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.metrics.RecordStatusTransition(ctx, "", cmd.TargetStatus, false)
		o.logger.ErrorContext(ctx, "failed to update order status",
			"error", err,
			"order_id", cmd.OrderID,
			"target_status", cmd.TargetStatus,
		)
		return nil, err
	}

	o.metrics.RecordStatusTransition(ctx, "", string(order.Status), true)
	o.logger.InfoContext(ctx, "order status updated",
		"order_id", order.ID,
		"status", string(order.Status),
	)

	telemetry.SetSpanSuccess(span)
	return order, nil
}

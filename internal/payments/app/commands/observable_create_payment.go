package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/metrics"
	"github.com/commercekit/commerce-core/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCreatePaymentHandler struct {
	handler CreatePaymentHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCreatePaymentHandler(handler CreatePaymentHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCreatePaymentHandler {
	return &ObservableCreatePaymentHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCreatePaymentHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (*domain.Payment, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreatePaymentCommand.Handle")
	defer span.End()

	o.logger.InfoContext(ctx, "creating payment",
		"order_id", cmd.OrderID,
		"method_code", cmd.MethodCode,
		"amount", cmd.Amount.String(),
	)

	start := time.Now()
	payment, err := o.handler.Handle(ctx, cmd)
	o.metrics.RecordPaymentCreationDuration(ctx, time.Since(start).Seconds())
	o.metrics.RecordPaymentCreated(ctx, cmd.MethodCode, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to create payment",
			"error", err,
			"order_id", cmd.OrderID,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("payment.id", payment.ID),
		attribute.String("payment.order_id", payment.OrderID),
		attribute.String("payment.status", string(payment.Status)),
		attribute.String("payment.amount", payment.Amount.String()),
	)
	telemetry.SetSpanSuccess(span)

	o.logger.InfoContext(ctx, "payment created",
		"payment_id", payment.ID,
		"order_id", payment.OrderID,
		"net_amount", payment.NetAmount.String(),
	)

	return payment, nil
}

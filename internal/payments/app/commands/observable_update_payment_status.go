package commands

import (
	"context"
	"log/slog"

	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/metrics"
	"github.com/commercekit/commerce-core/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableUpdatePaymentStatusHandler struct {
	handler UpdatePaymentStatusHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableUpdatePaymentStatusHandler(handler UpdatePaymentStatusHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableUpdatePaymentStatusHandler {
	return &ObservableUpdatePaymentStatusHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableUpdatePaymentStatusHandler) Handle(ctx context.Context, cmd UpdatePaymentStatusCommand) (*domain.Payment, error) {
	ctx, span := telemetry.StartSpan(ctx, "UpdatePaymentStatusCommand.Handle")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("payment.id", cmd.PaymentID),
		attribute.String("payment.target_status", cmd.TargetStatus),
	)

	payment, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.metrics.RecordStatusTransition(ctx, cmd.TargetStatus, false)
		o.logger.ErrorContext(ctx, "failed to update payment status",
			"error", err,
			"payment_id", cmd.PaymentID,
			"target_status", cmd.TargetStatus,
		)
		return nil, err
	}

	o.metrics.RecordStatusTransition(ctx, string(payment.Status), true)
	o.logger.InfoContext(ctx, "payment status updated",
		"payment_id", payment.ID,
		"status", string(payment.Status),
	)

	telemetry.SetSpanSuccess(span)
	return payment, nil
}

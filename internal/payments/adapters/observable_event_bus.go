package adapters

import (
	"context"
	"time"

	"github.com/commercekit/commerce-core/internal/kafka"
	"github.com/commercekit/commerce-core/internal/payments/ports"
	"github.com/commercekit/commerce-core/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *kafka.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *kafka.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (b *ObservableEventBus) PublishPaymentCreated(ctx context.Context, paymentID string) error {
	return b.publish(ctx, "payment.created", paymentID, func(ctx context.Context) error {
		return b.bus.PublishPaymentCreated(ctx, paymentID)
	})
}

func (b *ObservableEventBus) PublishPaymentStatusChanged(ctx context.Context, paymentID string, from, to string) error {
	return b.publish(ctx, "payment.status_changed", paymentID, func(ctx context.Context) error {
		return b.bus.PublishPaymentStatusChanged(ctx, paymentID, from, to)
	})
}

func (b *ObservableEventBus) publish(ctx context.Context, topic, paymentID string, fn func(context.Context) error) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.Publish")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("event.topic", topic),
		attribute.String("payment.id", paymentID),
	)

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start).Seconds()

	b.metrics.RecordPublish(ctx, topic, duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

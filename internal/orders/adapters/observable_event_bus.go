package adapters

import (
	"context"
	"time"

	"github.com/commercekit/commerce-core/internal/kafka"
	"github.com/commercekit/commerce-core/internal/orders/ports"
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

func (b *ObservableEventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	return b.publish(ctx, "order.created", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderCreated(ctx, orderID)
	})
}

func (b *ObservableEventBus) PublishOrderUpdated(ctx context.Context, orderID string) error {
	return b.publish(ctx, "order.updated", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderUpdated(ctx, orderID)
	})
}

func (b *ObservableEventBus) PublishOrderStatusChanged(ctx context.Context, orderID string, from, to string) error {
	return b.publish(ctx, "order.status_changed", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderStatusChanged(ctx, orderID, from, to)
	})
}

func (b *ObservableEventBus) PublishOrderCancelled(ctx context.Context, orderID string) error {
	return b.publish(ctx, "order.cancelled", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderCancelled(ctx, orderID)
	})
}

func (b *ObservableEventBus) publish(ctx context.Context, topic, orderID string, fn func(context.Context) error) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.Publish")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("event.topic", topic),
		attribute.String("order.id", orderID),
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

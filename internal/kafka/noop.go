package kafka

import (
	"context"
	"log/slog"
)

// NoopEventBus logs events without sending them to Kafka. Useful for local
// dev before wiring Kafka. It satisfies both the order and the payment event
// bus ports.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderCreated(_ context.Context, orderID string) error {
	slog.Debug("event::order_created", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderUpdated(_ context.Context, orderID string) error {
	slog.Debug("event::order_updated", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderStatusChanged(_ context.Context, orderID string, from, to string) error {
	slog.Debug("event::order_status_changed", "order_id", orderID, "from", from, "to", to)
	return nil
}

func (n *NoopEventBus) PublishOrderCancelled(_ context.Context, orderID string) error {
	slog.Debug("event::order_cancelled", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishPaymentCreated(_ context.Context, paymentID string) error {
	slog.Debug("event::payment_created", "payment_id", paymentID)
	return nil
}

func (n *NoopEventBus) PublishPaymentStatusChanged(_ context.Context, paymentID string, from, to string) error {
	slog.Debug("event::payment_status_changed", "payment_id", paymentID, "from", from, "to", to)
	return nil
}

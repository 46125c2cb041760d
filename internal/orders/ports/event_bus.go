package ports

import "context"

// EventBus defines the contract for publishing order lifecycle events.
// Publishing is best-effort: failures are logged by the caller and never
// roll back the operation that produced the event.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, orderID string) error
	PublishOrderUpdated(ctx context.Context, orderID string) error
	PublishOrderStatusChanged(ctx context.Context, orderID string, from, to string) error
	PublishOrderCancelled(ctx context.Context, orderID string) error
}

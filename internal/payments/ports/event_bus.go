package ports

import "context"

// EventBus defines the contract for publishing payment lifecycle events.
// Publishing is best-effort and never fails the producing operation.
type EventBus interface {
	PublishPaymentCreated(ctx context.Context, paymentID string) error
	PublishPaymentStatusChanged(ctx context.Context, paymentID string, from, to string) error
}

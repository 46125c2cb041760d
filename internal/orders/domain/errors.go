package domain

import "fmt"

// ValidationError marks malformed input detected before any persistence side
// effect. It maps to a 400-equivalent at the API edge.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StatusNotFoundError reports a status code missing from the catalog.
type StatusNotFoundError struct {
	Code string
}

func (e *StatusNotFoundError) Error() string {
	return fmt.Sprintf("order status %q not found", e.Code)
}

// ModificationNotAllowedError reports that ownership, status, or the time
// window forbids an order change.
type ModificationNotAllowedError struct {
	OrderID string
	Reason  string
}

func (e *ModificationNotAllowedError) Error() string {
	return fmt.Sprintf("order %s cannot be modified: %s", e.OrderID, e.Reason)
}

// CancellationNotAllowedError reports that the current status forbids
// cancellation.
type CancellationNotAllowedError struct {
	OrderID string
	Status  OrderStatus
}

func (e *CancellationNotAllowedError) Error() string {
	return fmt.Sprintf("order %s in status %s cannot be cancelled", e.OrderID, e.Status)
}

package domain

import "github.com/commercekit/commerce-core/internal/statemachine"

// OrderStatus captures the lifecycle of an order in the system.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
	StatusRefunded   OrderStatus = "REFUNDED"
	StatusReturned   OrderStatus = "RETURNED"
)

var allStatuses = map[OrderStatus]struct{}{
	StatusPending:    {},
	StatusConfirmed:  {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCancelled:  {},
	StatusRefunded:   {},
	StatusReturned:   {},
}

// Transitions is the order status transition graph, built once at package
// init and never mutated. The terminal set stays empty on purpose: an order
// self-transition is always a legal no-op, even on CANCELLED and REFUNDED,
// and those statuses are final simply because they have no outgoing edges.
var Transitions = statemachine.NewValidator(
	statemachine.NewGraph(map[string][]string{
		string(StatusPending):    {string(StatusConfirmed), string(StatusCancelled)},
		string(StatusConfirmed):  {string(StatusProcessing), string(StatusCancelled)},
		string(StatusProcessing): {string(StatusShipped), string(StatusCancelled)},
		string(StatusShipped):    {string(StatusDelivered)},
		string(StatusDelivered):  {string(StatusReturned), string(StatusRefunded)},
		string(StatusReturned):   {string(StatusRefunded)},
	}),
	nil,
)

// ParseStatus resolves a status code from the catalog.
func ParseStatus(code string) (OrderStatus, error) {
	status := OrderStatus(code)
	if _, ok := allStatuses[status]; !ok {
		return "", &StatusNotFoundError{Code: code}
	}
	return status, nil
}

// IsModifiable reports whether order content may still change in this status.
func (s OrderStatus) IsModifiable() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing:
		return true
	default:
		return false
	}
}

// IsCancellable reports whether the cancellation edge exists for this
// status. The legal CANCELLED self-transition does not count as an edge.
func (s OrderStatus) IsCancellable() bool {
	return s != StatusCancelled && Transitions.CanTransition(string(s), string(StatusCancelled))
}

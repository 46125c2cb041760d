package domain

import "github.com/commercekit/commerce-core/internal/statemachine"

// PaymentStatus captures the lifecycle of a payment.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentAuthorized PaymentStatus = "AUTHORIZED"
	PaymentCaptured   PaymentStatus = "CAPTURED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
	PaymentVoided     PaymentStatus = "VOIDED"
)

var allStatuses = map[PaymentStatus]struct{}{
	PaymentPending:    {},
	PaymentAuthorized: {},
	PaymentCaptured:   {},
	PaymentFailed:     {},
	PaymentRefunded:   {},
	PaymentVoided:     {},
}

// Transitions is the payment transition graph. The terminal set is absolute:
// once a payment reaches CAPTURED, FAILED, REFUNDED, or VOIDED, nothing moves
// it again, whatever edges the graph might otherwise admit.
var Transitions = statemachine.NewValidator(
	statemachine.NewGraph(map[string][]string{
		string(PaymentPending):    {string(PaymentAuthorized), string(PaymentFailed), string(PaymentVoided)},
		string(PaymentAuthorized): {string(PaymentCaptured), string(PaymentFailed), string(PaymentVoided)},
	}),
	[]string{string(PaymentCaptured), string(PaymentFailed), string(PaymentRefunded), string(PaymentVoided)},
)

// ParseStatus resolves a payment status code from the catalog.
func ParseStatus(code string) (PaymentStatus, error) {
	status := PaymentStatus(code)
	if _, ok := allStatuses[status]; !ok {
		return "", &StatusNotFoundError{Code: code}
	}
	return status, nil
}

// IsTerminal reports whether the status is frozen.
func (s PaymentStatus) IsTerminal() bool {
	return Transitions.IsTerminal(string(s))
}

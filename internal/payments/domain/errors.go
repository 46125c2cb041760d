package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError marks malformed payment input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StatusNotFoundError reports a status code missing from the catalog.
type StatusNotFoundError struct {
	Code string
}

func (e *StatusNotFoundError) Error() string {
	return fmt.Sprintf("payment status %q not found", e.Code)
}

// MethodNotFoundError reports an unknown payment method code.
type MethodNotFoundError struct {
	Code string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("payment method %q not found", e.Code)
}

// MethodInactiveError reports a known but disabled payment method.
type MethodInactiveError struct {
	Code string
}

func (e *MethodInactiveError) Error() string {
	return fmt.Sprintf("payment method %q is inactive", e.Code)
}

// CurrencyNotFoundError reports an unknown or disabled currency code.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("currency %q not found", e.Code)
}

// InvalidAmountError reports an amount outside the method's configured
// bounds, naming the bound that was violated.
type InvalidAmountError struct {
	Amount decimal.Decimal
	Bound  string
	Limit  decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount %s violates %s bound %s", e.Amount, e.Bound, e.Limit)
}

// TerminalStatusError reports an attempted transition out of a terminal
// status, naming both the frozen status and the attempted target.
type TerminalStatusError struct {
	PaymentID string
	Status    PaymentStatus
	Target    PaymentStatus
}

func (e *TerminalStatusError) Error() string {
	return fmt.Sprintf("payment %s is in terminal status %s, transition to %s is not permitted", e.PaymentID, e.Status, e.Target)
}

package domain

import "github.com/shopspring/decimal"

// PaymentMethod is read-only reference data: the configured bounds and fee of
// one way to pay.
type PaymentMethod struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Active     bool            `json:"active"`
	MinAmount  decimal.Decimal `json:"min_amount"`
	MaxAmount  decimal.Decimal `json:"max_amount"`
	FeePercent decimal.Decimal `json:"fee_percent"`
}

// ValidateAmount checks the amount against the method's configured bounds,
// naming the violated bound in the rejection.
func (m PaymentMethod) ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThan(m.MinAmount) {
		return &InvalidAmountError{Amount: amount, Bound: "min", Limit: m.MinAmount}
	}
	if amount.GreaterThan(m.MaxAmount) {
		return &InvalidAmountError{Amount: amount, Bound: "max", Limit: m.MaxAmount}
	}
	return nil
}

// ComputeFee derives the processing fee from the method's fee percentage,
// rounded half-up to two decimals.
func (m PaymentMethod) ComputeFee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(m.FeePercent).Div(decimal.NewFromInt(100)).Round(2)
}

// Currency is read-only reference data.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment belongs to exactly one order by id; orders and payments are
// separate aggregates and never reference each other in memory.
type Payment struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"order_id"`
	MethodCode     string          `json:"method_code"`
	Status         PaymentStatus   `json:"status"`
	CurrencyCode   string          `json:"currency_code"`
	Amount         decimal.Decimal `json:"amount"`
	ProcessingFee  decimal.Decimal `json:"processing_fee"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	CorrelationID  string          `json:"correlation_id"`
	PaymentDate    *time.Time      `json:"payment_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty"`
	Version        int64           `json:"version"`
}

// ComputeNetAmount derives the persisted net: amount minus processing fee.
// It is never settable directly.
func (p Payment) ComputeNetAmount() decimal.Decimal {
	return p.Amount.Sub(p.ProcessingFee).Round(2)
}

// IsDeleted reports whether the payment has been soft-deleted. The existence
// flag and the status lifecycle are independent axes.
func (p Payment) IsDeleted() bool {
	return p.DeletedAt != nil
}

// MarkCaptured stamps the payment date the first time a capture-equivalent
// status is reached. Idempotent: an existing date is never overwritten.
func (p *Payment) MarkCaptured(at time.Time) {
	if p.PaymentDate == nil {
		p.PaymentDate = &at
	}
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMaxItemQuantity bounds a single line item when no explicit limit is
// configured.
const DefaultMaxItemQuantity = 100

// ModificationWindow is how long after creation an order stays editable,
// independent of its status.
const ModificationWindow = 24 * time.Hour

// finalPriceTolerance is the rounding slack allowed between a caller-supplied
// item final price and the recomputed one.
var finalPriceTolerance = decimal.NewFromFloat(0.01)

// Order is the aggregate root: the order row plus its line items, loaded and
// saved as one unit.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Status        OrderStatus     `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Items         []OrderItem     `json:"items"`
	CorrelationID string          `json:"correlation_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
	Version       int64           `json:"version"`
}

// OrderItem is owned exclusively by one order. A caller-supplied FinalPrice
// is checked against the derived value within a small rounding tolerance and
// normalized to the derived value before persistence.
type OrderItem struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	FinalPrice    decimal.Decimal `json:"final_price"`
	Version       int64           `json:"version"`
}

// ComputeFinalPrice derives the line total: unit price times quantity minus
// the discount, floored at zero and rounded half-up to two decimals.
func (i OrderItem) ComputeFinalPrice() decimal.Decimal {
	gross := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	final := gross.Sub(i.DiscountValue)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return final.Round(2)
}

// Validate checks the line item against business constraints. A maxQuantity
// of zero falls back to DefaultMaxItemQuantity.
func (i OrderItem) Validate(maxQuantity int) error {
	if maxQuantity <= 0 {
		maxQuantity = DefaultMaxItemQuantity
	}
	if i.ProductID == "" {
		return invalidf("product_id is required")
	}
	if i.Quantity < 1 {
		return invalidf("quantity must be at least 1")
	}
	if i.Quantity > maxQuantity {
		return invalidf("quantity %d exceeds maximum %d", i.Quantity, maxQuantity)
	}
	if i.UnitPrice.IsNegative() {
		return invalidf("unit_price must not be negative")
	}
	if i.DiscountValue.IsNegative() {
		return invalidf("discount_value must not be negative")
	}
	gross := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	if i.DiscountValue.GreaterThan(gross) {
		return invalidf("discount_value %s exceeds line total %s", i.DiscountValue, gross)
	}
	if !i.FinalPrice.IsZero() {
		expected := i.ComputeFinalPrice()
		if i.FinalPrice.Sub(expected).Abs().GreaterThan(finalPriceTolerance) {
			return invalidf("final_price %s does not match computed %s", i.FinalPrice, expected)
		}
	}
	return nil
}

// ComputeTotal sums the recomputed final price of every item, rounded half-up
// to two decimals.
func (o Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.ComputeFinalPrice())
	}
	return total.Round(2)
}

// Validate ensures the aggregate adheres to its creation invariants. The
// total is matched exactly against the item sum; a mismatch means the caller
// computed it wrong and must fail loudly rather than be silently corrected.
func (o Order) Validate(maxQuantity int) error {
	if o.UserID == "" {
		return invalidf("user_id is required")
	}
	if len(o.Items) == 0 {
		return invalidf("order requires at least one item")
	}
	for idx, item := range o.Items {
		if err := item.Validate(maxQuantity); err != nil {
			return invalidf("item %d: %v", idx, err)
		}
	}
	if !o.TotalAmount.Equal(o.ComputeTotal()) {
		return invalidf("total_amount %s does not match item total %s", o.TotalAmount, o.ComputeTotal())
	}
	return nil
}

// IsDeleted reports whether the order has been soft-deleted.
func (o Order) IsDeleted() bool {
	return o.DeletedAt != nil
}

// IsModifiable reports whether content changes are permitted: the status must
// allow modification and the order must still be inside its edit window.
func (o Order) IsModifiable(now time.Time) bool {
	return o.Status.IsModifiable() && o.IsWithinModificationWindow(now)
}

// IsWithinModificationWindow applies the 24-hour-from-creation cutoff.
func (o Order) IsWithinModificationWindow(now time.Time) bool {
	return now.Sub(o.CreatedAt) <= ModificationWindow
}

// OwnedBy reports whether the given actor owns the order.
func (o Order) OwnedBy(userID string) bool {
	return o.UserID == userID
}

func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

package ports

import (
	"context"

	"github.com/commercekit/commerce-core/internal/payments/domain"
)

// ReferenceData resolves the read-only configuration a payment is validated
// against: method bounds and fees, and currency codes. Implementations load
// from the reference tables; lookups return typed not-found errors from the
// domain package.
type ReferenceData interface {
	PaymentMethod(ctx context.Context, code string) (*domain.PaymentMethod, error)
	Currency(ctx context.Context, code string) (*domain.Currency, error)
}

package memory

import (
	"context"
	"sync"

	"github.com/commercekit/commerce-core/internal/payments/domain"
)

// ReferenceData serves payment methods and currencies from memory. The data
// is loaded once at construction and read-only afterwards.
type ReferenceData struct {
	mu         sync.RWMutex
	methods    map[string]domain.PaymentMethod
	currencies map[string]domain.Currency
}

// NewReferenceData constructs the store from the given catalogs.
func NewReferenceData(methods []domain.PaymentMethod, currencies []domain.Currency) *ReferenceData {
	r := &ReferenceData{
		methods:    make(map[string]domain.PaymentMethod, len(methods)),
		currencies: make(map[string]domain.Currency, len(currencies)),
	}
	for _, m := range methods {
		r.methods[m.Code] = m
	}
	for _, c := range currencies {
		r.currencies[c.Code] = c
	}
	return r
}

// PaymentMethod resolves a method by code.
func (r *ReferenceData) PaymentMethod(_ context.Context, code string) (*domain.PaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	method, ok := r.methods[code]
	if !ok {
		return nil, &domain.MethodNotFoundError{Code: code}
	}
	clone := method
	return &clone, nil
}

// Currency resolves a currency by code.
func (r *ReferenceData) Currency(_ context.Context, code string) (*domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	currency, ok := r.currencies[code]
	if !ok {
		return nil, &domain.CurrencyNotFoundError{Code: code}
	}
	clone := currency
	return &clone, nil
}

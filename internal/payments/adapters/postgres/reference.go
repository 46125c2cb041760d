package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferenceData resolves payment methods and currencies from the seeded
// reference tables.
type ReferenceData struct {
	pool *pgxpool.Pool
}

func NewReferenceData(pool *pgxpool.Pool) *ReferenceData {
	return &ReferenceData{pool: pool}
}

func (r *ReferenceData) PaymentMethod(ctx context.Context, code string) (*domain.PaymentMethod, error) {
	query := `
		SELECT code, name, active, min_amount, max_amount, fee_percent
		FROM payment_methods
		WHERE code = $1
	`

	var method domain.PaymentMethod
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&method.Code,
		&method.Name,
		&method.Active,
		&method.MinAmount,
		&method.MaxAmount,
		&method.FeePercent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.MethodNotFoundError{Code: code}
		}
		return nil, fmt.Errorf("select payment method: %w", err)
	}

	return &method, nil
}

func (r *ReferenceData) Currency(ctx context.Context, code string) (*domain.Currency, error) {
	query := `
		SELECT code, name, active
		FROM currencies
		WHERE code = $1
	`

	var currency domain.Currency
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&currency.Code,
		&currency.Name,
		&currency.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.CurrencyNotFoundError{Code: code}
		}
		return nil, fmt.Errorf("select currency: %w", err)
	}

	return &currency, nil
}

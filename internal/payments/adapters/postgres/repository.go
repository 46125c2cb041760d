package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create persists the payment and its first ledger entry in one transaction.
// A payment row without a history row must never exist.
func (r *Repository) Create(ctx context.Context, payment domain.Payment, first domain.StatusChange) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create payment: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO payments (
			id, order_id, method_code, status, currency_code, amount, processing_fee,
			net_amount, transaction_ref, failure_reason, correlation_id, payment_date,
			created_at, updated_at, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = tx.Exec(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.MethodCode,
		payment.Status,
		payment.CurrencyCode,
		payment.Amount,
		payment.ProcessingFee,
		payment.NetAmount,
		payment.TransactionRef,
		payment.FailureReason,
		payment.CorrelationID,
		payment.PaymentDate,
		payment.CreatedAt,
		payment.UpdatedAt,
		payment.Version,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	if err := insertHistory(ctx, tx, first); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create payment: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
		SELECT id, order_id, method_code, status, currency_code, amount, processing_fee,
		       net_amount, transaction_ref, failure_reason, correlation_id, payment_date,
		       created_at, updated_at, deleted_at, version
		FROM payments
		WHERE id = $1 AND deleted_at IS NULL
	`

	var payment domain.Payment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.MethodCode,
		&payment.Status,
		&payment.CurrencyCode,
		&payment.Amount,
		&payment.ProcessingFee,
		&payment.NetAmount,
		&payment.TransactionRef,
		&payment.FailureReason,
		&payment.CorrelationID,
		&payment.PaymentDate,
		&payment.CreatedAt,
		&payment.UpdatedAt,
		&payment.DeletedAt,
		&payment.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select payment: %w", err)
	}

	return &payment, nil
}

// Save updates the payment under a compare-and-swap on the row version and,
// when change is non-nil, appends the ledger entry in the same transaction.
func (r *Repository) Save(ctx context.Context, payment domain.Payment, expectedVersion int64, change *domain.StatusChange) (*domain.Payment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin save payment: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE payments
		SET status = $1, processing_fee = $2, net_amount = $3, transaction_ref = $4,
		    failure_reason = $5, payment_date = $6, updated_at = $7, version = version + 1
		WHERE id = $8 AND version = $9 AND deleted_at IS NULL
		RETURNING version
	`

	var newVersion int64
	err = tx.QueryRow(ctx, query,
		payment.Status,
		payment.ProcessingFee,
		payment.NetAmount,
		payment.TransactionRef,
		payment.FailureReason,
		payment.PaymentDate,
		payment.UpdatedAt,
		payment.ID,
		expectedVersion,
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMiss(ctx, payment.ID)
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}

	if change != nil {
		if err := insertHistory(ctx, tx, *change); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit save payment: %w", err)
	}

	payment.Version = newVersion
	return &payment, nil
}

// SoftDelete flags the payment without touching its status or its ledger.
func (r *Repository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE payments
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, deletedAt, id)
	if err != nil {
		return fmt.Errorf("soft delete payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

// History returns the ledger oldest-first. The trail is served regardless of
// the payment's deletion flag.
func (r *Repository) History(ctx context.Context, paymentID string) ([]domain.StatusChange, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE id = $1)`, paymentID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("probe payment existence: %w", err)
	}
	if !exists {
		return nil, ports.ErrNotFound
	}

	query := `
		SELECT id, payment_id, previous_status, new_status, changed_by, reason, correlation_id, changed_at
		FROM payment_status_history
		WHERE payment_id = $1
		ORDER BY changed_at ASC
	`

	rows, err := r.pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("query payment history: %w", err)
	}
	defer rows.Close()

	var entries []domain.StatusChange
	for rows.Next() {
		var entry domain.StatusChange
		if err := rows.Scan(
			&entry.ID,
			&entry.PaymentID,
			&entry.Previous,
			&entry.New,
			&entry.ChangedBy,
			&entry.Reason,
			&entry.CorrelationID,
			&entry.ChangedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment history: %w", err)
	}

	return entries, nil
}

func (r *Repository) classifyMiss(ctx context.Context, id string) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE id = $1 AND deleted_at IS NULL)`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("probe payment existence: %w", err)
	}
	if exists {
		return ports.ErrVersionConflict
	}
	return ports.ErrNotFound
}

func insertHistory(ctx context.Context, tx pgx.Tx, change domain.StatusChange) error {
	query := `
		INSERT INTO payment_status_history (id, payment_id, previous_status, new_status, changed_by, reason, correlation_id, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		change.ID,
		change.PaymentID,
		change.Previous,
		change.New,
		change.ChangedBy,
		change.Reason,
		change.CorrelationID,
		change.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create persists the order and its items in one transaction.
func (r *Repository) Create(ctx context.Context, order domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO orders (id, user_id, status, total_amount, correlation_id, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.Status,
		order.TotalAmount,
		order.CorrelationID,
		order.CreatedAt,
		order.UpdatedAt,
		order.Version,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if err := insertItems(ctx, tx, order.Items); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, correlation_id, created_at, updated_at, deleted_at, version
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL
	`

	var order domain.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.TotalAmount,
		&order.CorrelationID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.DeletedAt,
		&order.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `
		SELECT id, user_id, status, total_amount, correlation_id, created_at, updated_at, deleted_at, version
		FROM orders
		WHERE deleted_at IS NULL
		  AND ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR user_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	var statusFilter *string
	if filter.Status != nil {
		s := string(*filter.Status)
		statusFilter = &s
	}

	offset := (page - 1) * pageSize

	rows, err := r.pool.Query(ctx, query, statusFilter, filter.UserID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.TotalAmount,
			&order.CorrelationID,
			&order.CreatedAt,
			&order.UpdatedAt,
			&order.DeletedAt,
			&order.Version,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// Save writes the full aggregate under a compare-and-swap on the order row
// version. Items are replaced wholesale inside the same transaction, so the
// update is all-or-nothing.
func (r *Repository) Save(ctx context.Context, order domain.Order, expectedVersion int64) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin save order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE orders
		SET user_id = $1, status = $2, total_amount = $3, updated_at = $4, deleted_at = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	var newVersion int64
	err = tx.QueryRow(ctx, query,
		order.UserID,
		order.Status,
		order.TotalAmount,
		order.UpdatedAt,
		order.DeletedAt,
		order.ID,
		expectedVersion,
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMiss(ctx, order.ID)
		}
		return nil, fmt.Errorf("update order: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return nil, fmt.Errorf("clear order items: %w", err)
	}

	for i := range order.Items {
		order.Items[i].Version++
	}
	if err := insertItems(ctx, tx, order.Items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit save order: %w", err)
	}

	order.Version = newVersion
	return &order, nil
}

// SoftDelete flags the order and its items without removing any row.
func (r *Repository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin soft delete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `
		UPDATE orders
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, deletedAt, id)
	if err != nil {
		return fmt.Errorf("soft delete order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
		UPDATE order_items
		SET deleted_at = $1
		WHERE order_id = $2 AND deleted_at IS NULL
	`, deletedAt, id); err != nil {
		return fmt.Errorf("soft delete order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit soft delete: %w", err)
	}

	return nil
}

// classifyMiss tells a stale version apart from a missing or soft-deleted row
// after a zero-row compare-and-swap.
func (r *Repository) classifyMiss(ctx context.Context, id string) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1 AND deleted_at IS NULL)`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("probe order existence: %w", err)
	}
	if exists {
		return ports.ErrVersionConflict
	}
	return ports.ErrNotFound
}

func (r *Repository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, discount_value, final_price, version
		FROM order_items
		WHERE order_id = $1 AND deleted_at IS NULL
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.DiscountValue,
			&item.FinalPrice,
			&item.Version,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, items []domain.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, discount_value, final_price, position, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for position, item := range items {
		_, err := tx.Exec(ctx, query,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
			item.DiscountValue,
			item.FinalPrice,
			position,
			item.Version,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

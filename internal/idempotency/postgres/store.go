// Package postgres persists idempotency responses in the idempotency_keys
// table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/commercekit/commerce-core/internal/idempotency"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	selectKeySQL = `SELECT status_code, body, entity_id FROM idempotency_keys WHERE key = $1`

	// DO NOTHING keeps the first response when two requests with the same
	// key race each other.
	insertKeySQL = `INSERT INTO idempotency_keys (key, status_code, body, entity_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO NOTHING`
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, key string) (*idempotency.StoredResponse, error) {
	var resp idempotency.StoredResponse
	err := s.pool.QueryRow(ctx, selectKeySQL, key).Scan(&resp.StatusCode, &resp.Body, &resp.EntityID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select idempotency key: %w", err)
	}
	return &resp, nil
}

func (s *Store) Save(ctx context.Context, key string, response idempotency.StoredResponse) error {
	_, err := s.pool.Exec(ctx, insertKeySQL, key, response.StatusCode, response.Body, response.EntityID)
	if err != nil {
		return fmt.Errorf("insert idempotency key: %w", err)
	}
	return nil
}

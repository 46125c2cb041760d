package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const healthTimeout = 2 * time.Second

// CheckHealth pings the pool with a short deadline so a stuck database does
// not hang the readiness endpoint.
func CheckHealth(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	return pool.Ping(ctx)
}

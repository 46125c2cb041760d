//go:build integration

package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/commercekit/commerce-core/internal/database"
	"github.com/commercekit/commerce-core/internal/idempotency"
	"github.com/commercekit/commerce-core/internal/idempotency/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := testpostgres.Run(ctx, "postgres:16-alpine",
		testpostgres.WithDatabase("commerce_test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	if err := database.RunMigrations(dsn, migrationsDir(t)); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for dir != filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations")
		}
		dir = filepath.Dir(dir)
	}
	t.Fatal("go.mod not found in any parent directory")
	return ""
}

func TestStoreSaveAndGet(t *testing.T) {
	store := postgres.NewStore(setupTestDB(t))
	ctx := context.Background()

	response := idempotency.StoredResponse{
		StatusCode: 201,
		Body:       []byte(`{"id": "order-1"}`),
		EntityID:   "order-1",
	}
	if err := store.Save(ctx, "key-1", response); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Get(ctx, "key-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored response, got nil")
	}
	if got.StatusCode != 201 || got.EntityID != "order-1" || string(got.Body) != string(response.Body) {
		t.Errorf("unexpected stored response: %+v", got)
	}
}

func TestStoreGetUnseenKey(t *testing.T) {
	store := postgres.NewStore(setupTestDB(t))

	got, err := store.Get(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unseen key, got %+v", got)
	}
}

func TestStoreSaveKeepsFirstWrite(t *testing.T) {
	store := postgres.NewStore(setupTestDB(t))
	ctx := context.Background()

	first := idempotency.StoredResponse{StatusCode: 201, Body: []byte(`{}`), EntityID: "first"}
	second := idempotency.StoredResponse{StatusCode: 200, Body: []byte(`{}`), EntityID: "second"}

	if err := store.Save(ctx, "key-1", first); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(ctx, "key-1", second); err != nil {
		t.Fatalf("duplicate save failed: %v", err)
	}

	got, err := store.Get(ctx, "key-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.EntityID != "first" {
		t.Errorf("expected first write to win, got %+v", got)
	}
}

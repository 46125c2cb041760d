package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
)

type mockRepository struct {
	createFn     func(ctx context.Context, order domain.Order) error
	getByIDFn    func(ctx context.Context, id string) (*domain.Order, error)
	listFn       func(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error)
	saveFn       func(ctx context.Context, order domain.Order, expectedVersion int64) (*domain.Order, error)
	softDeleteFn func(ctx context.Context, id string, deletedAt time.Time) error
}

func (m *mockRepository) Create(ctx context.Context, order domain.Order) error {
	if m.createFn != nil {
		return m.createFn(ctx, order)
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *mockRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockRepository) Save(ctx context.Context, order domain.Order, expectedVersion int64) (*domain.Order, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, order, expectedVersion)
	}
	saved := order
	saved.Version = expectedVersion + 1
	return &saved, nil
}

func (m *mockRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, id, deletedAt)
	}
	return nil
}

type mockEventBus struct {
	publishOrderCreatedFn       func(ctx context.Context, orderID string) error
	publishOrderUpdatedFn       func(ctx context.Context, orderID string) error
	publishOrderStatusChangedFn func(ctx context.Context, orderID string, from, to string) error
	publishOrderCancelledFn     func(ctx context.Context, orderID string) error
}

func (m *mockEventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	if m.publishOrderCreatedFn != nil {
		return m.publishOrderCreatedFn(ctx, orderID)
	}
	return nil
}

func (m *mockEventBus) PublishOrderUpdated(ctx context.Context, orderID string) error {
	if m.publishOrderUpdatedFn != nil {
		return m.publishOrderUpdatedFn(ctx, orderID)
	}
	return nil
}

func (m *mockEventBus) PublishOrderStatusChanged(ctx context.Context, orderID string, from, to string) error {
	if m.publishOrderStatusChangedFn != nil {
		return m.publishOrderStatusChangedFn(ctx, orderID, from, to)
	}
	return nil
}

func (m *mockEventBus) PublishOrderCancelled(ctx context.Context, orderID string) error {
	if m.publishOrderCancelledFn != nil {
		return m.publishOrderCancelledFn(ctx, orderID)
	}
	return nil
}

type mockAuditSink struct {
	entries []audit.Entry
}

func (m *mockAuditSink) Record(_ context.Context, entry audit.Entry) {
	m.entries = append(m.entries, entry)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package adapters

import (
	"context"
	"time"

	"github.com/commercekit/commerce-core/internal/database"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
	"github.com/commercekit/commerce-core/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableRepository wraps another repository with a span and a query
// metric per call.
type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{repo: repo, metrics: metrics}
}

func (r *ObservableRepository) Create(ctx context.Context, order domain.Order) error {
	return r.observe(ctx, "OrderRepository.Create", "create_order",
		[]attribute.KeyValue{attribute.String("order.id", order.ID)},
		func(ctx context.Context) error {
			return r.repo.Create(ctx, order)
		})
}

func (r *ObservableRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order *domain.Order
	err := r.observe(ctx, "OrderRepository.GetByID", "get_order_by_id",
		[]attribute.KeyValue{attribute.String("order.id", id)},
		func(ctx context.Context) error {
			var err error
			order, err = r.repo.GetByID(ctx, id)
			return err
		})
	return order, err
}

func (r *ObservableRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	attrs := []attribute.KeyValue{
		attribute.Int("page", filter.Page),
		attribute.Int("page_size", filter.PageSize),
	}
	if filter.Status != nil {
		attrs = append(attrs, attribute.String("filter.status", string(*filter.Status)))
	}

	var orders []domain.Order
	err := r.observe(ctx, "OrderRepository.List", "list_orders", attrs,
		func(ctx context.Context) error {
			var err error
			orders, err = r.repo.List(ctx, filter)
			return err
		})
	return orders, err
}

func (r *ObservableRepository) Save(ctx context.Context, order domain.Order, expectedVersion int64) (*domain.Order, error) {
	var saved *domain.Order
	err := r.observe(ctx, "OrderRepository.Save", "save_order",
		[]attribute.KeyValue{
			attribute.String("order.id", order.ID),
			attribute.Int64("order.expected_version", expectedVersion),
		},
		func(ctx context.Context) error {
			var err error
			saved, err = r.repo.Save(ctx, order, expectedVersion)
			return err
		})
	return saved, err
}

func (r *ObservableRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	return r.observe(ctx, "OrderRepository.SoftDelete", "soft_delete_order",
		[]attribute.KeyValue{attribute.String("order.id", id)},
		func(ctx context.Context) error {
			return r.repo.SoftDelete(ctx, id, deletedAt)
		})
}

func (r *ObservableRepository) observe(ctx context.Context, spanName, operation string, attrs []attribute.KeyValue, fn func(context.Context) error) error {
	ctx, span := telemetry.StartSpan(ctx, spanName)
	defer span.End()
	telemetry.AddSpanAttributes(span, attrs...)

	start := time.Now()
	err := fn(ctx)
	r.metrics.RecordQuery(ctx, operation, time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}
	telemetry.SetSpanSuccess(span)
	return nil
}

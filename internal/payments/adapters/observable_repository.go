package adapters

import (
	"context"
	"time"

	"github.com/commercekit/commerce-core/internal/database"
	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
	"github.com/commercekit/commerce-core/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableRepository wraps another repository with a span and a query
// metric per call.
type ObservableRepository struct {
	repo    ports.PaymentRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.PaymentRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{repo: repo, metrics: metrics}
}

func (r *ObservableRepository) Create(ctx context.Context, payment domain.Payment, first domain.StatusChange) error {
	return r.observe(ctx, "PaymentRepository.Create", "create_payment",
		[]attribute.KeyValue{attribute.String("payment.id", payment.ID)},
		func(ctx context.Context) error {
			return r.repo.Create(ctx, payment, first)
		})
}

func (r *ObservableRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var payment *domain.Payment
	err := r.observe(ctx, "PaymentRepository.GetByID", "get_payment_by_id",
		[]attribute.KeyValue{attribute.String("payment.id", id)},
		func(ctx context.Context) error {
			var err error
			payment, err = r.repo.GetByID(ctx, id)
			return err
		})
	return payment, err
}

func (r *ObservableRepository) Save(ctx context.Context, payment domain.Payment, expectedVersion int64, change *domain.StatusChange) (*domain.Payment, error) {
	var saved *domain.Payment
	err := r.observe(ctx, "PaymentRepository.Save", "save_payment",
		[]attribute.KeyValue{
			attribute.String("payment.id", payment.ID),
			attribute.Int64("payment.expected_version", expectedVersion),
		},
		func(ctx context.Context) error {
			var err error
			saved, err = r.repo.Save(ctx, payment, expectedVersion, change)
			return err
		})
	return saved, err
}

func (r *ObservableRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	return r.observe(ctx, "PaymentRepository.SoftDelete", "soft_delete_payment",
		[]attribute.KeyValue{attribute.String("payment.id", id)},
		func(ctx context.Context) error {
			return r.repo.SoftDelete(ctx, id, deletedAt)
		})
}

func (r *ObservableRepository) History(ctx context.Context, paymentID string) ([]domain.StatusChange, error) {
	var changes []domain.StatusChange
	err := r.observe(ctx, "PaymentRepository.History", "get_payment_history",
		[]attribute.KeyValue{attribute.String("payment.id", paymentID)},
		func(ctx context.Context) error {
			var err error
			changes, err = r.repo.History(ctx, paymentID)
			return err
		})
	return changes, err
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

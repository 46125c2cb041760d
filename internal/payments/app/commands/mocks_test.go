package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type mockRepository struct {
	createFn     func(ctx context.Context, payment domain.Payment, first domain.StatusChange) error
	getByIDFn    func(ctx context.Context, id string) (*domain.Payment, error)
	saveFn       func(ctx context.Context, payment domain.Payment, expectedVersion int64, change *domain.StatusChange) (*domain.Payment, error)
	softDeleteFn func(ctx context.Context, id string, deletedAt time.Time) error
	historyFn    func(ctx context.Context, paymentID string) ([]domain.StatusChange, error)
}

func (m *mockRepository) Create(ctx context.Context, payment domain.Payment, first domain.StatusChange) error {
	if m.createFn != nil {
		return m.createFn(ctx, payment, first)
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *mockRepository) Save(ctx context.Context, payment domain.Payment, expectedVersion int64, change *domain.StatusChange) (*domain.Payment, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, payment, expectedVersion, change)
	}
	saved := payment
	saved.Version = expectedVersion + 1
	return &saved, nil
}

func (m *mockRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, id, deletedAt)
	}
	return nil
}

func (m *mockRepository) History(ctx context.Context, paymentID string) ([]domain.StatusChange, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, paymentID)
	}
	return nil, nil
}

type mockReferenceData struct {
	methodFn   func(ctx context.Context, code string) (*domain.PaymentMethod, error)
	currencyFn func(ctx context.Context, code string) (*domain.Currency, error)
}

func (m *mockReferenceData) PaymentMethod(ctx context.Context, code string) (*domain.PaymentMethod, error) {
	if m.methodFn != nil {
		return m.methodFn(ctx, code)
	}
	return &domain.PaymentMethod{
		Code:       code,
		Name:       "Test Method",
		Active:     true,
		MinAmount:  dec("10.00"),
		MaxAmount:  dec("10000.00"),
		FeePercent: dec("2.50"),
	}, nil
}

func (m *mockReferenceData) Currency(ctx context.Context, code string) (*domain.Currency, error) {
	if m.currencyFn != nil {
		return m.currencyFn(ctx, code)
	}
	return &domain.Currency{Code: code, Name: "Test Currency", Active: true}, nil
}

type mockEventBus struct {
	publishPaymentCreatedFn       func(ctx context.Context, paymentID string) error
	publishPaymentStatusChangedFn func(ctx context.Context, paymentID string, from, to string) error
}

func (m *mockEventBus) PublishPaymentCreated(ctx context.Context, paymentID string) error {
	if m.publishPaymentCreatedFn != nil {
		return m.publishPaymentCreatedFn(ctx, paymentID)
	}
	return nil
}

func (m *mockEventBus) PublishPaymentStatusChanged(ctx context.Context, paymentID string, from, to string) error {
	if m.publishPaymentStatusChangedFn != nil {
		return m.publishPaymentStatusChangedFn(ctx, paymentID, from, to)
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

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/commercekit/commerce-core/internal/payments/app/commands"
	"github.com/commercekit/commerce-core/internal/payments/domain"
)

func validCreateCommand() commands.CreatePaymentCommand {
	return commands.CreatePaymentCommand{
		OrderID:      "order-1",
		MethodCode:   "CREDIT_CARD",
		CurrencyCode: "USD",
		Amount:       dec("100.00"),
	}
}

func TestCreatePayment(t *testing.T) {
	t.Run("creates pending payment with first ledger row", func(t *testing.T) {
		var createdPayment domain.Payment
		var firstChange domain.StatusChange
		repo := &mockRepository{
			createFn: func(_ context.Context, payment domain.Payment, first domain.StatusChange) error {
				createdPayment = payment
				firstChange = first
				return nil
			},
		}
		handler := commands.NewCreatePaymentCommandHandler(repo, &mockReferenceData{}, &mockEventBus{}, &mockAuditSink{}, testLogger())

		payment, err := handler.Handle(context.Background(), validCreateCommand())

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if payment.Status != domain.PaymentPending {
			t.Errorf("expected status PENDING, got %s", payment.Status)
		}
		if !payment.ProcessingFee.Equal(dec("2.50")) {
			t.Errorf("expected fee 2.50, got %s", payment.ProcessingFee)
		}
		if !payment.NetAmount.Equal(dec("97.50")) {
			t.Errorf("expected net 97.50, got %s", payment.NetAmount)
		}
		if payment.Version != 1 {
			t.Errorf("expected version 1, got %d", payment.Version)
		}
		if firstChange.PaymentID != createdPayment.ID {
			t.Errorf("expected ledger row for payment %s, got %s", createdPayment.ID, firstChange.PaymentID)
		}
		if firstChange.Previous != nil {
			t.Errorf("expected nil previous status on first row, got %v", firstChange.Previous)
		}
		if firstChange.New != domain.PaymentPending {
			t.Errorf("expected first row status PENDING, got %s", firstChange.New)
		}
		if firstChange.ChangedBy != domain.SystemActor {
			t.Errorf("expected SYSTEM actor, got %s", firstChange.ChangedBy)
		}
	})

	t.Run("supplied fee overrides the computed one", func(t *testing.T) {
		handler := commands.NewCreatePaymentCommandHandler(&mockRepository{}, &mockReferenceData{}, &mockEventBus{}, &mockAuditSink{}, testLogger())

		cmd := validCreateCommand()
		fee := dec("1.00")
		cmd.ProcessingFee = &fee

		payment, err := handler.Handle(context.Background(), cmd)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !payment.ProcessingFee.Equal(dec("1.00")) {
			t.Errorf("expected fee 1.00, got %s", payment.ProcessingFee)
		}
		if !payment.NetAmount.Equal(dec("99.00")) {
			t.Errorf("expected net 99.00, got %s", payment.NetAmount)
		}
	})

	t.Run("rejects inactive method", func(t *testing.T) {
		reference := &mockReferenceData{
			methodFn: func(_ context.Context, code string) (*domain.PaymentMethod, error) {
				return &domain.PaymentMethod{Code: code, Active: false, MinAmount: dec("1"), MaxAmount: dec("1000")}, nil
			},
		}
		handler := commands.NewCreatePaymentCommandHandler(&mockRepository{}, reference, &mockEventBus{}, &mockAuditSink{}, testLogger())

		_, err := handler.Handle(context.Background(), validCreateCommand())

		var inactiveErr *domain.MethodInactiveError
		if !errors.As(err, &inactiveErr) {
			t.Fatalf("expected MethodInactiveError, got: %v", err)
		}
	})

	t.Run("rejects amount below method minimum naming the bound", func(t *testing.T) {
		handler := commands.NewCreatePaymentCommandHandler(&mockRepository{}, &mockReferenceData{}, &mockEventBus{}, &mockAuditSink{}, testLogger())

		cmd := validCreateCommand()
		cmd.Amount = dec("9.99")

		_, err := handler.Handle(context.Background(), cmd)

		var amountErr *domain.InvalidAmountError
		if !errors.As(err, &amountErr) {
			t.Fatalf("expected InvalidAmountError, got: %v", err)
		}
		if amountErr.Bound != "min" || !amountErr.Limit.Equal(dec("10.00")) {
			t.Errorf("expected min bound 10.00, got %+v", amountErr)
		}
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		reference := &mockReferenceData{
			methodFn: func(_ context.Context, code string) (*domain.PaymentMethod, error) {
				return nil, &domain.MethodNotFoundError{Code: code}
			},
		}
		handler := commands.NewCreatePaymentCommandHandler(&mockRepository{}, reference, &mockEventBus{}, &mockAuditSink{}, testLogger())

		_, err := handler.Handle(context.Background(), validCreateCommand())

		var notFoundErr *domain.MethodNotFoundError
		if !errors.As(err, &notFoundErr) {
			t.Fatalf("expected MethodNotFoundError, got: %v", err)
		}
	})

	t.Run("rejects inactive currency", func(t *testing.T) {
		reference := &mockReferenceData{
			currencyFn: func(_ context.Context, code string) (*domain.Currency, error) {
				return &domain.Currency{Code: code, Active: false}, nil
			},
		}
		handler := commands.NewCreatePaymentCommandHandler(&mockRepository{}, reference, &mockEventBus{}, &mockAuditSink{}, testLogger())

		_, err := handler.Handle(context.Background(), validCreateCommand())

		var currencyErr *domain.CurrencyNotFoundError
		if !errors.As(err, &currencyErr) {
			t.Fatalf("expected CurrencyNotFoundError, got: %v", err)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		handler := commands.NewCreatePaymentCommandHandler(&mockRepository{}, &mockReferenceData{}, &mockEventBus{}, &mockAuditSink{}, testLogger())

		cmd := validCreateCommand()
		cmd.Amount = dec("0")

		if _, err := handler.Handle(context.Background(), cmd); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		repoErr := errors.New("connection lost")
		repo := &mockRepository{
			createFn: func(context.Context, domain.Payment, domain.StatusChange) error { return repoErr },
		}
		handler := commands.NewCreatePaymentCommandHandler(repo, &mockReferenceData{}, &mockEventBus{}, &mockAuditSink{}, testLogger())

		_, err := handler.Handle(context.Background(), validCreateCommand())
		if !errors.Is(err, repoErr) {
			t.Errorf("expected wrapped repository error, got: %v", err)
		}
	})
}

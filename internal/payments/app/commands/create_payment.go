package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePaymentCommand struct {
	OrderID      string
	MethodCode   string
	CurrencyCode string
	Amount       decimal.Decimal

	// ProcessingFee is optional; when nil it is computed from the method's
	// fee percentage.
	ProcessingFee  *decimal.Decimal
	TransactionRef string
}

func (c CreatePaymentCommand) Validate() error {
	if c.OrderID == "" {
		return &domain.ValidationError{Msg: "order_id is required"}
	}
	if c.MethodCode == "" {
		return &domain.ValidationError{Msg: "method_code is required"}
	}
	if c.CurrencyCode == "" {
		return &domain.ValidationError{Msg: "currency_code is required"}
	}
	if !c.Amount.IsPositive() {
		return &domain.ValidationError{Msg: "amount must be positive"}
	}
	if c.ProcessingFee != nil && c.ProcessingFee.IsNegative() {
		return &domain.ValidationError{Msg: "processing_fee must not be negative"}
	}
	return nil
}

type CreatePaymentHandler interface {
	Handle(ctx context.Context, cmd CreatePaymentCommand) (*domain.Payment, error)
}

type CreatePaymentCommandHandler struct {
	repo      ports.PaymentRepository
	reference ports.ReferenceData
	events    ports.EventBus
	audit     audit.Sink
	logger    *slog.Logger
}

func NewCreatePaymentCommandHandler(
	repo ports.PaymentRepository,
	reference ports.ReferenceData,
	events ports.EventBus,
	audit audit.Sink,
	logger *slog.Logger,
) *CreatePaymentCommandHandler {
	return &CreatePaymentCommandHandler{
		repo:      repo,
		reference: reference,
		events:    events,
		audit:     audit,
		logger:    logger,
	}
}

func (h *CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (*domain.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	method, err := h.reference.PaymentMethod(ctx, cmd.MethodCode)
	if err != nil {
		return nil, err
	}
	if !method.Active {
		return nil, &domain.MethodInactiveError{Code: method.Code}
	}
	if err := method.ValidateAmount(cmd.Amount); err != nil {
		return nil, err
	}

	currency, err := h.reference.Currency(ctx, cmd.CurrencyCode)
	if err != nil {
		return nil, err
	}
	if !currency.Active {
		return nil, &domain.CurrencyNotFoundError{Code: currency.Code}
	}

	fee := method.ComputeFee(cmd.Amount)
	if cmd.ProcessingFee != nil {
		fee = cmd.ProcessingFee.Round(2)
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		ID:             uuid.NewString(),
		OrderID:        cmd.OrderID,
		MethodCode:     method.Code,
		Status:         domain.PaymentPending,
		CurrencyCode:   currency.Code,
		Amount:         cmd.Amount.Round(2),
		ProcessingFee:  fee,
		TransactionRef: cmd.TransactionRef,
		CorrelationID:  uuid.NewString(),
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}
	payment.NetAmount = payment.ComputeNetAmount()

	first := domain.StatusChange{
		ID:            uuid.NewString(),
		PaymentID:     payment.ID,
		Previous:      nil,
		New:           domain.PaymentPending,
		ChangedBy:     domain.SystemActor,
		Reason:        "payment created",
		CorrelationID: payment.CorrelationID,
		ChangedAt:     now,
	}

	// The payment row and its first ledger entry commit together or not at all.
	if err := h.repo.Create(ctx, payment, first); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if err := h.events.PublishPaymentCreated(ctx, payment.ID); err != nil {
		h.logger.WarnContext(ctx, "payment created event not published", "payment_id", payment.ID, "error", err)
	}
	h.audit.Record(ctx, audit.Entry{
		Entity:   "payment",
		EntityID: payment.ID,
		Action:   "created",
		Actor:    domain.SystemActor,
	})

	return &payment, nil
}

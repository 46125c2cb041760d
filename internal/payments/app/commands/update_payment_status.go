package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
	"github.com/google/uuid"
)

type UpdatePaymentStatusCommand struct {
	PaymentID       string
	TargetStatus    string
	Reason          string
	Actor           string
	FailureReason   string
	GatewayResponse string
}

func (c UpdatePaymentStatusCommand) Validate() error {
	if c.PaymentID == "" {
		return &domain.ValidationError{Msg: "payment_id is required"}
	}
	if c.TargetStatus == "" {
		return &domain.ValidationError{Msg: "target_status is required"}
	}
	if c.Actor == "" {
		return &domain.ValidationError{Msg: "actor is required"}
	}
	return nil
}

type UpdatePaymentStatusHandler interface {
	Handle(ctx context.Context, cmd UpdatePaymentStatusCommand) (*domain.Payment, error)
}

type UpdatePaymentStatusCommandHandler struct {
	repo   ports.PaymentRepository
	events ports.EventBus
	audit  audit.Sink
	logger *slog.Logger
}

func NewUpdatePaymentStatusCommandHandler(
	repo ports.PaymentRepository,
	events ports.EventBus,
	audit audit.Sink,
	logger *slog.Logger,
) *UpdatePaymentStatusCommandHandler {
	return &UpdatePaymentStatusCommandHandler{
		repo:   repo,
		events: events,
		audit:  audit,
		logger: logger,
	}
}

func (h *UpdatePaymentStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePaymentStatusCommand) (*domain.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	target, err := domain.ParseStatus(cmd.TargetStatus)
	if err != nil {
		return nil, err
	}

	payment, err := h.repo.GetByID(ctx, cmd.PaymentID)
	if err != nil {
		return nil, err
	}

	// Terminal is absolute and checked before the graph: a frozen payment
	// rejects every target, including itself.
	if payment.Status.IsTerminal() {
		return nil, &domain.TerminalStatusError{
			PaymentID: payment.ID,
			Status:    payment.Status,
			Target:    target,
		}
	}

	if err := domain.Transitions.Validate(string(payment.Status), string(target)); err != nil {
		return nil, err
	}

	// A non-terminal self-transition succeeds without touching the ledger:
	// no redundant history row.
	if payment.Status == target {
		return payment, nil
	}

	now := time.Now().UTC()
	previous := payment.Status
	payment.Status = target
	payment.UpdatedAt = now
	if target == domain.PaymentCaptured {
		payment.MarkCaptured(now)
	}
	if cmd.FailureReason != "" {
		payment.FailureReason = cmd.FailureReason
	}
	if cmd.GatewayResponse != "" {
		payment.TransactionRef = cmd.GatewayResponse
	}

	change := domain.StatusChange{
		ID:            uuid.NewString(),
		PaymentID:     payment.ID,
		Previous:      &previous,
		New:           target,
		ChangedBy:     cmd.Actor,
		Reason:        cmd.Reason,
		CorrelationID: payment.CorrelationID,
		ChangedAt:     now,
	}

	saved, err := h.repo.Save(ctx, *payment, payment.Version, &change)
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishPaymentStatusChanged(ctx, saved.ID, string(previous), string(target)); err != nil {
		h.logger.WarnContext(ctx, "payment status event not published", "payment_id", saved.ID, "error", err)
	}
	h.audit.Record(ctx, audit.Entry{
		Entity:   "payment",
		EntityID: saved.ID,
		Action:   "status_changed",
		Actor:    cmd.Actor,
		Detail:   string(previous) + " -> " + string(target),
	})

	return saved, nil
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
)

type SoftDeletePaymentCommand struct {
	PaymentID string
	Actor     string
}

func (c SoftDeletePaymentCommand) Validate() error {
	if c.PaymentID == "" {
		return &domain.ValidationError{Msg: "payment_id is required"}
	}
	return nil
}

type SoftDeletePaymentHandler interface {
	Handle(ctx context.Context, cmd SoftDeletePaymentCommand) error
}

type SoftDeletePaymentCommandHandler struct {
	repo   ports.PaymentRepository
	audit  audit.Sink
	logger *slog.Logger
}

func NewSoftDeletePaymentCommandHandler(
	repo ports.PaymentRepository,
	audit audit.Sink,
	logger *slog.Logger,
) *SoftDeletePaymentCommandHandler {
	return &SoftDeletePaymentCommandHandler{
		repo:   repo,
		audit:  audit,
		logger: logger,
	}
}

// Handle marks the payment deleted. Its status and ledger stay untouched:
// deletion and the status lifecycle are independent axes.
func (h *SoftDeletePaymentCommandHandler) Handle(ctx context.Context, cmd SoftDeletePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.repo.SoftDelete(ctx, cmd.PaymentID, time.Now().UTC()); err != nil {
		return err
	}

	h.audit.Record(ctx, audit.Entry{
		Entity:   "payment",
		EntityID: cmd.PaymentID,
		Action:   "soft_deleted",
		Actor:    cmd.Actor,
	})

	return nil
}

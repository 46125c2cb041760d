package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/commercekit/commerce-core/internal/orders/app/commands"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/statemachine"
)

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("moves along a legal edge", func(t *testing.T) {
		var published struct{ from, to string }
		repo := &mockRepository{
			getByIDFn: func(_ context.Context, id string) (*domain.Order, error) {
				return storedOrder(), nil
			},
		}
		events := &mockEventBus{
			publishOrderStatusChangedFn: func(_ context.Context, _ string, from, to string) error {
				published.from = from
				published.to = to
				return nil
			},
		}
		auditSink := &mockAuditSink{}
		handler := commands.NewUpdateOrderStatusCommandHandler(repo, events, auditSink, testLogger())

		order, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID:      "order-1",
			TargetStatus: "CONFIRMED",
			Actor:        domain.Actor{UserID: "ops-1"},
		})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order.Status != domain.StatusConfirmed {
			t.Errorf("expected status CONFIRMED, got %s", order.Status)
		}
		if published.from != "PENDING" || published.to != "CONFIRMED" {
			t.Errorf("expected PENDING -> CONFIRMED event, got %s -> %s", published.from, published.to)
		}
		if len(auditSink.entries) != 1 || auditSink.entries[0].Detail != "PENDING -> CONFIRMED" {
			t.Errorf("expected audit detail PENDING -> CONFIRMED, got %+v", auditSink.entries)
		}
	})

	t.Run("rejects an illegal edge naming both statuses", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFn: func(_ context.Context, id string) (*domain.Order, error) {
				return storedOrder(), nil
			},
		}
		handler := commands.NewUpdateOrderStatusCommandHandler(repo, &mockEventBus{}, &mockAuditSink{}, testLogger())

		_, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID:      "order-1",
			TargetStatus: "SHIPPED",
		})

		var transitionErr *statemachine.TransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("expected TransitionError, got: %v", err)
		}
		if transitionErr.From != "PENDING" || transitionErr.To != "SHIPPED" {
			t.Errorf("expected error naming PENDING and SHIPPED, got %+v", transitionErr)
		}
	})

	t.Run("rejects leaving a final status", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFn: func(_ context.Context, id string) (*domain.Order, error) {
				order := storedOrder()
				order.Status = domain.StatusCancelled
				return order, nil
			},
		}
		handler := commands.NewUpdateOrderStatusCommandHandler(repo, &mockEventBus{}, &mockAuditSink{}, testLogger())

		_, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID:      "order-1",
			TargetStatus: "PENDING",
		})

		var transitionErr *statemachine.TransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("expected TransitionError, got: %v", err)
		}
		if transitionErr.From != "CANCELLED" || transitionErr.To != "PENDING" {
			t.Errorf("unexpected edge on the error: %s -> %s", transitionErr.From, transitionErr.To)
		}
	})

	t.Run("self transition on a final status is a no-op", func(t *testing.T) {
		for _, status := range []domain.OrderStatus{domain.StatusCancelled, domain.StatusRefunded} {
			saveCalled := false
			repo := &mockRepository{
				getByIDFn: func(_ context.Context, id string) (*domain.Order, error) {
					order := storedOrder()
					order.Status = status
					return order, nil
				},
				saveFn: func(_ context.Context, order domain.Order, expectedVersion int64) (*domain.Order, error) {
					saveCalled = true
					return &order, nil
				},
			}
			handler := commands.NewUpdateOrderStatusCommandHandler(repo, &mockEventBus{}, &mockAuditSink{}, testLogger())

			order, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
				OrderID:      "order-1",
				TargetStatus: string(status),
			})
			if err != nil {
				t.Fatalf("expected %s self transition to succeed, got: %v", status, err)
			}
			if order.Status != status {
				t.Errorf("expected status %s, got %s", status, order.Status)
			}
			if saveCalled {
				t.Errorf("expected no save for %s self transition", status)
			}
		}
	})

	t.Run("self transition is a no-op", func(t *testing.T) {
		saveCalled := false
		repo := &mockRepository{
			getByIDFn: func(_ context.Context, id string) (*domain.Order, error) {
				return storedOrder(), nil
			},
			saveFn: func(_ context.Context, order domain.Order, expectedVersion int64) (*domain.Order, error) {
				saveCalled = true
				return &order, nil
			},
		}
		handler := commands.NewUpdateOrderStatusCommandHandler(repo, &mockEventBus{}, &mockAuditSink{}, testLogger())

		order, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID:      "order-1",
			TargetStatus: "PENDING",
		})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order.Status != domain.StatusPending {
			t.Errorf("expected status unchanged, got %s", order.Status)
		}
		if saveCalled {
			t.Error("expected no save for a self transition")
		}
	})

	t.Run("rejects unknown target status", func(t *testing.T) {
		handler := commands.NewUpdateOrderStatusCommandHandler(&mockRepository{}, &mockEventBus{}, &mockAuditSink{}, testLogger())

		_, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID:      "order-1",
			TargetStatus: "TELEPORTED",
		})

		var statusErr *domain.StatusNotFoundError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected StatusNotFoundError, got: %v", err)
		}
	})
}

// Package metrics holds the payment domain instruments.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	paymentsCreated   metric.Int64Counter
	creationDuration  metric.Float64Histogram
	statusTransitions metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	paymentsCreated, err := meter.Int64Counter(
		"payments_created_total",
		metric.WithDescription("Payments created by method and outcome"),
		metric.WithUnit("{payment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create payments_created_total counter: %w", err)
	}

	creationDuration, err := meter.Float64Histogram(
		"payment_creation_duration_seconds",
		metric.WithDescription("Payment creation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create payment_creation_duration histogram: %w", err)
	}

	statusTransitions, err := meter.Int64Counter(
		"payment_status_transitions_total",
		metric.WithDescription("Payment status transitions by target and outcome"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create payment_status_transitions_total counter: %w", err)
	}

	return &Metrics{
		paymentsCreated:   paymentsCreated,
		creationDuration:  creationDuration,
		statusTransitions: statusTransitions,
	}, nil
}

func (m *Metrics) RecordPaymentCreated(ctx context.Context, method string, success bool) {
	m.paymentsCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		outcome(success),
	))
}

func (m *Metrics) RecordPaymentCreationDuration(ctx context.Context, durationSeconds float64) {
	m.creationDuration.Record(ctx, durationSeconds)
}

func (m *Metrics) RecordStatusTransition(ctx context.Context, to string, success bool) {
	m.statusTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("to", to),
		outcome(success),
	))
}

func outcome(success bool) attribute.KeyValue {
	if success {
		return attribute.String("status", "success")
	}
	return attribute.String("status", "error")
}

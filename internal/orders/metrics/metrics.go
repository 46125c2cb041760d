// Package metrics holds the order domain instruments.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	ordersCreated     metric.Int64Counter
	creationDuration  metric.Float64Histogram
	statusTransitions metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	ordersCreated, err := meter.Int64Counter(
		"orders_created_total",
		metric.WithDescription("Orders created by outcome"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_created_total counter: %w", err)
	}

	creationDuration, err := meter.Float64Histogram(
		"order_creation_duration_seconds",
		metric.WithDescription("Order creation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_creation_duration histogram: %w", err)
	}

	statusTransitions, err := meter.Int64Counter(
		"order_status_transitions_total",
		metric.WithDescription("Order status transitions by edge and outcome"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_status_transitions_total counter: %w", err)
	}

	return &Metrics{
		ordersCreated:     ordersCreated,
		creationDuration:  creationDuration,
		statusTransitions: statusTransitions,
	}, nil
}

func (m *Metrics) RecordOrderCreated(ctx context.Context, success bool) {
	m.ordersCreated.Add(ctx, 1, metric.WithAttributes(outcome(success)))
}

func (m *Metrics) RecordOrderCreationDuration(ctx context.Context, durationSeconds float64) {
	m.creationDuration.Record(ctx, durationSeconds)
}

func (m *Metrics) RecordStatusTransition(ctx context.Context, from, to string, success bool) {
	m.statusTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
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

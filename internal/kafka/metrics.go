package kafka

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records publish outcomes per topic. The observable event bus
// decorators feed it regardless of which bus implementation is wired.
type Metrics struct {
	publishesTotal  metric.Int64Counter
	producerLatency metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	publishesTotal, err := meter.Int64Counter(
		"event_publishes_total",
		metric.WithDescription("Total event publishes by topic and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("create event_publishes_total counter: %w", err)
	}

	producerLatency, err := meter.Float64Histogram(
		"event_publish_duration_seconds",
		metric.WithDescription("Event publish duration by topic"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create event_publish_duration histogram: %w", err)
	}

	return &Metrics{publishesTotal: publishesTotal, producerLatency: producerLatency}, nil
}

func (m *Metrics) RecordPublish(ctx context.Context, topic string, durationSeconds float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("topic", topic),
		attribute.String("status", status),
	)
	m.publishesTotal.Add(ctx, 1, attrs)
	m.producerLatency.Record(ctx, durationSeconds, attrs)
}

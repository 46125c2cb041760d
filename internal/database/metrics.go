package database

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records per-operation query counts and latencies for every
// repository that touches the pool.
type Metrics struct {
	queriesTotal  metric.Int64Counter
	queryDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	queriesTotal, err := meter.Int64Counter(
		"db_queries_total",
		metric.WithDescription("Total database queries by operation"),
	)
	if err != nil {
		return nil, fmt.Errorf("create db_queries_total counter: %w", err)
	}

	queryDuration, err := meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Database query duration by operation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create db_query_duration histogram: %w", err)
	}

	return &Metrics{queriesTotal: queriesTotal, queryDuration: queryDuration}, nil
}

func (m *Metrics) RecordQuery(ctx context.Context, operation string, durationSeconds float64) {
	attrs := metric.WithAttributes(attribute.String("operation", operation))
	m.queriesTotal.Add(ctx, 1, attrs)
	m.queryDuration.Record(ctx, durationSeconds, attrs)
}

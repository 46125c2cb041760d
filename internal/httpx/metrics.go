// Package httpx holds the HTTP instrumentation shared by the order and
// payment endpoints.
package httpx

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	requestDuration metric.Float64Histogram
	requestsTotal   metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_request_duration histogram: %w", err)
	}

	requestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_requests_total counter: %w", err)
	}

	return &Metrics{requestDuration: requestDuration, requestsTotal: requestsTotal}, nil
}

func (m *Metrics) RecordRequest(ctx context.Context, method, path string, statusCode int, durationSeconds float64) {
	m.requestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status_code", statusCode),
	))
	m.requestDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	))
}

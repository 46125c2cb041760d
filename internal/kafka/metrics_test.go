package kafka

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordPublish(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	ctx := context.Background()
	metrics.RecordPublish(ctx, "order.created", 0.02, true)
	metrics.RecordPublish(ctx, "payment.status_changed", 0.03, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	byName := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}

	counter, ok := byName["event_publishes_total"].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected event_publishes_total to be an int64 sum")
	}
	if len(counter.DataPoints) != 2 {
		t.Errorf("expected one series per topic/status pair, got %d", len(counter.DataPoints))
	}

	statuses := make(map[string]bool)
	for _, dp := range counter.DataPoints {
		if status, found := dp.Attributes.Value("status"); found {
			statuses[status.AsString()] = true
		}
	}
	if !statuses["success"] || !statuses["error"] {
		t.Errorf("expected both success and error series, got %v", statuses)
	}

	if _, ok := byName["event_publish_duration_seconds"].Data.(metricdata.Histogram[float64]); !ok {
		t.Fatal("expected event_publish_duration_seconds to be a float64 histogram")
	}
}

package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return record
}

func tracedContext() context.Context {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0xaa},
		SpanID:  trace.SpanID{0xbb},
		Remote:  true,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestLoggerAddsTraceCorrelation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo)

	logger.InfoContext(tracedContext(), "order created", slog.String("order_id", "o-1"))

	record := decodeLine(t, &buf)
	if record["trace_id"] != (trace.TraceID{0xaa}).String() {
		t.Errorf("expected trace_id attribute, got %v", record["trace_id"])
	}
	if record["span_id"] != (trace.SpanID{0xbb}).String() {
		t.Errorf("expected span_id attribute, got %v", record["span_id"])
	}
	if record["order_id"] != "o-1" {
		t.Errorf("expected order_id attribute, got %v", record["order_id"])
	}
}

func TestLoggerWithoutTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo)

	logger.InfoContext(context.Background(), "startup complete")

	record := decodeLine(t, &buf)
	if _, ok := record["trace_id"]; ok {
		t.Error("expected no trace_id outside a trace")
	}
	if record["msg"] != "startup complete" {
		t.Errorf("unexpected message: %v", record["msg"])
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo)

	logger.DebugContext(context.Background(), "cache miss")

	if buf.Len() != 0 {
		t.Errorf("expected debug record to be filtered, got %q", buf.String())
	}
}

func TestLoggerTraceAttrsStayTopLevelWithGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo).WithGroup("request")

	logger.InfoContext(tracedContext(), "handled", slog.String("method", "POST"))

	record := decodeLine(t, &buf)
	if _, ok := record["trace_id"]; !ok {
		t.Error("expected trace_id at the top level despite open group")
	}
	group, ok := record["request"].(map[string]any)
	if !ok || group["method"] != "POST" {
		t.Errorf("expected grouped method attribute, got %v", record["request"])
	}
}

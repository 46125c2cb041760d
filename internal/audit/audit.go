// Package audit provides the fire-and-forget audit sink shared by the order
// and payment lifecycles. Recording is best-effort: a sink must never return
// control-flow errors to its caller, so the interface has no error result.
package audit

import (
	"context"
	"log/slog"
)

// Entry describes a change for the audit trail.
type Entry struct {
	Entity   string
	EntityID string
	Action   string
	Actor    string
	Detail   string
}

// Sink accepts audit entries.
type Sink interface {
	Record(ctx context.Context, entry Entry)
}

// LogSink writes audit entries to structured logs. It stands in for the
// external audit service; swapping it out does not touch the lifecycles.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink constructs a LogSink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Record emits one audit log line.
func (s *LogSink) Record(ctx context.Context, entry Entry) {
	s.logger.InfoContext(ctx, "audit",
		"entity", entry.Entity,
		"entity_id", entry.EntityID,
		"action", entry.Action,
		"actor", entry.Actor,
		"detail", entry.Detail,
	)
}

// NopSink discards every entry. Used in tests.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(context.Context, Entry) {}

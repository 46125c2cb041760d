package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog logger that stamps every record made inside
// a trace with the trace and span IDs.
func NewLogger(level slog.Level) *slog.Logger {
	return NewLoggerTo(os.Stdout, level)
}

// NewLoggerTo is NewLogger with an explicit destination.
func NewLoggerTo(w io.Writer, level slog.Level) *slog.Logger {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(&traceHandler{base: base})
}

// traceHandler decorates another slog handler with trace correlation
// attributes pulled from the record's context.
type traceHandler struct {
	base   slog.Handler
	attrs  []slog.Attr
	groups []string
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	handler := h.base

	// Trace attributes go on first so they stay top-level even when the
	// logger has open groups.
	if traceID := TraceID(ctx); traceID != "" {
		attrs := []slog.Attr{slog.String("trace_id", traceID)}
		if spanID := SpanID(ctx); spanID != "" {
			attrs = append(attrs, slog.String("span_id", spanID))
		}
		handler = handler.WithAttrs(attrs)
	}

	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	for _, group := range h.groups {
		handler = handler.WithGroup(group)
	}

	return handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &traceHandler{base: h.base, attrs: merged, groups: h.groups}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)
	return &traceHandler{base: h.base, attrs: h.attrs, groups: groups}
}

package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Log attribute keys.
const (
	KeyTraceID = "trace_id"
	KeySpanID  = "span_id"
	KeyService = "service"
	KeyEnv     = "env"
)

// SpanHandler is an [slog.Handler] that adds the ids of the span found in
// the record's context. Service attributes are bound at construction so
// they stay at the top level when a group is opened later.
type SpanHandler struct {
	next slog.Handler
}

// NewSpanHandler wraps next. An empty env is left out.
func NewSpanHandler(next slog.Handler, service, env string) SpanHandler {
	bound := []slog.Attr{slog.String(KeyService, service)}
	if env != "" {
		bound = append(bound, slog.String(KeyEnv, env))
	}

	return SpanHandler{next: next.WithAttrs(bound)}
}

// Enabled implements slog.Handler.
func (h SpanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h SpanHandler) Handle(ctx context.Context, record slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String(KeyTraceID, sc.TraceID().String()),
			slog.String(KeySpanID, sc.SpanID().String()),
		)
	}

	//nolint:wrapcheck // inner handler errors pass through unchanged.
	return h.next.Handle(ctx, record)
}

// WithAttrs implements slog.Handler.
func (h SpanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return SpanHandler{next: h.next.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h SpanHandler) WithGroup(name string) slog.Handler {
	return SpanHandler{next: h.next.WithGroup(name)}
}

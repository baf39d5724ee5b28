package logger

import (
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// TraceIDAttr is the log attribute and gin context key carrying the request trace id.
const TraceIDAttr = "trace_id"

type traceIDKey struct{}

// WithTraceID attaches a trace id to ctx so every record logged with it carries the id.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFrom returns the trace id attached by WithTraceID.
func TraceIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	traceID, ok := ctx.Value(traceIDKey{}).(string)
	return traceID, ok && traceID != ""
}

// NewTraceID 生成 trace id, prefixed for background jobs
func NewTraceID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}

// ContextHandler copies the trace id from the record's context into the record.
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if traceID, ok := TraceIDFrom(ctx); ok {
		r.AddAttrs(log.String(TraceIDAttr, traceID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	ToolIDKey    contextKey = "tool"
)

// ContextHandler adds request_id and tool from the context to every record
// and a stack trace to error records.
type ContextHandler struct {
	slog.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
			r.AddAttrs(slog.String("request_id", reqID))
		}

		if tool, ok := ctx.Value(ToolIDKey).(string); ok {
			r.AddAttrs(slog.String("tool", tool))
		}
	}

	if r.Level >= slog.LevelError {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		r.AddAttrs(slog.String("stack_trace", string(buf[:n])))
	}

	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// WithTool stores the invoked tool id in ctx for log correlation.
func WithTool(ctx context.Context, tool string) context.Context {
	return context.WithValue(ctx, ToolIDKey, tool)
}

// NewHandler builds the service log handler writing to w. format is "json" or "text".
func NewHandler(w io.Writer, level slog.Leveler, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if level.Level() == slog.LevelDebug {
		opts.AddSource = true
	}

	var base slog.Handler
	if format == "text" {
		base = slog.NewTextHandler(w, opts)
	} else {
		base = slog.NewJSONHandler(w, opts)
	}

	return &ContextHandler{Handler: base}
}

// InitStructuredLogger initialize structured logger
func InitStructuredLogger(level slog.Leveler, format string) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, level, format)))
}

package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger. Records carry trace/span
// ids whenever a span is active in the context.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}

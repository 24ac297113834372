// Package logging builds the slog logger used by the driver and tools.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a configured slog.Logger writing to w.
//
// level is one of debug, info, warn, error (unrecognized values mean info).
// format is "json" for structured output, anything else for text.
//
// The driver logs to stderr: stdout is reserved for help and version output.
func New(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

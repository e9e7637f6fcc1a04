package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates new Logger instance writing to stdout with the specified level and format.
// Format is "json" or "text"; anything else falls back to text.
func New(level int, format string) *Logger {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(w io.Writer, level int, format string) *Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(level)}

	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return &Logger{Logger: slog.New(h)}
}

// With returns a child logger that always includes the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

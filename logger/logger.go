// Package logger provides structured logging for training runs.
//
// This package wraps the internal logger implementation. Handlers are
// standard log/slog handlers, so any slog-compatible sink plugs in.
//
// Example usage:
//
//	import (
//	    "log/slog"
//	    "os"
//
//	    "github.com/inkwell-ml/inkwell/logger"
//	)
//
//	log := logger.Pretty(os.Stderr, slog.LevelInfo)
//	log.Info("training started", "model", "rnn")
package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/inkwell-ml/inkwell/internal/logger"
)

// Logger is the leveled, structured logging interface used across the
// framework.
type Logger = logger.Logger

// New wraps a slog handler in a Logger.
func New(handler slog.Handler) Logger {
	return logger.New(handler)
}

// Default returns a text logger writing to stderr at info level.
func Default() Logger {
	return logger.Default()
}

// JSON returns a logger emitting one JSON object per line.
func JSON(w io.Writer, level slog.Level) Logger {
	return logger.JSON(w, level)
}

// Pretty returns a colorized, human-readable logger for terminals.
func Pretty(w io.Writer, level slog.Level) Logger {
	return logger.Pretty(w, level)
}

// ParseLevel maps a level name (debug, info, warn, error) to its slog
// level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	return logger.ParseLevel(level)
}

// WithContext returns a context carrying the logger.
func WithContext(ctx context.Context, log Logger) context.Context {
	return logger.WithContext(ctx, log)
}

// FromContext returns the logger stored in the context, or Default if
// none is stored.
func FromContext(ctx context.Context) Logger {
	return logger.FromContext(ctx)
}

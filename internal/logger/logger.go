// Package logger provides structured logging for blogmark.
//
// All packages log through the package-level functions so the CLI can
// configure level and format once, before the pipeline starts.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	std *slog.Logger
	mu  sync.RWMutex
)

func init() {
	std = slog.New(newHandler(Options{}))
}

// Options configures the logger.
type Options struct {
	Debug  bool         // log at debug level
	Quiet  bool         // errors only; wins over Debug
	JSON   bool         // JSON handler instead of text
	Output io.Writer    // destination, stderr when nil
	Logger *slog.Logger // use this logger directly, ignoring the other fields
}

// Init configures the package logger. Safe to call more than once;
// the last call wins.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	if opts.Logger != nil {
		std = opts.Logger
		return
	}
	std = slog.New(newHandler(opts))
}

func newHandler(opts Options) slog.Handler {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: levelFor(opts)}
	if opts.JSON {
		return slog.NewJSONHandler(out, hopts)
	}
	return slog.NewTextHandler(out, hopts)
}

func levelFor(opts Options) slog.Level {
	switch {
	case opts.Quiet:
		return slog.LevelError
	case opts.Debug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { current().Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { current().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { current().Error(msg, args...) }

// With returns a logger carrying the given attributes, for components
// that log many times with the same context (e.g. one post).
func With(args ...any) *slog.Logger {
	return current().With(args...)
}

// Package log provides structured logging for the forust core.
//
// The package defines a minimal, slog-compatible Logger interface so the
// numeric packages can emit structured diagnostics (data shapes, bin
// counts, sampling rates) without committing to a logging backend. The
// default implementation writes JSON through log/slog; tests swap in the
// buffer-backed TestLogger.
package log

import "context"

// Logger is a structured logging interface compatible with log/slog.
// Fields are alternating key/value pairs, as in slog.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic situations.
	Warn(msg string, fields ...any)

	// Error logs error conditions. Pass the error via ErrAttr so the
	// handler can extract its stack trace.
	Error(msg string, fields ...any)

	// With returns a Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

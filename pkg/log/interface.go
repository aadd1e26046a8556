// Package log provides a structured logging interface for houseval operations.
//
// The Logger interface is slog-compatible in shape (message plus alternating
// key/value fields) and is backed by zerolog by default. Components accept a
// Logger through their options; when none is given they fall back to the
// process-wide provider returned by GetLogger.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("bootstrap").With(
//	    log.MetricKey, "mae",
//	)
//	logger.Info("bootstrap finished",
//	    log.IterationsKey, 1000,
//	    log.CILowerKey, 0.12,
//	    log.CIUpperKey, 0.31,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. Values that are errors are
// rendered with their message, their cockroachdb stack trace and, when the
// error implements zerolog.LogObjectMarshaler, a structured detail object.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	//
	// Example:
	//   logger.Error("scenario failed",
	//       log.ErrAttrKey, err,
	//       log.ScenarioKey, "drop_missing",
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
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

// LoggerProvider creates loggers. It is the injection point for replacing
// the process-wide default.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}

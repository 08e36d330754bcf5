// Package logging provides the logging interface used throughout xdata.
//
// Design: four-level interface (Error, Warn, Info, Debug), the same shape
// used by embedded-storage libraries such as Badger, Pebble and RocksDB.
// Callers may wrap their own structured loggers (slog, zap) if needed by
// implementing the Logger interface.
//
// Log format: YYYY/MM/DD HH:MM:SS LEVEL [component] message
//
// Example: 2026/08/01 18:45:13 DEBUG [encode] wrote record header at offset 128
//
// Component namespace prefixes are used for filtering:
//   - [encode]    — serializer frame push/pop and reference resolution
//   - [decode]    — deserializer frame push/pop and reference resolution
//   - [convert]   — converter registry lookups
//   - [framing]   — container codec and checksum trailer handling
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
)

// Level represents the logging level.
type Level int

const (
	// LevelError logs only errors.
	LevelError Level = iota
	// LevelWarn logs warnings and errors.
	LevelWarn
	// LevelInfo logs info, warnings, and errors.
	LevelInfo
	// LevelDebug logs everything including debug messages.
	LevelDebug
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the interface used by Store/Load to report progress and
// anomalies. Implementations must be safe for concurrent use since a single
// process may run several Store/Load calls against distinct loggers at once,
// even though any one call is single-threaded.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// DefaultLogger writes level-filtered, timestamped lines to an io.Writer.
// It is stateless beyond its level and is safe for concurrent use (the
// underlying log.Logger is thread-safe).
type DefaultLogger struct {
	logger *log.Logger
	level  Level
}

// NewDefaultLogger creates a logger at the given level that writes to stderr.
func NewDefaultLogger(level Level) *DefaultLogger {
	return NewLogger(os.Stderr, level)
}

// NewLogger creates a logger at the given level that writes to w.
func NewLogger(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

// Level returns the logger's configured level.
func (l *DefaultLogger) Level() Level { return l.level }

func (l *DefaultLogger) Errorf(format string, args ...any) {
	if l.level >= LevelError {
		_ = l.logger.Output(2, "ERROR "+fmt.Sprintf(format, args...))
	}
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	if l.level >= LevelWarn {
		_ = l.logger.Output(2, "WARN "+fmt.Sprintf(format, args...))
	}
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	if l.level >= LevelInfo {
		_ = l.logger.Output(2, "INFO "+fmt.Sprintf(format, args...))
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.level >= LevelDebug {
		_ = l.logger.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
	}
}

// Namespace prefixes for log messages, used with fmt.Sprintf-style formats.
const (
	NSEncode  = "[encode] "
	NSDecode  = "[decode] "
	NSConvert = "[convert] "
	NSFraming = "[framing] "
)

// IsNil reports whether l is nil or a typed-nil interface value. A
// typed-nil occurs when a nil pointer is assigned to an interface:
//
//	var l *MyLogger = nil
//	opts.Logger = l  // interface is non-nil, but underlying pointer is nil
//
// Calling methods on a typed-nil panics, so callers check this first.
func IsNil(l Logger) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// OrDiscard returns l if it is valid (non-nil, not typed-nil), otherwise
// the discard logger. This keeps call sites free of nil checks.
func OrDiscard(l Logger) Logger {
	if IsNil(l) {
		return Discard
	}
	return l
}

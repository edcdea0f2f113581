package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

// DebugEnabled controls whether Debug-level logging calls produce output. It
// mirrors a process-wide flag rather than a per-logger setting, matching the
// minimal debug-gating idiom this package is built from.
var DebugEnabled = false

// Logger is the core logging type. It has the property that it still
// functions (as a no-op) if nil, so callers can pass around a possibly-absent
// logger without checking for nil at every call site. It writes through the
// standard library's log package so it respects whatever output/flags the
// caller configured there. Safe for concurrent use.
type Logger struct {
	// prefix is any hierarchical name prefix for this logger.
	prefix string
	// level is the minimum level this logger (and its subloggers) will emit.
	level Level
}

// RootLogger is the root logger from which all other loggers derive. It
// defaults to LevelInfo.
var RootLogger = &Logger{level: LevelInfo}

// NewRoot creates a new root logger at the specified level, writing to the
// given writer (os.Stderr is the typical choice).
func NewRoot(level Level, output io.Writer) *Logger {
	log.SetOutput(output)
	log.SetFlags(log.Ldate | log.Ltime)
	return &Logger{level: level}
}

// Sublogger creates a new logger with the given name appended to this
// logger's prefix. Returns nil if the receiver is nil.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{prefix: prefix, level: l.level}
}

func (l *Logger) enabled(level Level) bool {
	return l != nil && l.level >= level
}

func (l *Logger) output(line string) {
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	log.Output(3, line)
}

// Info logs informational output if the logger's level permits it.
func (l *Logger) Info(v ...any) {
	if l.enabled(LevelInfo) {
		l.output(fmt.Sprint(v...))
	}
}

// Infof logs formatted informational output if the logger's level permits it.
func (l *Logger) Infof(format string, v ...any) {
	if l.enabled(LevelInfo) {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Debug logs debugging output if debugging is globally enabled and the
// logger's level permits it.
func (l *Logger) Debug(v ...any) {
	if DebugEnabled && l.enabled(LevelDebug) {
		l.output(fmt.Sprint(v...))
	}
}

// Debugf logs formatted debugging output if debugging is globally enabled
// and the logger's level permits it.
func (l *Logger) Debugf(format string, v ...any) {
	if DebugEnabled && l.enabled(LevelDebug) {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Warn logs a non-fatal error in yellow.
func (l *Logger) Warn(err error) {
	if l.enabled(LevelWarn) {
		l.output(color.YellowString("warning: %v", err))
	}
}

// Warnf logs a formatted non-fatal condition in yellow.
func (l *Logger) Warnf(format string, v ...any) {
	if l.enabled(LevelWarn) {
		l.output(color.YellowString("warning: "+format, v...))
	}
}

// Error logs a fatal or serious error in red.
func (l *Logger) Error(err error) {
	if l.enabled(LevelError) {
		l.output(color.RedString("error: %v", err))
	}
}

// Fatal logs the error in red and terminates the process with exit code 1.
// It is reserved for configuration and snapshot-write failures per the
// error taxonomy: everything else downgrades the cycle result instead of
// exiting.
func (l *Logger) Fatal(err error) {
	l.Error(err)
	os.Exit(1)
}

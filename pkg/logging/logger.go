package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/mixpkg/mixpkg/pkg/mixpkg"
)

// writer is an io.Writer that splits its input stream into lines and writes
// those lines to an underlying logger.
type writer struct {
	// callback is the logging callback.
	callback func(string)
	// buffer is any incomplete line fragment left over from a previous write.
	buffer []byte
}

// trimCarriageReturn trims any single trailing carriage return from the end of
// a byte slice.
func trimCarriageReturn(buffer []byte) []byte {
	if len(buffer) > 0 && buffer[len(buffer)-1] == '\r' {
		return buffer[:len(buffer)-1]
	}
	return buffer
}

// Write implements io.Writer.Write.
func (w *writer) Write(buffer []byte) (int, error) {
	w.buffer = append(w.buffer, buffer...)

	// Emit every complete line and keep the trailing fragment.
	remaining := w.buffer
	for {
		index := bytes.IndexByte(remaining, '\n')
		if index == -1 {
			break
		}
		w.callback(string(trimCarriageReturn(remaining[:index])))
		remaining = remaining[index+1:]
	}
	w.buffer = append(w.buffer[:0], remaining...)

	return len(buffer), nil
}

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. Output is routed through a
// standard library logger, so each message occupies a single line. It is safe
// for concurrent usage.
type Logger struct {
	// level is the maximum level emitted by the logger.
	level Level
	// prefix is any prefix specified for the logger.
	prefix string
	// output is the underlying line logger.
	output *log.Logger
}

// NewLogger creates a new root logger that writes to the specified
// destination at the specified level.
func NewLogger(level Level, destination io.Writer) *Logger {
	return &Logger{
		level:  level,
		output: log.New(destination, "", log.LstdFlags),
	}
}

// RootLogger is the root logger from which all other loggers derive. It writes
// to standard error at the level selected by MIXPKG_LOG_LEVEL (or debug if
// MIXPKG_DEBUG is set).
var RootLogger *Logger

func init() {
	level := LevelInfo
	if l, ok := NameToLevel(os.Getenv(mixpkg.LogLevelEnvironmentVariable)); ok {
		level = l
	}
	if mixpkg.DebugEnabled && level < LevelDebug {
		level = LevelDebug
	}
	RootLogger = NewLogger(level, os.Stderr)
}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}

	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	return &Logger{
		level:  l.level,
		prefix: prefix,
		output: l.output,
	}
}

// Level returns the logger's level. A nil logger is disabled.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

// Enabled returns whether or not messages at the specified level are emitted.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && level != LevelDisabled && level <= l.level
}

// emit is the internal logging method.
func (l *Logger) emit(level Level, line string) {
	if !l.Enabled(level) {
		return
	}
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	l.output.Output(3, line)
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	l.emit(LevelError, color.RedString("Error: %v", err))
}

// Errorf logs formatted error information with an error prefix and red color.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.emit(LevelError, color.RedString("Error: "+format, v...))
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	l.emit(LevelWarn, color.YellowString("Warning: %v", err))
}

// Warnf logs formatted information with a warning prefix and yellow color.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.emit(LevelWarn, color.YellowString("Warning: "+format, v...))
}

// Info logs information with semantics equivalent to fmt.Print.
func (l *Logger) Info(v ...interface{}) {
	l.emit(LevelInfo, fmt.Sprint(v...))
}

// Infof logs information with semantics equivalent to fmt.Printf.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.emit(LevelInfo, fmt.Sprintf(format, v...))
}

// Debug logs information with semantics equivalent to fmt.Print, but only if
// the logger is at debug level or above.
func (l *Logger) Debug(v ...interface{}) {
	l.emit(LevelDebug, fmt.Sprint(v...))
}

// Debugf logs information with semantics equivalent to fmt.Printf, but only
// if the logger is at debug level or above.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.emit(LevelDebug, fmt.Sprintf(format, v...))
}

// Trace logs information with semantics equivalent to fmt.Print, but only if
// the logger is at trace level.
func (l *Logger) Trace(v ...interface{}) {
	l.emit(LevelTrace, fmt.Sprint(v...))
}

// Tracef logs information with semantics equivalent to fmt.Printf, but only
// if the logger is at trace level.
func (l *Logger) Tracef(format string, v ...interface{}) {
	l.emit(LevelTrace, fmt.Sprintf(format, v...))
}

// Writer returns an io.Writer that logs each written line at the specified
// level. It's used to relay subprocess output.
func (l *Logger) Writer(level Level) io.Writer {
	// If nothing would be logged, then we can just discard input. This saves us
	// the overhead of scanning lines.
	if !l.Enabled(level) {
		return io.Discard
	}

	return &writer{
		callback: func(s string) {
			l.emit(level, s)
		},
	}
}

package logging

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sync/atomic"

	"github.com/fatih/color"
)

// lineWriter is an io.Writer that splits its input stream into lines and
// hands each complete line to a callback, buffering any trailing partial
// line until the next Write completes it.
type lineWriter struct {
	callback func(string)
	buffer   []byte
}

func trimCarriageReturn(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}
	return line
}

func (w *lineWriter) Write(chunk []byte) (int, error) {
	w.buffer = append(w.buffer, chunk...)

	remaining := w.buffer
	var consumed int
	for {
		index := bytes.IndexByte(remaining, '\n')
		if index == -1 {
			break
		}
		w.callback(string(trimCarriageReturn(remaining[:index])))
		consumed += index + 1
		remaining = remaining[index+1:]
	}

	if consumed > 0 {
		leftover := copy(w.buffer, w.buffer[consumed:])
		w.buffer = w.buffer[:leftover]
	}

	return len(chunk), nil
}

// Logger is a hierarchical, level-gated logger. A nil *Logger is valid and
// logs nothing, so a component can be handed a possibly-nil Logger without a
// separate "is logging configured" check at every call site.
//
// Every Logger derived from the same root shares one atomic threshold rather
// than each snapshotting a value at creation time: calling SetLevel on the
// root retunes every Sublogger created from it, past or future, without
// locking and without having to thread a new value down through whatever
// already holds a reference to an existing Logger.
type Logger struct {
	prefix string
	level  *int32
}

var rootLevel = int32(levelFromEnvironment())

// RootLogger is the root logger from which all other loggers derive.
var RootLogger = &Logger{level: &rootLevel}

// levelFromEnvironment reads MANDERROW_LOG_LEVEL, falling back to
// defaultLevel if it is unset or unrecognized.
func levelFromEnvironment() Level {
	if level, ok := ParseLevel(os.Getenv("MANDERROW_LOG_LEVEL")); ok {
		return level
	}
	return defaultLevel
}

// SetLevel changes RootLogger's verbosity threshold, and with it every
// Logger derived from it.
func SetLevel(level Level) {
	atomic.StoreInt32(&rootLevel, int32(level))
}

// threshold reads the logger's current level, treating a nil Logger (or one
// with no level pointer, which should not occur outside of this package) as
// fully disabled.
func (l *Logger) threshold() Level {
	if l == nil || l.level == nil {
		return LevelDisabled
	}
	return Level(atomic.LoadInt32(l.level))
}

// Sublogger creates a new logger with the specified name appended to this
// logger's prefix, sharing its threshold.
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

// emit writes a single already-formatted line, gated by level, with the
// logger's prefix prepended if set.
func (l *Logger) emit(calldepth int, level Level, line string) {
	if !l.threshold().admits(level) {
		return
	}
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	log.Output(calldepth, line)
}

// Print logs at LevelInfo with semantics equivalent to fmt.Print.
func (l *Logger) Print(v ...interface{}) {
	l.emit(3, LevelInfo, fmt.Sprint(v...))
}

// Printf logs at LevelInfo with semantics equivalent to fmt.Printf.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.emit(3, LevelInfo, fmt.Sprintf(format, v...))
}

// Println logs at LevelInfo with semantics equivalent to fmt.Println.
func (l *Logger) Println(v ...interface{}) {
	l.emit(3, LevelInfo, fmt.Sprintln(v...))
}

// Writer returns an io.Writer that logs each line it receives at LevelInfo.
func (l *Logger) Writer() io.Writer {
	if !l.threshold().admits(LevelInfo) {
		return ioutil.Discard
	}
	return &lineWriter{callback: l.Println}
}

// Debug logs at LevelDebug with semantics equivalent to fmt.Print.
func (l *Logger) Debug(v ...interface{}) {
	l.emit(3, LevelDebug, fmt.Sprint(v...))
}

// Debugf logs at LevelDebug with semantics equivalent to fmt.Printf.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.emit(3, LevelDebug, fmt.Sprintf(format, v...))
}

// Debugln logs at LevelDebug with semantics equivalent to fmt.Println.
func (l *Logger) Debugln(v ...interface{}) {
	l.emit(3, LevelDebug, fmt.Sprintln(v...))
}

// DebugWriter returns an io.Writer that logs each line it receives at
// LevelDebug.
func (l *Logger) DebugWriter() io.Writer {
	if !l.threshold().admits(LevelDebug) {
		return ioutil.Discard
	}
	return &lineWriter{callback: l.Debugln}
}

// Trace logs at LevelTrace with semantics equivalent to fmt.Print. Intended
// for output too voluminous to enable even while debugging.
func (l *Logger) Trace(v ...interface{}) {
	l.emit(3, LevelTrace, fmt.Sprint(v...))
}

// Tracef logs at LevelTrace with semantics equivalent to fmt.Printf.
func (l *Logger) Tracef(format string, v ...interface{}) {
	l.emit(3, LevelTrace, fmt.Sprintf(format, v...))
}

// Warn logs err at LevelWarn, colorized yellow.
func (l *Logger) Warn(err error) {
	l.emit(3, LevelWarn, color.YellowString("Warning: %v", err))
}

// Error logs err at LevelError, colorized red.
func (l *Logger) Error(err error) {
	l.emit(3, LevelError, color.RedString("Error: %v", err))
}

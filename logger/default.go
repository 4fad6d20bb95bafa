package logger

import (
	"fmt"
	"sync"

	"github.com/philipp01105/sinklog/category"
	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/gate"
	"github.com/philipp01105/sinklog/sink"
	"github.com/philipp01105/sinklog/sink/consolesink"
	"github.com/philipp01105/sinklog/throttle"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// The process-wide registry starts with a console sink so programs
	// can log without any setup.
	sink.Default().Add(consolesink.New(consolesink.Config{}))

	defaultLogger = NewBuilder().
		WithGate(gate.Default()).
		WithRegistry(sink.Default()).
		WithCategories(category.Default()).
		WithThrottle(throttle.Default()).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Log starts a message at level using the default logger
func Log(level core.Level, args ...interface{}) *Message {
	l := Default()
	if !l.mayEmit(level) {
		return nil
	}
	return l.build(level, 0, Render(args...))
}

// Trace starts a trace message using the default logger
func Trace(args ...interface{}) *Message {
	l := Default()
	if !gate.TraceCompiled || !l.mayEmit(core.TraceLevel) {
		return nil
	}
	return l.build(core.TraceLevel, 0, Render(args...))
}

// Debug starts a debug message using the default logger
func Debug(args ...interface{}) *Message {
	l := Default()
	if !gate.DebugCompiled || !l.mayEmit(core.DebugLevel) {
		return nil
	}
	return l.build(core.DebugLevel, 0, Render(args...))
}

// Info starts an info message using the default logger
func Info(args ...interface{}) *Message {
	l := Default()
	if !gate.InfoCompiled || !l.mayEmit(core.InfoLevel) {
		return nil
	}
	return l.build(core.InfoLevel, 0, Render(args...))
}

// Warn starts a warning message using the default logger
func Warn(args ...interface{}) *Message {
	l := Default()
	if !gate.WarnCompiled || !l.mayEmit(core.WarnLevel) {
		return nil
	}
	return l.build(core.WarnLevel, 0, Render(args...))
}

// Error starts an error message using the default logger
func Error(args ...interface{}) *Message {
	l := Default()
	if !gate.ErrorCompiled || !l.mayEmit(core.ErrorLevel) {
		return nil
	}
	return l.build(core.ErrorLevel, 0, Render(args...))
}

// Critical starts a critical message using the default logger
func Critical(args ...interface{}) *Message {
	l := Default()
	if !gate.CriticalCompiled || !l.mayEmit(core.CriticalLevel) {
		return nil
	}
	return l.build(core.CriticalLevel, 0, Render(args...))
}

// Tracef starts a formatted trace message using the default logger
func Tracef(format string, args ...interface{}) *Message {
	l := Default()
	if !gate.TraceCompiled || !l.mayEmit(core.TraceLevel) {
		return nil
	}
	return l.build(core.TraceLevel, 0, fmt.Sprintf(format, args...))
}

// Debugf starts a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) *Message {
	l := Default()
	if !gate.DebugCompiled || !l.mayEmit(core.DebugLevel) {
		return nil
	}
	return l.build(core.DebugLevel, 0, fmt.Sprintf(format, args...))
}

// Infof starts a formatted info message using the default logger
func Infof(format string, args ...interface{}) *Message {
	l := Default()
	if !gate.InfoCompiled || !l.mayEmit(core.InfoLevel) {
		return nil
	}
	return l.build(core.InfoLevel, 0, fmt.Sprintf(format, args...))
}

// Warnf starts a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) *Message {
	l := Default()
	if !gate.WarnCompiled || !l.mayEmit(core.WarnLevel) {
		return nil
	}
	return l.build(core.WarnLevel, 0, fmt.Sprintf(format, args...))
}

// Errorf starts a formatted error message using the default logger
func Errorf(format string, args ...interface{}) *Message {
	l := Default()
	if !gate.ErrorCompiled || !l.mayEmit(core.ErrorLevel) {
		return nil
	}
	return l.build(core.ErrorLevel, 0, fmt.Sprintf(format, args...))
}

// Criticalf starts a formatted critical message using the default logger
func Criticalf(format string, args ...interface{}) *Message {
	l := Default()
	if !gate.CriticalCompiled || !l.mayEmit(core.CriticalLevel) {
		return nil
	}
	return l.build(core.CriticalLevel, 0, fmt.Sprintf(format, args...))
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Named creates a new logger tagged with a category
func Named(name string) *Logger {
	return Default().Named(name)
}

// SetLevel sets the runtime level override of the default logger
func SetLevel(level core.Level) {
	Default().SetLevel(level)
}

// SetCategoryLevel sets a category override on the default logger
func SetCategoryLevel(pattern string, level core.Level) {
	Default().SetCategoryLevel(pattern, level)
}

// Flush flushes every sink of the default logger
func Flush() error {
	return Default().Flush()
}

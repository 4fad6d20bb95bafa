package logger

import (
	"fmt"

	"go.uber.org/zap/zapcore"
	"k8s.io/utils/clock"

	"github.com/philipp01105/sinklog/category"
	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/gate"
	"github.com/philipp01105/sinklog/sink"
	"github.com/philipp01105/sinklog/throttle"
)

// baseSkip is the number of frames between core.GetCaller and user code
// for every public logging method (GetCaller <- build <- method <- user).
const baseSkip = 2

// Logger binds a gate, a sink registry, a category registry and a
// throttle. A Logger is immutable; With and Named derive children that
// share all four.
type Logger struct {
	gate       *gate.Gate
	sinks      *sink.Registry
	categories *category.Registry
	throttle   *throttle.Throttle
	formatter  formatter.Formatter
	clock      clock.PassiveClock

	fields        []core.Field
	category      string
	includeCaller bool
	callerSkip    int
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	gate       *gate.Gate
	sinks      *sink.Registry
	categories *category.Registry
	throttle   *throttle.Throttle
	formatter  formatter.Formatter
	clock      clock.PassiveClock
	errOut     zapcore.WriteSyncer

	level         *core.Level
	addSinks      []sink.Sink
	categoryLevel []patternLevel
	fields        []core.Field
	category      string
	includeCaller bool
	callerSkip    int
}

type patternLevel struct {
	pattern string
	level   core.Level
}

// NewBuilder creates a new logger builder. Unless replaced with the With*
// methods, Build creates a fresh gate, sink registry, category registry
// and throttle for the logger.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithGate uses g as the level gate
func (b *Builder) WithGate(g *gate.Gate) *Builder {
	b.gate = g
	return b
}

// WithLevel installs a runtime override on the gate
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = &level
	return b
}

// WithRegistry uses r as the sink registry
func (b *Builder) WithRegistry(r *sink.Registry) *Builder {
	b.sinks = r
	return b
}

// WithSink adds s to the sink registry on Build
func (b *Builder) WithSink(s sink.Sink) *Builder {
	b.addSinks = append(b.addSinks, s)
	return b
}

// WithSinks adds every sink to the sink registry on Build
func (b *Builder) WithSinks(sinks ...sink.Sink) *Builder {
	b.addSinks = append(b.addSinks, sinks...)
	return b
}

// WithErrorOutput sets where sink failures are reported when Build creates
// the sink registry
func (b *Builder) WithErrorOutput(w zapcore.WriteSyncer) *Builder {
	b.errOut = w
	return b
}

// WithCategories uses r as the category registry. Tagged messages are
// resolved against r's gate, so a gate passed to WithGate must be the same
// one; Build panics otherwise. Without WithGate the logger adopts r's gate.
func (b *Builder) WithCategories(r *category.Registry) *Builder {
	b.categories = r
	return b
}

// WithCategoryLevel sets a category override on Build
func (b *Builder) WithCategoryLevel(pattern string, level core.Level) *Builder {
	b.categoryLevel = append(b.categoryLevel, patternLevel{pattern, level})
	return b
}

// WithThrottle uses t for Once and Every
func (b *Builder) WithThrottle(t *throttle.Throttle) *Builder {
	b.throttle = t
	return b
}

// WithFormatter sets the formatter used for sinks without their own
func (b *Builder) WithFormatter(f formatter.Formatter) *Builder {
	b.formatter = f
	return b
}

// WithClock sets the time source for timestamps and, when Build creates
// the throttle, for Every
func (b *Builder) WithClock(c clock.PassiveClock) *Builder {
	b.clock = c
	return b
}

// WithCoarseClock stamps messages from a clock that advances every 500µs
// instead of calling time.Now for each message
func (b *Builder) WithCoarseClock() *Builder {
	b.clock = core.StartCoarseClock()
	return b
}

// WithFields adds default fields to all messages
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCategory tags every message with category unless the message sets
// its own
func (b *Builder) WithCategory(category string) *Builder {
	b.category = category
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCallerSkip skips extra frames when capturing the caller, for
// wrappers around the logger
func (b *Builder) WithCallerSkip(skip int) *Builder {
	b.callerSkip = skip
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	if b.gate != nil && b.categories != nil && b.categories.Gate() != b.gate {
		panic("logger: category registry is bound to a different gate")
	}
	l := &Logger{
		gate:          b.gate,
		sinks:         b.sinks,
		categories:    b.categories,
		throttle:      b.throttle,
		formatter:     b.formatter,
		clock:         b.clock,
		fields:        b.fields,
		category:      b.category,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
	}
	if l.gate == nil {
		if l.categories != nil {
			l.gate = l.categories.Gate()
		} else {
			l.gate = gate.New()
		}
	}
	if b.level != nil {
		l.gate.SetLevel(*b.level)
	}
	if l.sinks == nil {
		l.sinks = sink.NewRegistry(sink.WithErrorOutput(b.errOut))
	}
	for _, s := range b.addSinks {
		l.sinks.Add(s)
	}
	if l.categories == nil {
		l.categories = category.New(l.gate)
	}
	for _, pl := range b.categoryLevel {
		l.categories.SetLevel(pl.pattern, pl.level)
	}
	if l.clock == nil {
		l.clock = clock.RealClock{}
	}
	if l.throttle == nil {
		l.throttle = throttle.New(throttle.WithClock(l.clock))
	}
	if l.formatter == nil {
		l.formatter = formatter.NewTextFormatter(formatter.Config{
			IncludeCaller:   b.includeCaller,
			IncludeCategory: true,
		})
	}
	return l
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	child := *l
	child.fields = newFields
	return &child
}

// Named returns a child Logger whose messages are tagged with name,
// appended to the parent's category with a dot.
func (l *Logger) Named(name string) *Logger {
	if name == "" {
		return l
	}
	child := *l
	if l.category != "" {
		child.category = l.category + category.Separator + name
	} else {
		child.category = name
	}
	return &child
}

// Category returns the default category of the logger
func (l *Logger) Category() string {
	return l.category
}

// Gate returns the logger's level gate
func (l *Logger) Gate() *gate.Gate {
	return l.gate
}

// Sinks returns the logger's sink registry
func (l *Logger) Sinks() *sink.Registry {
	return l.sinks
}

// Categories returns the logger's category registry
func (l *Logger) Categories() *category.Registry {
	return l.categories
}

// Throttle returns the logger's throttle
func (l *Logger) Throttle() *throttle.Throttle {
	return l.throttle
}

// SetLevel sets the runtime level override. OffLevel clears it.
func (l *Logger) SetLevel(level core.Level) {
	l.gate.SetLevel(level)
}

// SetCategoryLevel sets the level for a category pattern
func (l *Logger) SetCategoryLevel(pattern string, level core.Level) {
	l.categories.SetLevel(pattern, level)
}

// AddSink registers s and reports whether it was added
func (l *Logger) AddSink(s sink.Sink) bool {
	return l.sinks.Add(s)
}

// RemoveSink unregisters s and reports whether it was present
func (l *Logger) RemoveSink(s sink.Sink) bool {
	return l.sinks.Remove(s)
}

// Enabled reports whether a message at level in the logger's own category
// would be emitted right now
func (l *Logger) Enabled(level core.Level) bool {
	if l.category != "" {
		return l.categories.ShouldLog(l.category, level)
	}
	return l.gate.Enabled(level)
}

// Flush flushes every sink
func (l *Logger) Flush() error {
	return l.sinks.FlushAll()
}

// Close flushes and closes every sink and empties the registry
func (l *Logger) Close() error {
	return l.sinks.Close()
}

// mayEmit reports whether a message at level can pass the emission check
// for some category. Messages that cannot are never rendered.
func (l *Logger) mayEmit(level core.Level) bool {
	if !gate.Compiled(level) {
		return false
	}
	if level >= l.gate.Effective() {
		return true
	}
	lowest, ok := l.categories.MinLevel()
	return ok && level >= lowest
}

func (l *Logger) build(level core.Level, skip int, text string) *Message {
	m := &Message{
		l:        l,
		level:    level,
		text:     text,
		category: l.category,
	}
	if len(l.fields) > 0 {
		m.fields = append(make([]core.Field, 0, len(l.fields)+4), l.fields...)
	}
	if l.includeCaller {
		m.caller = core.GetCaller(baseSkip + skip + l.callerSkip)
	}
	return m
}

// Log starts a message at level. The arguments are rendered immediately
// (see Render). It returns nil when no category or runtime setting can let
// the message through; every Message method accepts a nil receiver.
func (l *Logger) Log(level core.Level, args ...interface{}) *Message {
	if !l.mayEmit(level) {
		return nil
	}
	return l.build(level, 0, Render(args...))
}

// Logf starts a message at level with fmt.Sprintf formatting
func (l *Logger) Logf(level core.Level, format string, args ...interface{}) *Message {
	if !l.mayEmit(level) {
		return nil
	}
	return l.build(level, 0, fmt.Sprintf(format, args...))
}

// Trace starts a trace message
func (l *Logger) Trace(args ...interface{}) *Message {
	if !gate.TraceCompiled || !l.mayEmit(core.TraceLevel) {
		return nil
	}
	return l.build(core.TraceLevel, 0, Render(args...))
}

// Debug starts a debug message
func (l *Logger) Debug(args ...interface{}) *Message {
	if !gate.DebugCompiled || !l.mayEmit(core.DebugLevel) {
		return nil
	}
	return l.build(core.DebugLevel, 0, Render(args...))
}

// Info starts an info message
func (l *Logger) Info(args ...interface{}) *Message {
	if !gate.InfoCompiled || !l.mayEmit(core.InfoLevel) {
		return nil
	}
	return l.build(core.InfoLevel, 0, Render(args...))
}

// Warn starts a warning message
func (l *Logger) Warn(args ...interface{}) *Message {
	if !gate.WarnCompiled || !l.mayEmit(core.WarnLevel) {
		return nil
	}
	return l.build(core.WarnLevel, 0, Render(args...))
}

// Error starts an error message
func (l *Logger) Error(args ...interface{}) *Message {
	if !gate.ErrorCompiled || !l.mayEmit(core.ErrorLevel) {
		return nil
	}
	return l.build(core.ErrorLevel, 0, Render(args...))
}

// Critical starts a critical message
func (l *Logger) Critical(args ...interface{}) *Message {
	if !gate.CriticalCompiled || !l.mayEmit(core.CriticalLevel) {
		return nil
	}
	return l.build(core.CriticalLevel, 0, Render(args...))
}

// Tracef starts a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) *Message {
	if !gate.TraceCompiled || !l.mayEmit(core.TraceLevel) {
		return nil
	}
	return l.build(core.TraceLevel, 0, fmt.Sprintf(format, args...))
}

// Debugf starts a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) *Message {
	if !gate.DebugCompiled || !l.mayEmit(core.DebugLevel) {
		return nil
	}
	return l.build(core.DebugLevel, 0, fmt.Sprintf(format, args...))
}

// Infof starts an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) *Message {
	if !gate.InfoCompiled || !l.mayEmit(core.InfoLevel) {
		return nil
	}
	return l.build(core.InfoLevel, 0, fmt.Sprintf(format, args...))
}

// Warnf starts a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) *Message {
	if !gate.WarnCompiled || !l.mayEmit(core.WarnLevel) {
		return nil
	}
	return l.build(core.WarnLevel, 0, fmt.Sprintf(format, args...))
}

// Errorf starts an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) *Message {
	if !gate.ErrorCompiled || !l.mayEmit(core.ErrorLevel) {
		return nil
	}
	return l.build(core.ErrorLevel, 0, fmt.Sprintf(format, args...))
}

// Criticalf starts a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) *Message {
	if !gate.CriticalCompiled || !l.mayEmit(core.CriticalLevel) {
		return nil
	}
	return l.build(core.CriticalLevel, 0, fmt.Sprintf(format, args...))
}

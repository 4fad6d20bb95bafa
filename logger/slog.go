package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/philipp01105/sinklog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// Logger. Records go through the same category check and sink registry as
// native messages.
type SlogHandler struct {
	l     *Logger
	attrs []core.Field
	group string
}

// NewSlogHandler creates a new slog.Handler adapter for l.
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{l: l}
}

// Slog returns a *slog.Logger writing through l
func (l *Logger) Slog() *slog.Logger {
	return slog.New(NewSlogHandler(l))
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.l.Enabled(SlogLevel(level))
}

// Handle converts the record into a Message and emits it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	level := SlogLevel(record.Level)
	if !s.l.mayEmit(level) {
		return nil
	}
	m := &Message{
		l:        s.l,
		level:    level,
		text:     record.Message,
		category: s.l.category,
		at:       record.Time,
	}
	m.fields = make([]core.Field, 0, len(s.l.fields)+len(s.attrs)+record.NumAttrs())
	m.fields = append(m.fields, s.l.fields...)
	m.fields = append(m.fields, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		m.fields = appendSlogAttr(m.fields, s.group, a)
		return true
	})
	if s.l.includeCaller && record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		m.caller = core.CallerInfo{
			File:      frame.File,
			ShortFile: filepath.Base(frame.File),
			Line:      frame.Line,
			Function:  frame.Function,
			Defined:   true,
		}
	}
	m.Emit()
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendSlogAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		l:     s.l,
		attrs: newAttrs,
		group: s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		l:     s.l,
		attrs: s.attrs[:len(s.attrs):len(s.attrs)],
		group: newGroup,
	}
}

// SlogLevel converts a slog.Level to a core.Level. Levels below Debug map
// to Trace and levels four or more above Error map to Critical.
func SlogLevel(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendSlogAttr converts a slog.Attr to fields, prepending the group
// prefix if present. Groups are flattened into dotted keys.
func appendSlogAttr(dst []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	key := a.Key
	if group != "" && key != "" {
		key = group + "." + a.Key
	} else if key == "" {
		key = group
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(dst, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(dst, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		return append(dst, Bool(key, a.Value.Bool()))
	case slog.KindTime:
		return append(dst, Time(key, a.Value.Time()))
	case slog.KindDuration:
		return append(dst, Duration(key, a.Value.Duration()))
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			dst = appendSlogAttr(dst, key, ga)
		}
		return dst
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(dst, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}

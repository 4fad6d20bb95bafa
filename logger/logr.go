package logger

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/philipp01105/sinklog/core"
)

// logrSink implements logr.LogSink on top of a Logger. logr names become
// dotted categories, so category overrides apply to named logr loggers.
type logrSink struct {
	l      *Logger
	values []core.Field
	depth  int
}

var _ logr.LogSink = (*logrSink)(nil)

// NewLogr returns a logr.Logger writing through l. V(0) is Info, V(1) is
// Debug, and V(2) and above are Trace.
func NewLogr(l *Logger) logr.Logger {
	return logr.New(&logrSink{l: l})
}

// Logr returns a logr.Logger writing through l
func (l *Logger) Logr() logr.Logger {
	return NewLogr(l)
}

// VerbosityLevel maps a logr verbosity onto a level
func VerbosityLevel(v int) core.Level {
	switch {
	case v <= 0:
		return core.InfoLevel
	case v == 1:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

func (s *logrSink) Init(info logr.RuntimeInfo) {
	s.depth = info.CallDepth
}

func (s *logrSink) Enabled(level int) bool {
	return s.l.Enabled(VerbosityLevel(level))
}

func (s *logrSink) Info(level int, msg string, keysAndValues ...interface{}) {
	s.emit(VerbosityLevel(level), msg, nil, keysAndValues)
}

func (s *logrSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.emit(core.ErrorLevel, msg, err, keysAndValues)
}

func (s *logrSink) emit(level core.Level, msg string, err error, kv []interface{}) {
	if !s.l.mayEmit(level) {
		return
	}
	// emit and Info/Error sit between build and the logr.Logger frames
	// counted by depth.
	m := s.l.build(level, 1+s.depth, msg)
	m.fields = append(m.fields, s.values...)
	if err != nil {
		m.fields = append(m.fields, Err(err))
	}
	m.fields = appendKeysAndValues(m.fields, kv)
	m.Emit()
}

func (s *logrSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	values := make([]core.Field, len(s.values), len(s.values)+len(keysAndValues)/2+1)
	copy(values, s.values)
	return &logrSink{
		l:      s.l,
		values: appendKeysAndValues(values, keysAndValues),
		depth:  s.depth,
	}
}

func (s *logrSink) WithName(name string) logr.LogSink {
	return &logrSink{
		l:      s.l.Named(name),
		values: s.values,
		depth:  s.depth,
	}
}

func (s *logrSink) WithCallDepth(depth int) logr.LogSink {
	return &logrSink{
		l:      s.l,
		values: s.values,
		depth:  s.depth + depth,
	}
}

// appendKeysAndValues converts alternating key/value pairs into fields.
// A trailing key without a value gets the value "(MISSING)".
func appendKeysAndValues(dst []core.Field, kv []interface{}) []core.Field {
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 >= len(kv) {
			dst = append(dst, String(key, "(MISSING)"))
			break
		}
		dst = append(dst, fieldOf(key, kv[i+1]))
	}
	return dst
}

func fieldOf(key string, v interface{}) core.Field {
	switch val := v.(type) {
	case string:
		return String(key, val)
	case int:
		return Int(key, val)
	case int64:
		return Int64(key, val)
	case float64:
		return Float64(key, val)
	case bool:
		return Bool(key, val)
	case error:
		return core.Field{Key: key, Type: core.ErrorType, Str: val.Error()}
	default:
		return Any(key, val)
	}
}

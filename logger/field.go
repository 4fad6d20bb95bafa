package logger

import (
	"time"

	"github.com/philipp01105/sinklog/core"
)

// ErrorKey is the field key used by Err and Message.Err.
const ErrorKey = "error"

// The constructors below build fields for Builder.WithFields, Logger.With
// and Message.Fields. Message has a chainable shortcut for each of them
// (Str, Int, Dur, ...).

// String builds a string field.
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Int builds an integer field; stored as int64.
func Int(key string, val int) core.Field {
	return Int64(key, int64(val))
}

// Int64 builds an integer field.
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

// Float64 builds a floating-point field.
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

// Bool builds a boolean field, kept as 0 or 1 so it needs no allocation.
func Bool(key string, val bool) core.Field {
	f := core.Field{Key: key, Type: core.BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

// Time builds a timestamp field. Only the instant is kept; it is rendered
// as RFC3339 in local time.
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration builds a duration field, rendered with time.Duration.String.
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err builds an ErrorKey field from err's message. A nil error gives an
// empty value rather than being dropped, so the key is always present.
func Err(err error) core.Field {
	f := core.Field{Key: ErrorKey, Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Any builds a field for an arbitrary value, rendered with fmt.
func Any(key string, val interface{}) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}

package logger

import (
	"github.com/philipp01105/sinklog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel    = core.TraceLevel
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarnLevel     = core.WarnLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
	OffLevel      = core.OffLevel
)

// ParseLevel converts a string to a Level. Only the first letter counts,
// so "warn", "WARNING" and "w" are all WarnLevel. Unknown input yields
// InfoLevel and false.
func ParseLevel(s string) (Level, bool) {
	return core.ParseLevel(s)
}

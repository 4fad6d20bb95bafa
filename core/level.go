package core

import "strings"

// Level represents the severity of a log message
type Level int8

const (
	// TraceLevel for fine-grained tracing output
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// CriticalLevel for failures that need immediate attention
	CriticalLevel
	// OffLevel is not a severity. As a runtime gate value it defers to the
	// build-time level; as a category or sink level it silences everything.
	OffLevel
)

var levelNames = [...]string{
	TraceLevel:    "TRACE",
	DebugLevel:    "DEBUG",
	InfoLevel:     "INFO",
	WarnLevel:     "WARN",
	ErrorLevel:    "ERROR",
	CriticalLevel: "CRITICAL",
	OffLevel:      "OFF",
}

// String returns the string representation of the level
func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// Valid reports whether l is one of the declared levels.
func (l Level) Valid() bool {
	return l >= TraceLevel && l <= OffLevel
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and only looks at the first letter, so "w", "warn" and "WARNING" all map
// to WarnLevel. The boolean is false for empty or unrecognised input.
func ParseLevel(s string) (Level, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return InfoLevel, false
	}
	switch s[0] | 0x20 {
	case 't':
		return TraceLevel, true
	case 'd':
		return DebugLevel, true
	case 'i':
		return InfoLevel, true
	case 'w':
		return WarnLevel, true
	case 'e':
		return ErrorLevel, true
	case 'c':
		return CriticalLevel, true
	case 'o':
		return OffLevel, true
	default:
		return InfoLevel, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names leave the
// level unchanged.
func (l *Level) UnmarshalText(text []byte) error {
	if parsed, ok := ParseLevel(string(text)); ok {
		*l = parsed
	}
	return nil
}

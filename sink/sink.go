package sink

import (
	"errors"
	"sync/atomic"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
)

// ErrClosed is returned by sinks written to after Close.
var ErrClosed = errors.New("sinklog: sink closed")

// Sink is an output endpoint. Write receives the fully formatted line;
// implementations must make each Write atomic with respect to other writes
// so lines never interleave.
type Sink interface {
	// Write outputs one formatted message
	Write(level core.Level, text string) error
	// Flush pushes out anything the sink buffers
	Flush() error
	// SetLevel sets the minimum level the sink accepts
	SetLevel(level core.Level)
	// Level returns the minimum level the sink accepts
	Level() core.Level
}

// Formatting is implemented by sinks that format records themselves
// instead of using the logger's formatter. A nil Formatter means "use the
// logger's".
type Formatting interface {
	Formatter() formatter.Formatter
}

// Named is implemented by sinks that have a display name, used in error
// reports and metrics.
type Named interface {
	Name() string
}

// StatsProvider is implemented by sinks that keep delivery counters.
type StatsProvider interface {
	Stats() *Stats
}

// Base carries the level filter, name and counters shared by the built-in
// sinks. Embed it and call Init from the constructor.
type Base struct {
	name  string
	level atomic.Int32
	stats Stats
}

// Init sets the sink name and initial level.
func (b *Base) Init(name string, level core.Level) {
	b.name = name
	b.level.Store(int32(level))
}

// Name returns the sink name
func (b *Base) Name() string {
	return b.name
}

// SetLevel sets the minimum accepted level
func (b *Base) SetLevel(level core.Level) {
	b.level.Store(int32(level))
}

// Level returns the minimum accepted level
func (b *Base) Level() core.Level {
	return core.Level(b.level.Load())
}

// Stats returns the sink's counters
func (b *Base) Stats() *Stats {
	return &b.stats
}

// nameOf returns a display name for s.
func nameOf(s Sink) string {
	if n, ok := s.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return "unnamed"
}

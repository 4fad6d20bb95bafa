package formatter

import (
	"bytes"
	"sync"

	"github.com/philipp01105/sinklog/core"
)

// Formatter turns a record into the text handed to a sink.
type Formatter interface {
	// Format formats a record, including the trailing newline if any
	Format(rec *core.Record) string
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding the string
// allocation of Format.
type BufferFormatter interface {
	// FormatRecord appends the formatted record to buf.
	FormatRecord(rec *core.Record, buf *bytes.Buffer)
}

// Func adapts a plain function to the Formatter interface.
type Func func(rec *core.Record) string

// Format calls f(rec).
func (f Func) Format(rec *core.Record) string {
	return f(rec)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// IncludeCategory prints the category tag when the record has one
	IncludeCategory bool
	// TimestampFormat specifies the time format (empty for the formatter default)
	TimestampFormat string
	// DisableTimestamp omits the timestamp entirely
	DisableTimestamp bool
	// UTC converts timestamps to UTC before formatting
	UTC bool
	// Color decorates the level tag and applies the record's style
	Color bool
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// render runs a BufferFormatter through a pooled buffer.
func render(f BufferFormatter, rec *core.Record) string {
	buf := getBuffer()
	f.FormatRecord(rec, buf)
	s := buf.String()
	putBuffer(buf)
	return s
}

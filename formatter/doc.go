// Package formatter defines how records are turned into text for sinks.
//
// Formatter is the capability sinks and the logger depend on: one record in,
// one string out. Formatters that can also write into a caller-owned buffer
// implement BufferFormatter; both built-in formatters do, and format into a
// pooled bytes.Buffer using Append-style functions so the only allocation
// per record is the returned string.
//
// TextFormatter produces "time [LEVEL] [category] message k=v" lines. With
// Config.Color it colors the level tag and applies the message style carried
// by the record; in-place records start with a carriage return (plus an
// erase-line sequence when colored) and carry no trailing newline.
// JSONFormatter produces one object per line. Func adapts any function.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter

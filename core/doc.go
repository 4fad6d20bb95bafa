// Package core defines the shared types used across sinklog.
//
// Level is the totally ordered severity (Trace < Debug < Info < Warn <
// Error < Critical < Off). Record is one emitted message as handed to
// formatters and sinks; records are pooled via sync.Pool, so a sink must
// copy anything it wants to keep past its Write call. Style carries the
// color annotation a message was built with and renders it through
// fatih/color. Field stores structured values in fixed numeric slots so
// common types never escape to the heap.
//
// CoarseClock is an optional clock.PassiveClock refreshed every 500µs by a
// background goroutine, for hot paths where time.Now shows up in profiles.
package core

// Package memsink provides a sink that keeps every message in memory.
// It is meant for tests and for embedding a log view in an application.
package memsink

import (
	"strings"
	"sync"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/sink"
)

// Entry is one captured message
type Entry struct {
	Level core.Level
	Text  string
}

// Sink captures written messages
type Sink struct {
	sink.Base

	mu      sync.Mutex
	entries []Entry
	limit   int
	fmt     formatter.Formatter
	closed  bool
	flushes int
}

// Option configures a Sink
type Option func(*Sink)

// WithLimit keeps only the most recent n entries. Zero means unbounded.
func WithLimit(n int) Option {
	return func(s *Sink) {
		if n >= 0 {
			s.limit = n
		}
	}
}

// WithFormatter makes the sink render records itself
func WithFormatter(f formatter.Formatter) Option {
	return func(s *Sink) { s.fmt = f }
}

// WithName sets the sink name
func WithName(name string) Option {
	return func(s *Sink) { s.Base.Init(name, s.Level()) }
}

// New creates a memory sink accepting level and above
func New(level core.Level, opts ...Option) *Sink {
	s := &Sink{}
	s.Init("memory", level)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write implements sink.Sink
func (s *Sink) Write(level core.Level, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sink.ErrClosed
	}
	s.entries = append(s.entries, Entry{Level: level, Text: text})
	if s.limit > 0 && len(s.entries) > s.limit {
		n := copy(s.entries, s.entries[len(s.entries)-s.limit:])
		s.entries = s.entries[:n]
	}
	return nil
}

// Flush implements sink.Sink
func (s *Sink) Flush() error {
	s.mu.Lock()
	s.flushes++
	s.mu.Unlock()
	return nil
}

// Close stops accepting writes
func (s *Sink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Formatter implements sink.Formatting
func (s *Sink) Formatter() formatter.Formatter {
	return s.fmt
}

// Entries returns a copy of the captured messages
func (s *Sink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Lines returns the captured texts with trailing newlines removed
func (s *Sink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = strings.TrimRight(e.Text, "\n")
	}
	return out
}

// Len returns the number of captured messages
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Flushes returns how many times Flush was called
func (s *Sink) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// Reset drops every captured message
func (s *Sink) Reset() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

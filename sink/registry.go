package sink

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithErrorOutput sets where sink failures are reported. The default is a
// locked os.Stderr.
func WithErrorOutput(w zapcore.WriteSyncer) RegistryOption {
	return func(r *Registry) {
		if w != nil {
			r.errOut = w
		}
	}
}

// Registry is an ordered set of sinks that receives every emitted message.
//
// Writers never take the registry lock: the sink list is copy-on-write and
// each dispatch iterates over an immutable snapshot, so adding or removing
// sinks never waits for a slow sink and vice versa.
type Registry struct {
	mu     sync.Mutex // serializes mutations of sinks
	sinks  atomic.Pointer[[]Sink]
	errOut zapcore.WriteSyncer
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{errOut: zapcore.Lock(os.Stderr)}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	empty := []Sink{}
	r.sinks.Store(&empty)
	return r
}

func (r *Registry) snapshot() []Sink {
	return *r.sinks.Load()
}

// Add appends s. Nil sinks and sinks already registered are ignored; the
// return value reports whether s was added.
func (r *Registry) Add(s Sink) bool {
	if s == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.snapshot()
	for _, existing := range cur {
		if sameSink(existing, s) {
			return false
		}
	}
	next := make([]Sink, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, s)
	r.sinks.Store(&next)
	return true
}

// Remove unregisters s and reports whether it was present. The sink is not
// flushed or closed.
func (r *Registry) Remove(s Sink) bool {
	if s == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.snapshot()
	for i, existing := range cur {
		if sameSink(existing, s) {
			next := make([]Sink, 0, len(cur)-1)
			next = append(next, cur[:i]...)
			next = append(next, cur[i+1:]...)
			r.sinks.Store(&next)
			return true
		}
	}
	return false
}

// Clear unregisters every sink.
func (r *Registry) Clear() {
	r.mu.Lock()
	empty := []Sink{}
	r.sinks.Store(&empty)
	r.mu.Unlock()
}

// Count returns the number of registered sinks.
func (r *Registry) Count() int {
	return len(r.snapshot())
}

// Sinks returns the registered sinks in insertion order.
func (r *Registry) Sinks() []Sink {
	cur := r.snapshot()
	out := make([]Sink, len(cur))
	copy(out, cur)
	return out
}

// WriteAll hands text to every sink whose own level admits level. Sinks
// below their threshold are not called. A failing sink is reported to the
// error output and does not stop delivery to the others.
func (r *Registry) WriteAll(level core.Level, text string) {
	for _, s := range r.snapshot() {
		if level < s.Level() {
			countFiltered(s)
			continue
		}
		r.write(s, level, text)
	}
}

// Dispatch formats rec once with fallback and delivers it like WriteAll.
// Sinks implementing Formatting with a non-nil formatter get their own
// rendering instead. A formatter that panics is reported like a failed
// write; only the sinks relying on it miss the message.
func (r *Registry) Dispatch(rec *core.Record, fallback formatter.Formatter) {
	var (
		text      string
		fallErr   error
		formatted bool
	)
	for _, s := range r.snapshot() {
		if rec.Level < s.Level() {
			countFiltered(s)
			continue
		}
		if fs, ok := s.(Formatting); ok {
			if f := fs.Formatter(); f != nil {
				own, err := safeFormat(f, rec)
				if err != nil {
					r.fail(s, "format", err)
					continue
				}
				r.write(s, rec.Level, own)
				continue
			}
		}
		if !formatted {
			text, fallErr = safeFormat(fallback, rec)
			formatted = true
		}
		if fallErr != nil {
			r.fail(s, "format", fallErr)
			continue
		}
		r.write(s, rec.Level, text)
	}
}

func (r *Registry) write(s Sink, level core.Level, text string) {
	if err := safeWrite(s, level, text); err != nil {
		r.fail(s, "write", err)
		return
	}
	if sp, ok := s.(StatsProvider); ok {
		sp.Stats().IncrementWritten()
	}
}

func (r *Registry) fail(s Sink, op string, err error) {
	if sp, ok := s.(StatsProvider); ok {
		sp.Stats().IncrementFailed()
	}
	r.reportError(s, op, err)
}

// FlushAll flushes every sink and returns the combined errors.
func (r *Registry) FlushAll() error {
	var err error
	for _, s := range r.snapshot() {
		if ferr := s.Flush(); ferr != nil {
			err = multierr.Append(err, fmt.Errorf("flush %s: %w", nameOf(s), ferr))
		}
	}
	return err
}

// Close flushes every sink, closes those implementing io.Closer and clears
// the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	cur := r.snapshot()
	empty := []Sink{}
	r.sinks.Store(&empty)
	r.mu.Unlock()

	var err error
	for _, s := range cur {
		if ferr := s.Flush(); ferr != nil {
			err = multierr.Append(err, fmt.Errorf("flush %s: %w", nameOf(s), ferr))
		}
		if c, ok := s.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil {
				err = multierr.Append(err, fmt.Errorf("close %s: %w", nameOf(s), cerr))
			}
		}
	}
	return err
}

func (r *Registry) reportError(s Sink, op string, err error) {
	fmt.Fprintf(r.errOut, "%s sinklog: %s %s failed: %v\n", time.Now().Format(time.RFC3339), nameOf(s), op, err)
	_ = r.errOut.Sync()
}

func safeWrite(s Sink, level core.Level, text string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return s.Write(level, text)
}

func safeFormat(f formatter.Formatter, rec *core.Record) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return f.Format(rec), nil
}

func countFiltered(s Sink) {
	if sp, ok := s.(StatsProvider); ok {
		sp.Stats().IncrementFiltered()
	}
}

// sameSink compares sink handles without panicking on uncomparable
// dynamic types.
func sameSink(a, b Sink) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide Registry.
func Default() *Registry {
	return defaultRegistry
}

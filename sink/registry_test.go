package sink_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/sink"
	"github.com/philipp01105/sinklog/sink/memsink"
)

type failingSink struct {
	sink.Base
	err   error
	panic bool
}

func newFailing(err error) *failingSink {
	s := &failingSink{err: err}
	s.Init("failing", core.TraceLevel)
	return s
}

func (s *failingSink) Write(core.Level, string) error {
	if s.panic {
		panic("boom")
	}
	return s.err
}

func (s *failingSink) Flush() error { return s.err }

// funcSink is not comparable; the registry must not panic on it.
type funcSink struct {
	fn func(string)
}

func (s funcSink) Write(_ core.Level, text string) error { s.fn(text); return nil }
func (s funcSink) Flush() error                          { return nil }
func (s funcSink) SetLevel(core.Level)                   {}
func (s funcSink) Level() core.Level                     { return core.TraceLevel }

type syncBuffer struct {
	mu sync.Mutex
	bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Buffer.Write(p)
}

func (b *syncBuffer) Sync() error { return nil }

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Buffer.String()
}

func TestRegistry_SinkIndependence(t *testing.T) {
	reg := sink.NewRegistry()
	errSink := memsink.New(core.ErrorLevel)
	allSink := memsink.New(core.TraceLevel)
	reg.Add(errSink)
	reg.Add(allSink)

	reg.WriteAll(core.InfoLevel, "info\n")
	reg.WriteAll(core.ErrorLevel, "error\n")

	if got := errSink.Lines(); len(got) != 1 || got[0] != "error" {
		t.Errorf("error sink got %q, want [error]", got)
	}
	if got := allSink.Lines(); len(got) != 2 {
		t.Errorf("trace sink got %q, want 2 lines", got)
	}
	if got := errSink.Stats().Snapshot().Filtered; got != 1 {
		t.Errorf("error sink Filtered = %d, want 1", got)
	}
	if got := allSink.Stats().Snapshot().Written; got != 2 {
		t.Errorf("trace sink Written = %d, want 2", got)
	}
}

func TestRegistry_Membership(t *testing.T) {
	reg := sink.NewRegistry()
	a := memsink.New(core.TraceLevel, memsink.WithName("a"))
	b := memsink.New(core.TraceLevel, memsink.WithName("b"))

	if !reg.Add(a) || !reg.Add(b) {
		t.Fatal("Add() = false for new sinks")
	}
	if reg.Add(a) {
		t.Error("Add() of duplicate = true, want false")
	}
	if reg.Add(nil) {
		t.Error("Add(nil) = true, want false")
	}
	if reg.Count() != 2 {
		t.Errorf("Count() = %d, want 2", reg.Count())
	}
	sinks := reg.Sinks()
	if sinks[0] != sink.Sink(a) || sinks[1] != sink.Sink(b) {
		t.Error("Sinks() not in insertion order")
	}

	if !reg.Remove(a) {
		t.Error("Remove(a) = false, want true")
	}
	if reg.Remove(a) {
		t.Error("second Remove(a) = true, want false")
	}
	reg.WriteAll(core.InfoLevel, "x")
	if a.Len() != 0 || b.Len() != 1 {
		t.Errorf("after Remove: a=%d b=%d, want 0 1", a.Len(), b.Len())
	}

	reg.Clear()
	if reg.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", reg.Count())
	}
}

func TestRegistry_UncomparableSink(t *testing.T) {
	reg := sink.NewRegistry()
	var got []string
	s := funcSink{fn: func(text string) { got = append(got, text) }}

	reg.Add(s)
	reg.Add(s)
	reg.WriteAll(core.InfoLevel, "x")
	if len(got) != 2 {
		t.Errorf("uncomparable sinks are never deduplicated: got %d writes, want 2", len(got))
	}
}

func TestRegistry_FailingSinkDoesNotBlockOthers(t *testing.T) {
	errOut := &syncBuffer{}
	reg := sink.NewRegistry(sink.WithErrorOutput(errOut))
	bad := newFailing(errors.New("disk full"))
	panicking := newFailing(nil)
	panicking.panic = true
	good := memsink.New(core.TraceLevel)
	reg.Add(bad)
	reg.Add(panicking)
	reg.Add(good)

	reg.WriteAll(core.WarnLevel, "hello")

	if good.Len() != 1 {
		t.Errorf("good sink got %d messages, want 1", good.Len())
	}
	out := errOut.String()
	if !strings.Contains(out, "disk full") || !strings.Contains(out, "panic: boom") {
		t.Errorf("error output = %q, want both failures reported", out)
	}
	if got := bad.Stats().Snapshot().Failed; got != 1 {
		t.Errorf("Failed = %d, want 1", got)
	}
}

func TestRegistry_FlushAndClose(t *testing.T) {
	reg := sink.NewRegistry(sink.WithErrorOutput(zapcore.AddSync(&bytes.Buffer{})))
	good := memsink.New(core.TraceLevel)
	reg.Add(good)
	reg.Add(newFailing(errors.New("e1")))
	reg.Add(newFailing(errors.New("e2")))

	err := reg.FlushAll()
	if err == nil || !strings.Contains(err.Error(), "e1") || !strings.Contains(err.Error(), "e2") {
		t.Errorf("FlushAll() error = %v, want both errors", err)
	}
	if good.Flushes() != 1 {
		t.Errorf("Flushes() = %d, want 1", good.Flushes())
	}

	if err := reg.Close(); err == nil {
		t.Error("Close() error = nil, want flush errors")
	}
	if reg.Count() != 0 {
		t.Errorf("Count() after Close = %d, want 0", reg.Count())
	}
	if err := good.Write(core.InfoLevel, "x"); !errors.Is(err, sink.ErrClosed) {
		t.Errorf("Write() after Close error = %v, want ErrClosed", err)
	}
}

func TestRegistry_DispatchFormatsPerSink(t *testing.T) {
	var calls int
	fallback := formatter.Func(func(rec *core.Record) string {
		calls++
		return "plain:" + rec.Message
	})
	custom := formatter.Func(func(rec *core.Record) string {
		return "custom:" + rec.Message
	})

	reg := sink.NewRegistry()
	a := memsink.New(core.TraceLevel)
	b := memsink.New(core.TraceLevel)
	c := memsink.New(core.TraceLevel, memsink.WithFormatter(custom))
	reg.Add(a)
	reg.Add(b)
	reg.Add(c)

	rec := &core.Record{Level: core.InfoLevel, Message: "m"}
	reg.Dispatch(rec, fallback)

	if calls != 1 {
		t.Errorf("fallback formatter called %d times, want 1", calls)
	}
	if a.Lines()[0] != "plain:m" || b.Lines()[0] != "plain:m" {
		t.Errorf("fallback sinks got %q %q", a.Lines(), b.Lines())
	}
	if c.Lines()[0] != "custom:m" {
		t.Errorf("formatting sink got %q, want custom:m", c.Lines())
	}

	calls = 0
	reg.Dispatch(&core.Record{Level: core.TraceLevel, Message: "m"}, fallback)
	a.SetLevel(core.OffLevel)
	b.SetLevel(core.OffLevel)
	reg.Dispatch(&core.Record{Level: core.CriticalLevel, Message: "m"}, fallback)
	if calls != 1 {
		t.Errorf("fallback formatted %d times, want 1 (skipped when no sink needs it)", calls)
	}
}

func TestRegistry_PanickingFormatterDoesNotBlockOthers(t *testing.T) {
	boom := formatter.Func(func(*core.Record) string { panic("boom") })
	plain := formatter.Func(func(rec *core.Record) string { return rec.Message })

	errOut := &syncBuffer{}
	reg := sink.NewRegistry(sink.WithErrorOutput(errOut))
	broken := memsink.New(core.TraceLevel, memsink.WithFormatter(boom), memsink.WithName("broken"))
	good := memsink.New(core.TraceLevel)
	reg.Add(broken)
	reg.Add(good)

	reg.Dispatch(&core.Record{Level: core.InfoLevel, Message: "m"}, plain)

	if got := good.Lines(); len(got) != 1 || got[0] != "m" {
		t.Errorf("good sink got %q, want [m]", got)
	}
	if broken.Len() != 0 {
		t.Errorf("broken sink got %d messages, want 0", broken.Len())
	}
	if got := broken.Stats().Snapshot().Failed; got != 1 {
		t.Errorf("Failed = %d, want 1", got)
	}
	if out := errOut.String(); !strings.Contains(out, "broken format failed: panic: boom") {
		t.Errorf("error output = %q, want formatter panic reported", out)
	}

	// a panicking fallback only affects the sinks that use it
	own := memsink.New(core.TraceLevel, memsink.WithFormatter(plain))
	reg.Remove(broken)
	reg.Add(own)
	reg.Dispatch(&core.Record{Level: core.InfoLevel, Message: "n"}, boom)

	if good.Len() != 1 {
		t.Errorf("fallback sink got %d messages, want 1", good.Len())
	}
	if got := good.Stats().Snapshot().Failed; got != 1 {
		t.Errorf("fallback sink Failed = %d, want 1", got)
	}
	if got := own.Lines(); len(got) != 1 || got[0] != "n" {
		t.Errorf("formatting sink got %q, want [n]", got)
	}
}

func TestRegistry_ConcurrentIntegrity(t *testing.T) {
	const goroutines, perGoroutine = 10, 1000

	reg := sink.NewRegistry()
	mem := memsink.New(core.TraceLevel)
	reg.Add(mem)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				reg.WriteAll(core.InfoLevel, fmt.Sprintf("g%d-m%d", g, i))
			}
		}(g)
	}
	wg.Wait()

	lines := mem.Lines()
	if len(lines) != goroutines*perGoroutine {
		t.Fatalf("got %d lines, want %d", len(lines), goroutines*perGoroutine)
	}
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if seen[l] {
			t.Fatalf("duplicate line %q", l)
		}
		seen[l] = true
	}
	for g := 0; g < goroutines; g++ {
		for i := 0; i < perGoroutine; i++ {
			if !seen[fmt.Sprintf("g%d-m%d", g, i)] {
				t.Fatalf("missing g%d-m%d", g, i)
			}
		}
	}
}

func TestRegistry_ConcurrentMembership(t *testing.T) {
	reg := sink.NewRegistry()
	stable := memsink.New(core.TraceLevel)
	reg.Add(stable)

	const writes = 2000
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			reg.WriteAll(core.InfoLevel, "x")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s := memsink.New(core.TraceLevel)
			reg.Add(s)
			reg.Remove(s)
		}
	}()
	wg.Wait()

	if stable.Len() != writes {
		t.Errorf("stable sink got %d, want %d", stable.Len(), writes)
	}
}

func BenchmarkRegistry_WriteAll(b *testing.B) {
	reg := sink.NewRegistry()
	reg.Add(memsink.New(core.ErrorLevel))
	reg.Add(memsink.New(core.ErrorLevel))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.WriteAll(core.InfoLevel, "filtered")
	}
}

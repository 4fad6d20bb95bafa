package benchmark

import (
	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/sink"
)

// noopSink accepts every line and drops it, so benchmarks measure the
// logger and formatter without any I/O.
type noopSink struct {
	sink.Base
}

func newNoopSink() *noopSink {
	s := &noopSink{}
	s.Init("noop", core.TraceLevel)
	return s
}

func (s *noopSink) Write(_ core.Level, text string) error {
	_ = len(text)
	return nil
}

func (s *noopSink) Flush() error {
	return nil
}

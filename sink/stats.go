package sink

import (
	"sync/atomic"

	"github.com/philipp01105/sinklog/core"
)

// Stats tracks per-sink delivery statistics
type Stats struct {
	written  atomic.Uint64
	filtered atomic.Uint64
	failed   atomic.Uint64
	blocked  atomic.Uint64
	dropped  [core.OffLevel]atomic.Uint64
}

// IncrementWritten counts a successful write
func (s *Stats) IncrementWritten() {
	s.written.Add(1)
}

// IncrementFiltered counts a message skipped by the sink's own level
func (s *Stats) IncrementFiltered() {
	s.filtered.Add(1)
}

// IncrementFailed counts a message lost to a write or format error
func (s *Stats) IncrementFailed() {
	s.failed.Add(1)
}

// IncrementBlocked counts times a writer had to wait for buffer space
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementDropped counts a message discarded by a buffering sink
func (s *Stats) IncrementDropped(level core.Level) {
	if level >= 0 && int(level) < len(s.dropped) {
		s.dropped[level].Add(1)
	}
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Written  uint64
	Filtered uint64
	Failed   uint64
	Blocked  uint64
	Dropped  map[core.Level]uint64
}

// TotalDropped sums drops across levels
func (s Snapshot) TotalDropped() uint64 {
	var n uint64
	for _, v := range s.Dropped {
		n += v
	}
	return n
}

// Snapshot returns the current counter values
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		Written:  s.written.Load(),
		Filtered: s.filtered.Load(),
		Failed:   s.failed.Load(),
		Blocked:  s.blocked.Load(),
		Dropped:  make(map[core.Level]uint64, len(s.dropped)),
	}
	for l := range s.dropped {
		if v := s.dropped[l].Load(); v > 0 {
			snap.Dropped[core.Level(l)] = v
		}
	}
	return snap
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	s.written.Store(0)
	s.filtered.Store(0)
	s.failed.Store(0)
	s.blocked.Store(0)
	for l := range s.dropped {
		s.dropped[l].Store(0)
	}
}

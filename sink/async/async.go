// Package async decorates a sink with a bounded queue and a background
// writer goroutine.
//
// When the queue is full, the per-level OverflowPolicy decides what
// happens: DropNewest and DropOldest count a drop in the sink's stats,
// Block waits up to BlockTimeout and then writes on the caller's
// goroutine. Close drains what is queued, bounded by DrainTimeout.
package async

import (
	"io"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/sink"
)

// Config holds configuration for the async decorator
type Config struct {
	// BufferSize is the queue capacity (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout bounds the wait of the Block policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
	// OnError receives write errors from the background goroutine
	OnError func(error)
}

func applyDefaults(cfg *Config) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

type item struct {
	level core.Level
	text  string
	flush chan error
}

// Sink queues messages for an inner sink
type Sink struct {
	sink.Base

	inner        sink.Sink
	queue        chan item
	policy       map[core.Level]OverflowPolicy
	blockTimeout time.Duration
	drainTimeout time.Duration
	onError      func(error)

	closed    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New wraps inner. The decorator accepts every level the inner sink
// accepts at creation time; use SetLevel to change it.
func New(inner sink.Sink, cfg Config) *Sink {
	applyDefaults(&cfg)
	s := &Sink{
		inner:        inner,
		queue:        make(chan item, cfg.BufferSize),
		policy:       cfg.OverflowPolicy,
		blockTimeout: cfg.BlockTimeout,
		drainTimeout: cfg.DrainTimeout,
		onError:      cfg.OnError,
		closed:       make(chan struct{}),
		done:         make(chan struct{}),
	}
	name := "async"
	if n, ok := inner.(sink.Named); ok && n.Name() != "" {
		name = "async(" + n.Name() + ")"
	}
	s.Init(name, inner.Level())
	go s.process()
	return s
}

// Inner returns the wrapped sink
func (s *Sink) Inner() sink.Sink {
	return s.inner
}

// Write queues a message, applying the level's overflow policy when the
// queue is full.
func (s *Sink) Write(level core.Level, text string) error {
	select {
	case <-s.closed:
		return sink.ErrClosed
	default:
	}

	it := item{level: level, text: text}
	select {
	case s.queue <- it:
		return nil
	default:
	}

	policy, ok := s.policy[level]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		s.Stats().IncrementBlocked()
		timer := time.NewTimer(s.blockTimeout)
		defer timer.Stop()
		select {
		case s.queue <- it:
			return nil
		case <-timer.C:
			return s.inner.Write(level, text)
		case <-s.closed:
			return s.inner.Write(level, text)
		}

	case DropOldest:
		select {
		case old := <-s.queue:
			if old.flush != nil {
				// never lose a flush request; it goes back to the front of the line
				s.handle(old)
			} else {
				s.Stats().IncrementDropped(old.level)
			}
		default:
		}
		select {
		case s.queue <- it:
		default:
			s.Stats().IncrementDropped(level)
		}
		return nil

	default:
		s.Stats().IncrementDropped(level)
		return nil
	}
}

func (s *Sink) handle(it item) {
	if it.flush != nil {
		it.flush <- s.inner.Flush()
		return
	}
	if it.level < s.inner.Level() {
		return
	}
	if err := s.inner.Write(it.level, it.text); err != nil {
		s.Stats().IncrementFailed()
		if s.onError != nil {
			s.onError(err)
		}
	}
}

func (s *Sink) process() {
	defer close(s.done)
	for {
		select {
		case it := <-s.queue:
			s.handle(it)
		case <-s.closed:
			deadline := time.NewTimer(s.drainTimeout)
			defer deadline.Stop()
			for {
				select {
				case it := <-s.queue:
					s.handle(it)
				case <-deadline.C:
					return
				default:
					return
				}
			}
		}
	}
}

// Flush waits until everything queued before the call is written, then
// flushes the inner sink.
func (s *Sink) Flush() error {
	req := item{flush: make(chan error, 1)}
	select {
	case s.queue <- req:
	case <-s.done:
		return s.inner.Flush()
	}
	select {
	case err := <-req.flush:
		return err
	case <-s.done:
		return s.inner.Flush()
	}
}

// Close drains the queue, then flushes and closes the inner sink
func (s *Sink) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		<-s.done
		err = s.inner.Flush()
		if c, ok := s.inner.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	})
	return err
}

// Pending returns the number of queued messages
func (s *Sink) Pending() int {
	return len(s.queue)
}

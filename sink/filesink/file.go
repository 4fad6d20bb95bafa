package filesink

import (
	"bufio"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
	"k8s.io/utils/clock"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/sink"
)

// Config holds configuration for the file sink
type Config struct {
	// Filename is the file to write to (required)
	Filename string
	// Level is the minimum accepted level (default: TraceLevel)
	Level core.Level
	// Formatter overrides the logger's formatter for this sink
	Formatter formatter.Formatter
	// MaxSizeMB is the size at which the file is rotated (default: 100)
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep (0 keeps all)
	MaxBackups int
	// MaxAgeDays removes rotated files older than this (0 disables)
	MaxAgeDays int
	// Compress gzips rotated files
	Compress bool
	// LocalTime uses local time in backup file names (default: UTC)
	LocalTime bool
	// RotateInterval rotates the file when this much time has passed (0 disables)
	RotateInterval time.Duration
	// BufferSize is the bufio buffer size in bytes (default: 32KiB)
	BufferSize int
	// Clock is the time source for RotateInterval (default: real clock)
	Clock clock.PassiveClock
	// Name identifies the sink in error reports and metrics (default: Filename)
	Name string
}

func applyDefaults(cfg *Config) {
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 100
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 32 * 1024
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Filename
	}
}

// Sink writes messages to a rotating file
type Sink struct {
	sink.Base

	mu             sync.Mutex
	lj             *lumberjack.Logger
	buf            *bufio.Writer
	fmt            formatter.Formatter
	clock          clock.PassiveClock
	rotateInterval time.Duration
	lastRotate     time.Time
	closed         bool
}

// New creates a file sink. The file is opened lazily on first write.
func New(cfg Config) (*Sink, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filesink: filename is required")
	}
	applyDefaults(&cfg)

	lj := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	}
	s := &Sink{
		lj:             lj,
		buf:            bufio.NewWriterSize(lj, cfg.BufferSize),
		fmt:            cfg.Formatter,
		clock:          cfg.Clock,
		rotateInterval: cfg.RotateInterval,
		lastRotate:     cfg.Clock.Now(),
	}
	s.Init(cfg.Name, cfg.Level)
	return s, nil
}

// Write implements sink.Sink
func (s *Sink) Write(_ core.Level, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sink.ErrClosed
	}
	if s.rotateInterval > 0 && s.clock.Since(s.lastRotate) >= s.rotateInterval {
		if err := s.rotateLocked(); err != nil {
			return err
		}
	}
	_, err := s.buf.WriteString(text)
	return err
}

// Flush writes buffered data to the file
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.buf.Flush()
}

// Rotate flushes and starts a new file, keeping the old one as a backup
func (s *Sink) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sink.ErrClosed
	}
	return s.rotateLocked()
}

func (s *Sink) rotateLocked() error {
	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("filesink: flush before rotate: %w", err)
	}
	if err := s.lj.Rotate(); err != nil {
		return fmt.Errorf("filesink: rotate: %w", err)
	}
	s.lastRotate = s.clock.Now()
	return nil
}

// Close flushes and closes the file
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	ferr := s.buf.Flush()
	cerr := s.lj.Close()
	return multierr.Combine(ferr, cerr)
}

// Formatter implements sink.Formatting
func (s *Sink) Formatter() formatter.Formatter {
	return s.fmt
}

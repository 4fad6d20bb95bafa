package consolesink

import (
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-colorable"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/sink"
)

// ColorMode selects when ANSI colors are written
type ColorMode int

const (
	// ColorAuto colors terminals unless NO_COLOR is set
	ColorAuto ColorMode = iota
	// ColorAlways always writes colors
	ColorAlways
	// ColorNever never writes colors
	ColorNever
)

// Config holds configuration for the console sink
type Config struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Level is the minimum accepted level (default: TraceLevel)
	Level core.Level
	// Formatter overrides the logger's formatter for this sink
	Formatter formatter.Formatter
	// Color selects when colors are written (default: ColorAuto)
	Color ColorMode
	// IncludeCaller adds file:line to the built-in colored format
	IncludeCaller bool
	// Name identifies the sink in error reports and metrics (default: "console")
	Name string
}

func applyDefaults(cfg *Config) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Name == "" {
		cfg.Name = "console"
	}
}

// Sink writes messages to a console
type Sink struct {
	sink.Base

	mu     sync.Mutex // serializes writes
	w      io.Writer
	color  bool
	fmt    formatter.Formatter
	closed bool
	// width of the in-place line currently on screen, 0 if none
	inPlace int
}

// New creates a console sink.
func New(cfg Config) *Sink {
	applyDefaults(&cfg)

	s := &Sink{w: cfg.Writer}
	s.Init(cfg.Name, cfg.Level)

	switch cfg.Color {
	case ColorAlways:
		s.color = true
	case ColorNever:
		s.color = false
	default:
		s.color = isTerminal(cfg.Writer) && !noColorEnv()
	}

	if f, ok := cfg.Writer.(*os.File); ok && s.color {
		s.w = colorable.NewColorable(f)
	}

	switch {
	case cfg.Formatter != nil:
		s.fmt = cfg.Formatter
	case s.color:
		s.fmt = formatter.NewTextFormatter(formatter.Config{
			Color:           true,
			IncludeCategory: true,
			IncludeCaller:   cfg.IncludeCaller,
		})
	}
	return s
}

// Write implements sink.Sink
func (s *Sink) Write(_ core.Level, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sink.ErrClosed
	}
	_, err := io.WriteString(s.w, s.layout(text))
	return err
}

// layout keeps in-place output readable: a shorter in-place line is padded
// over the previous one unless it erases the line itself, and the next
// regular line starts below the progress line. s.mu must be held.
func (s *Sink) layout(text string) string {
	if strings.HasPrefix(text, "\r") && !strings.HasSuffix(text, "\n") {
		width := utf8.RuneCountInString(text) - 1
		prev := s.inPlace
		s.inPlace = width
		if width < prev && !strings.HasPrefix(text, "\r\x1b[2K") {
			return text + strings.Repeat(" ", prev-width)
		}
		return text
	}
	if s.inPlace > 0 {
		s.inPlace = 0
		return "\n" + text
	}
	return text
}

// Flush syncs the writer when it is a file
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.w.(*os.File); ok && !isTerminal(f) {
		return f.Sync()
	}
	return nil
}

// Close stops accepting writes. The underlying writer is not closed.
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

// Colored reports whether the sink writes ANSI colors
func (s *Sink) Colored() bool {
	return s.color
}

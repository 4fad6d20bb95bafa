// Package zapsink forwards sinklog messages into a zap core, so an
// application that already configured zap keeps a single output pipeline.
package zapsink

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/sink"
)

// Sink writes messages to a zapcore.Core
type Sink struct {
	sink.Base
	core zapcore.Core
}

// New wraps a zapcore.Core. Messages pass the sink's own level first and
// then the core's level.
func New(c zapcore.Core, level core.Level) *Sink {
	s := &Sink{core: c}
	s.Init("zap", level)
	return s
}

// FromLogger wraps the core of an existing *zap.Logger
func FromLogger(l *zap.Logger, level core.Level) *Sink {
	return New(l.Core(), level)
}

// ZapLevel maps a sinklog level onto the closest zap level
func ZapLevel(l core.Level) zapcore.Level {
	switch {
	case l <= core.DebugLevel:
		return zapcore.DebugLevel
	case l == core.InfoLevel:
		return zapcore.InfoLevel
	case l == core.WarnLevel:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Write implements sink.Sink
func (s *Sink) Write(level core.Level, text string) error {
	zl := ZapLevel(level)
	if !s.core.Enabled(zl) {
		return nil
	}
	return s.core.Write(zapcore.Entry{
		Level:   zl,
		Time:    time.Now(),
		Message: strings.TrimRight(text, "\n"),
	}, nil)
}

// Flush syncs the zap core
func (s *Sink) Flush() error {
	return s.core.Sync()
}

// Formatter renders only the message body and fields, since zap adds its
// own timestamp and level.
func (s *Sink) Formatter() formatter.Formatter {
	return messageOnly
}

var messageOnly = formatter.Func(func(rec *core.Record) string {
	if rec.Category == "" && len(rec.Fields) == 0 {
		return rec.Message
	}
	var b strings.Builder
	if rec.Category != "" {
		b.WriteByte('[')
		b.WriteString(rec.Category)
		b.WriteString("] ")
	}
	b.WriteString(rec.Message)
	for _, f := range rec.Fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.StringValue())
	}
	return b.String()
})

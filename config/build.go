package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/logger"
	"github.com/philipp01105/sinklog/sink"
	"github.com/philipp01105/sinklog/sink/async"
	"github.com/philipp01105/sinklog/sink/consolesink"
	"github.com/philipp01105/sinklog/sink/filesink"
)

// Build creates a Logger with its own gate, registries and throttle as
// described by cfg. Close the logger to release file outputs.
func Build(cfg Config) (*logger.Logger, error) {
	b := logger.NewBuilder().WithCaller(cfg.Caller)

	if cfg.Level != "" {
		level, ok := core.ParseLevel(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("config: unknown level %q", cfg.Level)
		}
		b.WithLevel(level)
	}

	patterns := make([]string, 0, len(cfg.Categories))
	for p := range cfg.Categories {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	for _, p := range patterns {
		level, ok := core.ParseLevel(cfg.Categories[p])
		if !ok {
			return nil, fmt.Errorf("config: category %q: unknown level %q", p, cfg.Categories[p])
		}
		b.WithCategoryLevel(p, level)
	}

	fcfg := formatter.Config{
		IncludeCaller:   cfg.Caller,
		IncludeCategory: true,
		TimestampFormat: cfg.TimeFormat,
		UTC:             cfg.UTC,
	}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		b.WithFormatter(formatter.NewTextFormatter(fcfg))
	case "json":
		b.WithFormatter(formatter.NewJSONFormatter(fcfg))
	default:
		return nil, fmt.Errorf("config: unknown format %q", cfg.Format)
	}

	out, err := buildOutput(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Async {
		out = async.New(out, async.Config{BufferSize: cfg.BufferSize})
	}
	return b.WithSink(out).Build(), nil
}

func buildOutput(cfg Config) (sink.Sink, error) {
	color := consolesink.ColorAuto
	if cfg.NoColor || strings.EqualFold(cfg.Format, "json") {
		color = consolesink.ColorNever
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "", "stdout":
		return consolesink.New(consolesink.Config{Writer: os.Stdout, Color: color, IncludeCaller: cfg.Caller}), nil
	case "stderr":
		return consolesink.New(consolesink.Config{Writer: os.Stderr, Color: color, IncludeCaller: cfg.Caller}), nil
	}
	fs, err := filesink.New(filesink.Config{
		Filename:   strings.TrimSpace(cfg.Output),
		MaxSizeMB:  cfg.File.MaxSizeMB,
		MaxBackups: cfg.File.MaxBackups,
		MaxAgeDays: cfg.File.MaxAgeDays,
		Compress:   cfg.File.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("config: output: %w", err)
	}
	return fs, nil
}

// MustBuild is like Build but panics on error. Intended for program
// start-up with a static configuration.
func MustBuild(cfg Config) *logger.Logger {
	l, err := Build(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

//go:build !sinklog_min_trace && !sinklog_min_debug && !sinklog_min_info && !sinklog_min_warn && !sinklog_min_error && !sinklog_min_critical && !sinklog_min_off

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/sink/async"
	"github.com/philipp01105/sinklog/sink/consolesink"
)

func TestBuild_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := Default()
	cfg.Level = "info"
	cfg.Format = "json"
	cfg.Output = path
	cfg.Categories = map[string]string{"db": "debug"}

	l, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	l.Debug("hidden").Emit()
	l.Named("db").Debug("query").Int("rows", 3).Emit()
	l.Warn("disk").Emit()
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), data)
	}
	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line is not JSON: %v\n%s", err, lines[0])
	}
	if first["message"] != "query" || first["category"] != "db" || first["level"] != "DEBUG" {
		t.Errorf("first line = %v", first)
	}
	if !strings.Contains(lines[1], `"message":"disk"`) {
		t.Errorf("second line = %s", lines[1])
	}
}

func TestBuild_Console(t *testing.T) {
	cfg := Default()
	cfg.Level = "warn"
	cfg.Output = "stderr"
	cfg.NoColor = true
	cfg.Async = true

	l, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer l.Close()

	if l.Enabled(core.InfoLevel) || !l.Enabled(core.WarnLevel) {
		t.Error("level not applied")
	}
	sinks := l.Sinks().Sinks()
	if len(sinks) != 1 {
		t.Fatalf("got %d sinks, want 1", len(sinks))
	}
	a, ok := sinks[0].(*async.Sink)
	if !ok {
		t.Fatalf("sink is %T, want *async.Sink", sinks[0])
	}
	console, ok := a.Inner().(*consolesink.Sink)
	if !ok {
		t.Fatalf("inner sink is %T, want *consolesink.Sink", a.Inner())
	}
	if console.Colored() {
		t.Error("NoColor output is colored")
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"level", func(c *Config) { c.Level = "loud" }},
		{"category", func(c *Config) { c.Categories = map[string]string{"x": "?"} }},
		{"format", func(c *Config) { c.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if l, err := Build(cfg); err == nil {
				l.Close()
				t.Error("Build() error = nil")
			}
		})
	}
}

func TestMustBuild_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBuild did not panic")
		}
	}()
	MustBuild(Config{Format: "xml"})
}

//go:build !sinklog_min_trace && !sinklog_min_debug && !sinklog_min_info && !sinklog_min_warn && !sinklog_min_error && !sinklog_min_critical && !sinklog_min_off

package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/sink/memsink"
)

func TestSlogHandler_Enabled(t *testing.T) {
	l, _ := newTestLogger(core.InfoLevel)
	sh := NewSlogHandler(l)

	if sh.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug should not be enabled when level is Info")
	}
	if !sh.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info should be enabled when level is Info")
	}
	if !sh.Enabled(context.Background(), slog.LevelError) {
		t.Error("Error should be enabled when level is Info")
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	l, mem := newTestLogger(core.DebugLevel)
	sl := l.Slog()

	sl.Info("test message", "key", "value", "count", 42)
	sl.Debug("debug")
	sl.With("req", "r1").WithGroup("http").Warn("slow", "ms", 250, slog.Group("peer", "ip", "10.0.0.1"))
	sl.Error("failed", "err", errors.New("reset"))

	want := []string{
		"[INFO] test message key=value count=42",
		"[DEBUG] debug",
		"[WARN] slow req=r1 http.ms=250 http.peer.ip=10.0.0.1",
		"[ERROR] failed err=reset",
	}
	got := mem.Lines()
	if len(got) != len(want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSlogHandler_UsesCategory(t *testing.T) {
	l, mem := newTestLogger(core.InfoLevel)
	l.SetCategoryLevel("http", core.ErrorLevel)
	sl := l.Named("http").Slog()

	sl.Info("hidden")
	sl.Error("shown")
	if got := mem.Lines(); len(got) != 1 || got[0] != "[ERROR] [http] shown" {
		t.Errorf("Lines() = %q", got)
	}
}

func TestSlogHandler_KeepsRecordTime(t *testing.T) {
	l, _ := newTestLogger(core.InfoLevel)
	stamp := memsink.New(core.TraceLevel, memsink.WithFormatter(formatter.Func(func(rec *core.Record) string {
		return rec.Time.UTC().Format(time.RFC3339)
	})))
	l.AddSink(stamp)

	when := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	r := slog.NewRecord(when, slog.LevelInfo, "stamped", 0)
	if err := NewSlogHandler(l).Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got := stamp.Lines(); len(got) != 1 || got[0] != "2020-01-02T03:04:05Z" {
		t.Errorf("record time = %q, want 2020-01-02T03:04:05Z", got)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want core.Level
	}{
		{slog.LevelDebug - 4, core.TraceLevel},
		{slog.LevelDebug, core.DebugLevel},
		{slog.LevelInfo, core.InfoLevel},
		{slog.LevelWarn, core.WarnLevel},
		{slog.LevelError, core.ErrorLevel},
		{slog.LevelError + 4, core.CriticalLevel},
	}
	for _, tt := range tests {
		if got := SlogLevel(tt.in); got != tt.want {
			t.Errorf("SlogLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

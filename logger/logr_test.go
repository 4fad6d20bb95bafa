//go:build !sinklog_min_trace && !sinklog_min_debug && !sinklog_min_info && !sinklog_min_warn && !sinklog_min_error && !sinklog_min_critical && !sinklog_min_off

package logger

import (
	"errors"
	"strings"
	"testing"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/gate"
	"github.com/philipp01105/sinklog/sink/memsink"
)

func TestLogr_Verbosity(t *testing.T) {
	l, mem := newTestLogger(core.DebugLevel)
	lr := l.Logr()

	lr.Info("v0", "k", 1)
	lr.V(1).Info("v1")
	lr.V(2).Info("v2")
	lr.Error(errors.New("boom"), "failed", "attempt", 3)

	want := []string{
		"[INFO] v0 k=1",
		"[DEBUG] v1",
		"[ERROR] failed error=boom attempt=3",
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
	if lr.V(2).Enabled() {
		t.Error("V(2) should be disabled at DEBUG")
	}
}

func TestLogr_NamesAreCategories(t *testing.T) {
	l, mem := newTestLogger(core.InfoLevel)
	l.SetCategoryLevel("ctrl.*", core.WarnLevel)

	lr := l.Logr().WithName("ctrl").WithName("node").WithValues("node", "n1")
	lr.Info("hidden")
	lr.Error(nil, "shown", "odd")

	got := mem.Lines()
	if len(got) != 1 {
		t.Fatalf("Lines() = %q, want one line", got)
	}
	if want := "[ERROR] [ctrl.node] shown node=n1 odd=(MISSING)"; got[0] != want {
		t.Errorf("line = %q, want %q", got[0], want)
	}
}

func TestLogr_CallerDepth(t *testing.T) {
	mem := memsink.New(core.TraceLevel)
	l := NewBuilder().
		WithGate(gate.New(gate.WithLookup(noEnv))).
		WithSink(mem).
		WithCaller(true).
		Build()

	l.Logr().Info("where")
	if got := mem.Lines()[0]; !strings.Contains(got, "[logr_test.go:") {
		t.Errorf("line = %q, want caller logr_test.go", got)
	}
}

func TestVerbosityLevel(t *testing.T) {
	tests := []struct {
		v    int
		want core.Level
	}{
		{-1, core.InfoLevel},
		{0, core.InfoLevel},
		{1, core.DebugLevel},
		{2, core.TraceLevel},
		{9, core.TraceLevel},
	}
	for _, tt := range tests {
		if got := VerbosityLevel(tt.v); got != tt.want {
			t.Errorf("VerbosityLevel(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

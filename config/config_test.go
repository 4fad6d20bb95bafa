package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Format != "text" || cfg.Output != "stdout" {
		t.Errorf("Default() = %+v", cfg)
	}
	if cfg.File.MaxSizeMB != 100 || cfg.BufferSize != 1000 {
		t.Errorf("Default() sizes = %+v", cfg)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "log.yaml", `
level: debug
format: json
caller: true
categories:
  net.*: warn
  db: trace
file:
  maxBackups: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Level != "debug" || cfg.Format != "json" || !cfg.Caller {
		t.Errorf("Load() = %+v", cfg)
	}
	want := map[string]string{"net.*": "warn", "db": "trace"}
	if !reflect.DeepEqual(cfg.Categories, want) {
		t.Errorf("Categories = %v, want %v", cfg.Categories, want)
	}
	if cfg.File.MaxBackups != 2 || cfg.File.MaxSizeMB != 100 {
		t.Errorf("File = %+v, want backups=2 and default size", cfg.File)
	}
	if cfg.Output != "stdout" {
		t.Errorf("Output = %q, want default", cfg.Output)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "log.json", `{"level":"warn","output":"stderr","async":true,"bufferSize":64}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Level != "warn" || cfg.Output != "stderr" || !cfg.Async || cfg.BufferSize != 64 {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
	path := writeFile(t, "bad.yaml", "level: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("Load(bad) error = nil")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_OUTPUT", " /var/log/app.log ")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_NO_COLOR", "1")
	t.Setenv("LOG_CATEGORIES", "net.*=warn, db=debug")
	t.Setenv("LOG_FILE_MAX_BACKUPS", "9")
	t.Setenv("LOG_ASYNC", "yes")

	cfg := Default()
	cfg.Categories = map[string]string{"http": "info"}
	FromEnv(&cfg)

	if cfg.Level != "error" || cfg.Format != "json" || cfg.Output != "/var/log/app.log" {
		t.Errorf("FromEnv() = %+v", cfg)
	}
	if !cfg.Caller || !cfg.NoColor {
		t.Errorf("FromEnv() bools = caller:%v noColor:%v", cfg.Caller, cfg.NoColor)
	}
	if cfg.Async {
		t.Error("LOG_ASYNC=yes should be ignored")
	}
	if cfg.File.MaxBackups != 9 {
		t.Errorf("MaxBackups = %d, want 9", cfg.File.MaxBackups)
	}
	want := map[string]string{"http": "info", "net.*": "warn", "db": "debug"}
	if !reflect.DeepEqual(cfg.Categories, want) {
		t.Errorf("Categories = %v, want %v", cfg.Categories, want)
	}
}

func TestFromEnv_IgnoresInvalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("LOG_BUFFER_SIZE", "-4")
	t.Setenv("LOG_FILE_MAX_SIZE_MB", "big")
	t.Setenv("LOG_OUTPUT", "  ")

	cfg := Default()
	cfg.Level = "info"
	FromEnv(&cfg)

	want := Default()
	want.Level = "info"
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("FromEnv() = %+v, want %+v", cfg, want)
	}
}

func TestParseCategories(t *testing.T) {
	got := parseCategories("a=warn,,=debug,b,c=nope, d.* = t ")
	want := map[string]string{"a": "warn", "d.*": "t"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseCategories() = %v, want %v", got, want)
	}
}

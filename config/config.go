package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config describes a logger and its outputs.
type Config struct {
	// Level is the runtime level; empty leaves the gate's own default
	Level string `json:"level"`
	// Categories maps category patterns to level names
	Categories map[string]string `json:"categories"`
	// Format is "text" or "json"
	Format string `json:"format"`
	// Output is "stdout", "stderr" or a file path
	Output string `json:"output"`
	// NoColor disables ANSI colors on terminals
	NoColor bool `json:"noColor"`
	// Caller adds file:line to every message
	Caller bool `json:"caller"`
	// Timestamp format for text output (Go layout)
	TimeFormat string `json:"timeFormat"`
	// UTC converts timestamps to UTC
	UTC bool `json:"utc"`
	// File holds rotation settings used when Output is a path
	File File `json:"file"`
	// Async puts the output behind a bounded queue
	Async bool `json:"async"`
	// BufferSize is the async queue capacity
	BufferSize int `json:"bufferSize"`
}

// File holds rotation settings for file output.
type File struct {
	MaxSizeMB  int  `json:"maxSizeMB"`
	MaxBackups int  `json:"maxBackups"`
	MaxAgeDays int  `json:"maxAgeDays"`
	Compress   bool `json:"compress"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Format: "text",
		Output: "stdout",
		File: File{
			MaxSizeMB:  100,
			MaxBackups: 5,
		},
		BufferSize: 1000,
	}
}

// Load reads configuration from a JSON or YAML file on top of the
// defaults. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

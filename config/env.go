package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/philipp01105/sinklog/core"
)

// EnvPrefix is prepended to every variable read by FromEnv.
const EnvPrefix = "LOG_"

// FromEnv overlays LOG_* environment variables onto cfg.
//
// Recognised variables are: LEVEL, CATEGORIES (pattern=level pairs
// separated by commas), FORMAT (text|json), OUTPUT (stdout|stderr|path),
// NO_COLOR, CALLER, UTC, TIME_FORMAT, ASYNC, BUFFER_SIZE,
// FILE_MAX_SIZE_MB, FILE_MAX_BACKUPS, FILE_MAX_AGE_DAYS and FILE_COMPRESS.
func FromEnv(cfg *Config) {
	if value, ok := lookupEnv("LEVEL"); ok {
		if _, ok := core.ParseLevel(value); ok {
			cfg.Level = strings.TrimSpace(value)
		}
	}
	if value, ok := lookupEnv("CATEGORIES"); ok {
		if cats := parseCategories(value); len(cats) > 0 {
			if cfg.Categories == nil {
				cfg.Categories = make(map[string]string, len(cats))
			}
			for k, v := range cats {
				cfg.Categories[k] = v
			}
		}
	}
	if value, ok := lookupEnv("FORMAT"); ok {
		switch f := strings.ToLower(strings.TrimSpace(value)); f {
		case "text", "json":
			cfg.Format = f
		}
	}
	if value, ok := lookupEnv("OUTPUT"); ok {
		if v := strings.TrimSpace(value); v != "" {
			cfg.Output = v
		}
	}
	if value, ok := lookupEnv("TIME_FORMAT"); ok {
		if v := strings.TrimSpace(value); v != "" {
			cfg.TimeFormat = v
		}
	}
	envBool("NO_COLOR", &cfg.NoColor)
	envBool("CALLER", &cfg.Caller)
	envBool("UTC", &cfg.UTC)
	envBool("ASYNC", &cfg.Async)
	envBool("FILE_COMPRESS", &cfg.File.Compress)
	envInt("BUFFER_SIZE", &cfg.BufferSize)
	envInt("FILE_MAX_SIZE_MB", &cfg.File.MaxSizeMB)
	envInt("FILE_MAX_BACKUPS", &cfg.File.MaxBackups)
	envInt("FILE_MAX_AGE_DAYS", &cfg.File.MaxAgeDays)
}

func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(EnvPrefix + key)
}

func envBool(key string, dst *bool) {
	if value, ok := lookupEnv(key); ok {
		if parsed, ok := parseEnvBool(value); ok {
			*dst = parsed
		}
	}
}

func envInt(key string, dst *int) {
	if value, ok := lookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
}

func parseEnvBool(value string) (bool, bool) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

// parseCategories parses "a.*=warn,b=debug". Malformed pairs and unknown
// levels are skipped.
func parseCategories(value string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		pattern, level, ok := strings.Cut(pair, "=")
		pattern = strings.TrimSpace(pattern)
		level = strings.TrimSpace(level)
		if !ok || pattern == "" {
			continue
		}
		if _, ok := core.ParseLevel(level); !ok {
			continue
		}
		out[pattern] = level
	}
	return out
}

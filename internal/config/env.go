package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/dayrate/internal/utils"
)

// Environment variable names.
const (
	EnvDataFile      = "DAYRATE_DATA_FILE"
	EnvWorkspaces    = "DAYRATE_WORKSPACES"
	EnvMetricsFile   = "DAYRATE_METRICS_FILE"
	EnvLogLevel      = "DAYRATE_LOG_LEVEL"
	EnvLogFormat     = "DAYRATE_LOG_FORMAT"
	EnvLogTimestamps = "DAYRATE_LOG_TIMESTAMPS"
	EnvLogCaller     = "DAYRATE_LOG_CALLER"
)

// loadFromEnv overrides config from DAYRATE_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	if v := os.Getenv(EnvDataFile); v != "" {
		setSource(&cfg.DataFile, v, sources, "data_file", SourceEnv)
	}
	if v := os.Getenv(EnvWorkspaces); v != "" {
		setSource(&cfg.DefaultWorkspaces, utils.SplitAndTrim(v, ","), sources, "default_workspaces", SourceEnv)
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		setSource(&cfg.MetricsFile, v, sources, "metrics_file", SourceEnv)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		setSource(&cfg.LogLevel, v, sources, "log_level", SourceEnv)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		setSource(&cfg.LogFormat, v, sources, "log_format", SourceEnv)
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogTimestamps, err)
		}
		setSource(&cfg.LogTimestamps, b, sources, "log_timestamps", SourceEnv)
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogCaller, err)
		}
		setSource(&cfg.LogCaller, b, sources, "log_caller", SourceEnv)
	}
	return nil
}

// boolFromString parses the usual spellings of a boolean.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/dayrate/internal/logging"
	"github.com/nibzard/dayrate/internal/palette"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultDataFile  = "~/.dayrate/task_data.json"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// DefaultWorkspaces returns the workspaces seeded into an empty data file.
func DefaultWorkspaces() []string {
	return []string{"Развитие", "Bug Bounty", "CTF", "Тренировки"}
}

// Config holds the full configuration for dayrate.
type Config struct {
	// Paths
	DataFile    string `toml:"data_file"`
	MetricsFile string `toml:"metrics_file"`

	// Workspaces created when the data file has none.
	DefaultWorkspaces []string `toml:"default_workspaces"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	Theme palette.Theme `toml:"theme"`

	// Files that were applied, lowest priority first.
	Files []string `toml:"-"`
}

// Validate checks that the merged configuration is usable.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.DataFile) == "" {
		problems = append(problems, "data_file is empty")
	}
	if len(c.DefaultWorkspaces) == 0 {
		problems = append(problems, "default_workspaces is empty")
	}
	if !logging.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}
	if !logging.ValidFormatter(c.LogFormat) {
		problems = append(problems, fmt.Sprintf("unknown log_format %q", c.LogFormat))
	}
	if err := c.Theme.Validate(); err != nil {
		problems = append(problems, "theme: "+err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.DefaultWorkspaces = DefaultWorkspaces()
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Theme = palette.DefaultTheme()
}

// configFields returns the configurable field names in display order.
func configFields() []string {
	return []string{
		"data_file",
		"metrics_file",
		"default_workspaces",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"theme",
	}
}

func setSource[T any](field *T, value T, sources map[string]ConfigSource, name string, source ConfigSource) {
	*field = value
	sources[name] = source
}

package config

import (
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/dayrate/internal/utils"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file
// 3. Project config file
// 4. Environment variables
// 5. CLI flags parsed from args with fs
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg, sources); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	finalizeConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ConfigWithSources{Config: cfg, Sources: sources}, nil
}

// loadConfigFile decodes path and applies only the keys it defines.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}

	if md.IsDefined("data_file") {
		setSource(&cfg.DataFile, file.DataFile, sources, "data_file", source)
	}
	if md.IsDefined("metrics_file") {
		setSource(&cfg.MetricsFile, file.MetricsFile, sources, "metrics_file", source)
	}
	if md.IsDefined("default_workspaces") {
		setSource(&cfg.DefaultWorkspaces, file.DefaultWorkspaces, sources, "default_workspaces", source)
	}
	if md.IsDefined("log_level") {
		setSource(&cfg.LogLevel, file.LogLevel, sources, "log_level", source)
	}
	if md.IsDefined("log_format") {
		setSource(&cfg.LogFormat, file.LogFormat, sources, "log_format", source)
	}
	if md.IsDefined("log_timestamps") {
		setSource(&cfg.LogTimestamps, file.LogTimestamps, sources, "log_timestamps", source)
	}
	if md.IsDefined("log_caller") {
		setSource(&cfg.LogCaller, file.LogCaller, sources, "log_caller", source)
	}
	if md.IsDefined("theme") {
		setSource(&cfg.Theme, cfg.Theme.Merge(file.Theme), sources, "theme", source)
	}

	cfg.Files = append(cfg.Files, path)
	return nil
}

// finalizeConfig expands ~ and environment variables in paths.
func finalizeConfig(cfg *Config) {
	cfg.DataFile = utils.ExpandPath(cfg.DataFile)
	cfg.MetricsFile = utils.ExpandPath(cfg.MetricsFile)
}

// ConfigFile returns the highest-priority config file that was applied.
func (cws *ConfigWithSources) ConfigFile() string {
	files := cws.Config.Files
	if len(files) == 0 {
		return ""
	}
	return files[len(files)-1]
}

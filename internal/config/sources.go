package config

import (
	"fmt"
	"strings"
)

// Field is one configuration value prepared for display.
type Field struct {
	Name   string
	Value  string
	Source ConfigSource
}

// Fields returns every configurable value with its source, in a stable order.
func (cws *ConfigWithSources) Fields() []Field {
	cfg := cws.Config
	values := map[string]string{
		"data_file":          cfg.DataFile,
		"metrics_file":       cfg.MetricsFile,
		"default_workspaces": strings.Join(cfg.DefaultWorkspaces, ", "),
		"log_level":          cfg.LogLevel,
		"log_format":         cfg.LogFormat,
		"log_timestamps":     fmt.Sprint(cfg.LogTimestamps),
		"log_caller":         fmt.Sprint(cfg.LogCaller),
		"theme": fmt.Sprintf("bg=%s card=%s accent=%s text=%s",
			cfg.Theme.Background, cfg.Theme.CardBG, cfg.Theme.Accent, cfg.Theme.Text),
	}

	fields := make([]Field, 0, len(values))
	for _, name := range configFields() {
		source, ok := cws.Sources[name]
		if !ok {
			source = SourceDefault
		}
		fields = append(fields, Field{Name: name, Value: values[name], Source: source})
	}
	return fields
}

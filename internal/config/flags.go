package config

import "flag"

// flagFields maps global flag names to config field names.
var flagFields = map[string]string{
	"data":           "data_file",
	"metrics-file":   "metrics_file",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags binds the global flags to cfg, parses args, and records every
// flag that was set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("dayrate", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Path to the ratings data file")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Prometheus textfile written after every change")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}

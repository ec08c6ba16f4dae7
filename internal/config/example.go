package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# dayrate configuration file
# Place it at ~/.dayrate/dayrate.toml or ./dayrate.toml.
# Values can be overridden by DAYRATE_* environment variables or CLI flags.

# Ratings data file (supports ~ and $VAR expansion)
data_file = "~/.dayrate/task_data.json"

# Prometheus textfile refreshed after every change (empty disables it)
# metrics_file = "/var/lib/node_exporter/textfile/dayrate.prom"

# Workspaces created when the data file has none
default_workspaces = ["Развитие", "Bug Bounty", "CTF", "Тренировки"]

# Logging: debug, info, warn, error
log_level = "warn"
# text, json, or logfmt
log_format = "text"
log_timestamps = false
log_caller = false

# Interface colours (#rrggbb); omitted keys keep their defaults
[theme]
background = "#1a1a2e"
card_bg = "#16213e"
accent = "#0f3460"
accent_hover = "#0d7cff"
text = "#eeeeee"
text_secondary = "#a8a8a8"
danger = "#e94560"
success = "#00ff88"
`
}

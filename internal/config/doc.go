// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.dayrate/dayrate.toml or the OS config directory)
// 3. Project config file (dayrate.toml or .dayrate.toml in the working directory)
// 4. Environment variables (DAYRATE_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.dayrate/dayrate.toml (preferred)
// - Windows: %APPDATA%\dayrate\dayrate.toml
// - macOS: ~/Library/Application Support/dayrate/dayrate.toml
// - Linux/BSD: $XDG_CONFIG_HOME/dayrate/dayrate.toml or ~/.config/dayrate/dayrate.toml
package config

package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the config dirs at empty temp dirs and moves
// into an empty working directory.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{
		EnvDataFile, EnvWorkspaces, EnvMetricsFile,
		EnvLogLevel, EnvLogFormat, EnvLogTimestamps, EnvLogCaller,
	} {
		t.Setenv(key, "")
	}
	t.Chdir(work)
	return home, work
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("dayrate", flag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	return fs
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	home, _ := isolate(t)

	cws, err := LoadWithSources(newFlagSet(), nil)
	require.NoError(t, err)
	cfg := cws.Config

	assert.Equal(t, filepath.Join(home, ".dayrate", "task_data.json"), cfg.DataFile)
	assert.Equal(t, DefaultWorkspaces(), cfg.DefaultWorkspaces)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, "#1a1a2e", cfg.Theme.Background)
	assert.Empty(t, cfg.Files)
	assert.Empty(t, cws.ConfigFile())
	for _, f := range cws.Fields() {
		assert.Equal(t, SourceDefault, f.Source, f.Name)
	}
}

func TestLoadPrecedence(t *testing.T) {
	home, work := isolate(t)
	userFile := filepath.Join(home, ".dayrate", "dayrate.toml")
	writeFile(t, userFile, `
data_file = "~/ratings.json"
log_level = "info"
default_workspaces = ["Work", "Home"]

[theme]
accent = "#123456"
`)
	writeFile(t, filepath.Join(work, "dayrate.toml"), `
log_level = "debug"
metrics_file = "out/dayrate.prom"
`)
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvWorkspaces, "Gym, Study ,")

	cws, err := LoadWithSources(newFlagSet(), []string{"-log-level", "error", "stats"})
	require.NoError(t, err)
	cfg := cws.Config

	assert.Equal(t, filepath.Join(home, "ratings.json"), cfg.DataFile)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "out/dayrate.prom", cfg.MetricsFile)
	assert.Equal(t, []string{"Gym", "Study"}, cfg.DefaultWorkspaces)
	assert.Equal(t, "#123456", cfg.Theme.Accent)
	assert.Equal(t, "#1a1a2e", cfg.Theme.Background, "unset theme keys keep defaults")

	assert.Equal(t, SourceUserFile, cws.Sources["data_file"])
	assert.Equal(t, SourceProjFile, cws.Sources["metrics_file"])
	assert.Equal(t, SourceEnv, cws.Sources["log_format"])
	assert.Equal(t, SourceEnv, cws.Sources["default_workspaces"])
	assert.Equal(t, SourceFlag, cws.Sources["log_level"])
	assert.Equal(t, SourceUserFile, cws.Sources["theme"])
	assert.Equal(t, SourceDefault, cws.Sources["log_caller"])

	assert.Equal(t, []string{userFile, "dayrate.toml"}, cfg.Files)
	assert.Equal(t, "dayrate.toml", cws.ConfigFile())
}

func TestLoadLeavesRemainingArgs(t *testing.T) {
	isolate(t)
	fs := newFlagSet()

	_, err := Load(fs, []string{"-data", "/tmp/x.json", "rate", "abc", "4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rate", "abc", "4"}, fs.Args())
}

func TestLoadUsesOSConfigDir(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "dayrate", "dayrate.toml"), `log_caller = true`)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil || len(cws.Config.Files) == 0 {
		t.Skip("OS config dir is not XDG based on this platform")
	}
	assert.True(t, cws.Config.LogCaller)
	assert.Equal(t, SourceUserFile, cws.Sources["log_caller"])
}

func TestLoadHiddenProjectFile(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ".dayrate.toml"), `log_timestamps = true`)

	cfg, err := Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.True(t, cfg.LogTimestamps)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{name: "bad toml", file: `data_file = `, wantErr: "loading project config file"},
		{name: "unknown key", file: `colour = "red"`, wantErr: "unknown keys"},
		{name: "bad log level", file: `log_level = "loud"`, wantErr: "unknown log_level"},
		{name: "bad theme colour", file: "[theme]\naccent = \"blue\"", wantErr: "theme"},
		{name: "empty workspaces", file: `default_workspaces = []`, wantErr: "default_workspaces is empty"},
		{name: "bad env bool", env: map[string]string{EnvLogCaller: "maybe"}, wantErr: EnvLogCaller},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: "parsing flags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, work := isolate(t)
			if tt.file != "" {
				writeFile(t, filepath.Join(work, "dayrate.toml"), tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(newFlagSet(), tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExampleConfigIsValid(t *testing.T) {
	var cfg Config
	md, err := toml.Decode(ExampleConfig(), &cfg)
	require.NoError(t, err)
	assert.Empty(t, md.Undecoded())

	cfg.DataFile = "x.json"
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultWorkspaces(), cfg.DefaultWorkspaces)
}

func TestBoolFromString(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", " on "} {
		b, err := boolFromString(s)
		require.NoError(t, err)
		assert.True(t, b, s)
	}
	for _, s := range []string{"0", "false", "no", "off"} {
		b, err := boolFromString(s)
		require.NoError(t, err)
		assert.False(t, b, s)
	}
	_, err := boolFromString("perhaps")
	assert.Error(t, err)
}

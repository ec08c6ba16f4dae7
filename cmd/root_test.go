package cmd

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/dayrate/internal/config"
	"github.com/nibzard/dayrate/internal/storage"
	"github.com/nibzard/dayrate/internal/tracker"
)

var testNow = time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)

// setup isolates config lookup, pins the clock, and returns the data file path.
func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{
		config.EnvMetricsFile, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvLogTimestamps, config.EnvLogCaller,
	} {
		t.Setenv(key, "")
	}
	dataFile := filepath.Join(home, "data", "task_data.json")
	t.Setenv(config.EnvDataFile, dataFile)
	t.Setenv(config.EnvWorkspaces, "Work,Health")
	t.Chdir(t.TempDir())

	oldClock := clock
	clock = func() time.Time { return testNow }
	t.Cleanup(func() { clock = oldClock })
	return dataFile
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureStdout(t, func() error {
		return Run(context.Background(), args)
	})
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "dayrate %s", strings.Join(args, " "))
	return out
}

func readData(t *testing.T, path string) tracker.Data {
	t.Helper()
	data, err := storage.NewFileGateway(path, nil).Read()
	require.NoError(t, err)
	return data
}

// onlyTask returns the id of the single task in the data file.
func onlyTask(t *testing.T, path string) string {
	t.Helper()
	data := readData(t, path)
	require.Len(t, data.Tasks, 1)
	for id := range data.Tasks {
		return id
	}
	return ""
}

func TestRun(t *testing.T) {
	setup(t)

	t.Run("shows help with -help flag", func(t *testing.T) {
		out, err := run(t, "-help")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
	})

	t.Run("shows help with -h flag", func(t *testing.T) {
		_, err := run(t, "-h")
		assert.NoError(t, err)
	})

	t.Run("shows help with help command", func(t *testing.T) {
		out, err := run(t, "help")
		require.NoError(t, err)
		assert.Contains(t, out, "completion <shell>")
	})

	t.Run("shows version", func(t *testing.T) {
		for _, args := range [][]string{{"-version"}, {"-v"}, {"version"}} {
			out, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, "dayrate version dev\n", out)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		_, err := run(t, "unknown-command")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
	})

	t.Run("invalid global flag value", func(t *testing.T) {
		_, err := run(t, "-log-level", "loud", "version")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading config")
	})
}

func TestDefaultCommandIsStats(t *testing.T) {
	dataFile := setup(t)

	out := mustRun(t)
	assert.Contains(t, out, "Wednesday, 12 June 2024")
	assert.Contains(t, out, "Work:")
	assert.Contains(t, out, "Health:")

	_, err := os.Stat(dataFile)
	assert.True(t, os.IsNotExist(err), "read-only commands do not create the data file")
}

func TestWorkspaceCommands(t *testing.T) {
	dataFile := setup(t)

	out := mustRun(t, "ws")
	assert.Equal(t, "Work (0 tasks)\nHealth (0 tasks)\n", out)

	out = mustRun(t, "ws", "add", "Side", "Projects")
	assert.Equal(t, "Created workspace \"Side Projects\"\n", out)
	assert.Equal(t, []string{"Work", "Health", "Side Projects"}, readData(t, dataFile).Workspaces)

	_, err := run(t, "ws", "add", "Work")
	assert.ErrorIs(t, err, tracker.ErrDuplicateWorkspace)

	mustRun(t, "task", "add", "-ws", "Side Projects", "Ship", "it")
	out = mustRun(t, "ws", "rm", "Side", "Projects")
	assert.Contains(t, out, "moved 1 task to Uncategorized")

	data := readData(t, dataFile)
	assert.Equal(t, []string{"Work", "Health", tracker.Uncategorized}, data.Workspaces)

	_, err = run(t, "ws", "rm", "Nowhere")
	assert.ErrorIs(t, err, tracker.ErrWorkspaceNotFound)

	_, err = run(t, "ws", "rename")
	assert.Error(t, err)
}

func TestTaskCommands(t *testing.T) {
	dataFile := setup(t)

	out := mustRun(t, "task", "add", "Morning", "run", "-ws", "Health", "-criteria", "5 = 10km")
	assert.Contains(t, out, "\"Morning run\" to Health")

	id := onlyTask(t, dataFile)
	task := readData(t, dataFile).Tasks[id]
	assert.Equal(t, "Morning run", task.Description)
	assert.Equal(t, "Health", task.Workspace)
	assert.Equal(t, "5 = 10km", task.Criteria)

	out = mustRun(t, "task", "ls")
	assert.Contains(t, out, "Work\n  (no tasks)\n")
	assert.Contains(t, out, "Health\n  "+shortID(id)+"  Morning run\n")
	assert.Contains(t, out, "5 = 10km")

	out = mustRun(t, "task", "ls", "-ws", "Work")
	assert.NotContains(t, out, "Morning run")

	mustRun(t, "task", "edit", id[:6], "-desc", "Evening run")
	task = readData(t, dataFile).Tasks[id]
	assert.Equal(t, "Evening run", task.Description)
	assert.Equal(t, "5 = 10km", task.Criteria, "unset flags keep their value")

	mustRun(t, "task", "edit", id, "-criteria", "")
	assert.Empty(t, readData(t, dataFile).Tasks[id].Criteria)

	_, err := run(t, "task", "edit", id)
	assert.Error(t, err)

	_, err = run(t, "task", "add", "   ")
	assert.ErrorIs(t, err, tracker.ErrEmptyDescription)

	_, err = run(t, "task", "add", "-ws", "Nowhere", "x")
	assert.ErrorIs(t, err, tracker.ErrWorkspaceNotFound)

	mustRun(t, "task", "rm", id)
	assert.Empty(t, readData(t, dataFile).Tasks)

	_, err = run(t, "task", "rm", id)
	assert.ErrorIs(t, err, tracker.ErrTaskNotFound)
}

func TestTaskAddDefaultsToFirstWorkspace(t *testing.T) {
	dataFile := setup(t)

	mustRun(t, "task", "add", "Read")
	id := onlyTask(t, dataFile)
	assert.Equal(t, "Work", readData(t, dataFile).Tasks[id].Workspace)
}

func TestRateAndUnrate(t *testing.T) {
	dataFile := setup(t)

	mustRun(t, "task", "add", "Read")
	id := onlyTask(t, dataFile)

	out := mustRun(t, "rate", id[:4], "4")
	assert.Equal(t, "Rated \"Read\" 4 on 2024-06-12 (day average 4.0)\n", out)

	mustRun(t, "rate", "-date", "2024-06-10", id, "2")
	ratings := readData(t, dataFile).Ratings
	assert.Equal(t, 4, ratings["2024-06-12"][id])
	assert.Equal(t, 2, ratings["2024-06-10"][id])

	_, err := run(t, "rate", "-date", "2024-06-13", id, "3")
	assert.ErrorIs(t, err, tracker.ErrFutureDate)

	for _, bad := range []string{"0", "6", "four"} {
		_, err = run(t, "rate", id, bad)
		assert.ErrorIs(t, err, tracker.ErrInvalidRating, bad)
	}

	_, err = run(t, "rate", "-date", "12/06/2024", id, "3")
	assert.ErrorIs(t, err, tracker.ErrInvalidDate)

	_, err = run(t, "rate", "zzz", "3")
	assert.ErrorIs(t, err, tracker.ErrTaskNotFound)

	out = mustRun(t, "stats")
	assert.Contains(t, out, "4.0")
	assert.Contains(t, out, "3.0", "week average of 4 and 2")

	out = mustRun(t, "unrate", "-date", "2024-06-10", id)
	assert.Contains(t, out, "Removed rating")
	_, ok := readData(t, dataFile).Ratings["2024-06-10"]
	assert.False(t, ok, "empty days are dropped")

	out = mustRun(t, "unrate", "-date", "2024-06-10", id)
	assert.Contains(t, out, "has no rating")
}

func TestResolveTaskAmbiguousPrefix(t *testing.T) {
	store := tracker.NewStore(tracker.EmptyData(),
		tracker.WithClock(func() time.Time { return testNow }),
		tracker.WithIDGenerator(sequence("abc1", "abc2")),
	)
	store.EnsureWorkspaces([]string{"Work"})
	_, err := store.AddTask("one", "Work")
	require.NoError(t, err)
	_, err = store.AddTask("two", "Work")
	require.NoError(t, err)

	_, err = resolveTask(store, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	task, err := resolveTask(store, "abc2")
	require.NoError(t, err)
	assert.Equal(t, "two", task.Description)

	_, err = resolveTask(store, " ")
	assert.Error(t, err)
}

func sequence(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i]
		i++
		return id
	}
}

func TestCalendarCommand(t *testing.T) {
	dataFile := setup(t)
	mustRun(t, "task", "add", "Read")
	mustRun(t, "rate", onlyTask(t, dataFile), "5")

	out := mustRun(t, "cal")
	assert.Contains(t, out, "June 2024")
	assert.Contains(t, out, "[12 5.0]")

	out = mustRun(t, "cal", "-month", "2024-02")
	assert.Contains(t, out, "February 2024")
	assert.Contains(t, out, "29")
	assert.NotContains(t, out, "30")

	_, err := run(t, "cal", "-month", "June")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dataFile := setup(t)
	mustRun(t, "task", "add", "Read")
	mustRun(t, "rate", onlyTask(t, dataFile), "4")

	_, err := run(t, "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output path")

	out := filepath.Join(t.TempDir(), "textfile", "dayrate.prom")
	mustRun(t, "export", "-out", out)
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "dayrate_daily_average 4")
	assert.Contains(t, string(raw), `dayrate_workspace_daily_average{workspace="Work"} 4`)
	assert.Contains(t, string(raw), "dayrate_tasks 1")
}

func TestMetricsFileIsRefreshedOnCommit(t *testing.T) {
	dataFile := setup(t)
	metricsFile := filepath.Join(t.TempDir(), "dayrate.prom")
	t.Setenv(config.EnvMetricsFile, metricsFile)

	mustRun(t, "task", "add", "Read")
	mustRun(t, "rate", onlyTask(t, dataFile), "3")

	raw, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "dayrate_daily_average 3")
}

func TestConfigCommand(t *testing.T) {
	dataFile := setup(t)
	require.NoError(t, os.WriteFile("dayrate.toml", []byte("log_format = \"json\"\n"), 0o644))

	out := mustRun(t, "config")
	assert.Contains(t, out, "KEY")
	assert.Regexp(t, `data_file\s+`+regexp.QuoteMeta(dataFile)+`\s+environment`, out)
	assert.Regexp(t, `log_format\s+json\s+project file`, out)
	assert.Regexp(t, `log_level\s+warn\s+default`, out)
	assert.Contains(t, out, "Config file: dayrate.toml")

	out = mustRun(t, "config", "path")
	assert.Equal(t, "dayrate.toml\n", out)

	out = mustRun(t, "config", "example")
	assert.Contains(t, out, "data_file")

	_, err := run(t, "config", "edit")
	assert.Error(t, err)
}

func TestDataFileFlagOverridesEnv(t *testing.T) {
	setup(t)
	other := filepath.Join(t.TempDir(), "other.json")

	mustRun(t, "-data", other, "ws", "add", "Reading")
	assert.Contains(t, readData(t, other).Workspaces, "Reading")
}

func TestTUIRequiresTerminal(t *testing.T) {
	setup(t)
	_, err := run(t, "tui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TTY")
}

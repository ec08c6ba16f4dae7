// Package cmd implements the CLI command structure for dayrate.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/dayrate/internal/config"
	"github.com/nibzard/dayrate/internal/logging"
	"github.com/nibzard/dayrate/internal/session"
	"github.com/nibzard/dayrate/internal/storage"
	"github.com/nibzard/dayrate/internal/tracker"
	"github.com/nibzard/dayrate/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// clock is the time source for every command.
var clock = time.Now

// env carries the loaded configuration into subcommands.
type env struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
}

// Run executes the dayrate CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dayrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(fs, os.Stdout)
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	cfg := cws.Config
	e := &env{
		cfg:     cfg,
		sources: cws,
		logger:  logging.FromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller),
	}

	subcommand := "stats"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "ws", "workspace", "workspaces":
		return e.workspaceCommand(remainingArgs)
	case "task", "tasks":
		return e.taskCommand(remainingArgs)
	case "rate":
		return e.rateCommand(remainingArgs)
	case "unrate":
		return e.unrateCommand(remainingArgs)
	case "stats":
		return e.statsCommand(remainingArgs)
	case "cal", "calendar":
		return e.calendarCommand(remainingArgs)
	case "export":
		return e.exportCommand(remainingArgs)
	case "tui":
		return e.tuiCommand(ctx, remainingArgs)
	case "config":
		return e.configCommand(remainingArgs)
	case "completion":
		return completionCommand(remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// open loads the data file into a session.
func (e *env) open() *session.Session {
	gw := storage.NewFileGateway(e.cfg.DataFile, e.logger)
	return session.Open(gw, session.Options{
		DefaultWorkspaces: e.cfg.DefaultWorkspaces,
		MetricsFile:       e.cfg.MetricsFile,
		Logger:            e.logger,
		StoreOpts:         []tracker.Option{tracker.WithClock(clock)},
	})
}

func (e *env) styles() ui.Styles {
	return ui.NewStyles(e.cfg.Theme)
}

// tuiCommand launches the interactive interface.
func (e *env) tuiCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("tui takes no arguments")
	}
	return ui.RunTUI(ctx, e.open(), e.styles())
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("dayrate version %s\n", Version)
	return nil
}

// newFlagSet returns a subcommand flag set that reports errors instead of
// exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseArgs parses fs from args, allowing flags after positional
// arguments, and returns the positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%s: %w", fs.Name(), err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// resolveDate returns the date flag value or today.
func resolveDate(value string) (time.Time, error) {
	now := clock()
	if value == "" {
		return now, nil
	}
	return tracker.ParseDate(value, now.Location())
}

// resolveTask finds a task by id or unique id prefix.
func resolveTask(store *tracker.Store, ref string) (tracker.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return tracker.Task{}, fmt.Errorf("task id is required")
	}
	if t, ok := store.Task(ref); ok {
		return t, nil
	}
	var matches []tracker.Task
	for _, t := range store.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return tracker.Task{}, fmt.Errorf("%w: %q", tracker.ErrTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, t := range matches {
			ids = append(ids, t.ID)
		}
		sort.Strings(ids)
		return tracker.Task{}, fmt.Errorf("task id %q is ambiguous: %s", ref, strings.Join(ids, ", "))
	}
}

// shortID trims a task id for listings. Any unique prefix is accepted back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "dayrate - rate your daily tasks and watch the calendar fill with colour")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dayrate [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  stats [-date D]                 Day, week, and total averages (default command)")
	fmt.Fprintln(w, "  cal [-month YYYY-MM]            Colour-coded month calendar")
	fmt.Fprintln(w, "  rate [-date D] <task> <1-5>     Rate a task for a day (default today)")
	fmt.Fprintln(w, "  unrate [-date D] <task>         Remove a rating")
	fmt.Fprintln(w, "  task ls [-ws name]              List tasks")
	fmt.Fprintln(w, "  task add [-ws name] [-criteria text] <description>")
	fmt.Fprintln(w, "                                  Add a task (default: first workspace)")
	fmt.Fprintln(w, "  task edit <task> [-desc text] [-criteria text]")
	fmt.Fprintln(w, "                                  Edit a task")
	fmt.Fprintln(w, "  task rm <task>                  Delete a task and its ratings")
	fmt.Fprintln(w, "  ws ls | ws add <name> | ws rm <name>")
	fmt.Fprintln(w, "                                  Manage workspaces")
	fmt.Fprintln(w, "  export [-out path] [-date D]    Write a Prometheus textfile")
	fmt.Fprintln(w, "  tui                             Launch terminal UI")
	fmt.Fprintln(w, "  config [example|path]           Show effective configuration")
	fmt.Fprintln(w, "  completion <shell>              Print a shell completion script")
	fmt.Fprintln(w, "  version                         Show version information")
	fmt.Fprintln(w, "  help                            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tasks may be referenced by any unique id prefix. Dates use YYYY-MM-DD.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

package cmd

import (
	"fmt"
	"time"

	"github.com/nibzard/dayrate/internal/calendar"
	"github.com/nibzard/dayrate/internal/stats"
	"github.com/nibzard/dayrate/internal/tracker"
)

// statsCommand prints the headline averages for a day.
func (e *env) statsCommand(args []string) error {
	fs := newFlagSet("stats")
	dateFlag := fs.String("date", "", "Date (YYYY-MM-DD, default today)")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	date, err := resolveDate(*dateFlag)
	if err != nil {
		return err
	}

	snapshot := e.open().Store.Snapshot()
	styles := e.styles()
	day := tracker.FormatDate(date)

	fmt.Println(styles.Heading.Render(date.Format("Monday, 2 January 2006")))
	fmt.Println(styles.Summary(stats.Summarize(snapshot.Ratings, date)))
	fmt.Println()
	fmt.Println(styles.WorkspaceTiles(snapshot.Workspaces, snapshot.Tasks, snapshot.Ratings, day))
	return nil
}

// calendarCommand prints a colour-coded month.
func (e *env) calendarCommand(args []string) error {
	fs := newFlagSet("cal")
	monthFlag := fs.String("month", "", "Month to show (YYYY-MM, default current)")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	store := e.open().Store
	nav := calendar.NewNavigator(store.Now)
	if *monthFlag != "" {
		m, err := time.ParseInLocation("2006-01", *monthFlag, store.Now().Location())
		if err != nil {
			return fmt.Errorf("invalid month %q: want YYYY-MM", *monthFlag)
		}
		nav.SetMonth(m.Year(), m.Month())
	}

	fmt.Print(e.styles().Month(nav.Label(), nav.Grid(), store.Ratings(), store.Today()))
	return nil
}

// exportCommand writes the Prometheus textfile once.
func (e *env) exportCommand(args []string) error {
	fs := newFlagSet("export")
	out := fs.String("out", e.cfg.MetricsFile, "Textfile path (default metrics_file)")
	dateFlag := fs.String("date", "", "Date the gauges describe (YYYY-MM-DD, default today)")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("no output path: pass -out or set metrics_file")
	}
	date, err := resolveDate(*dateFlag)
	if err != nil {
		return err
	}

	if err := e.open().ExportMetrics(*out, date); err != nil {
		return err
	}
	fmt.Printf("Wrote metrics for %s to %s\n", tracker.FormatDate(date), *out)
	return nil
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/nibzard/dayrate/internal/stats"
	"github.com/nibzard/dayrate/internal/tracker"
	"github.com/nibzard/dayrate/internal/ui"
)

// rateCommand records a 1-5 rating.
func (e *env) rateCommand(args []string) error {
	fs := newFlagSet("rate")
	dateFlag := fs.String("date", "", "Date to rate (YYYY-MM-DD, default today)")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 2 {
		return fmt.Errorf("usage: rate [-date YYYY-MM-DD] <task> <1-5>")
	}
	value, err := strconv.Atoi(positional[1])
	if err != nil {
		return fmt.Errorf("%w, got %q", tracker.ErrInvalidRating, positional[1])
	}
	date, err := resolveDate(*dateFlag)
	if err != nil {
		return err
	}

	sess := e.open()
	task, err := resolveTask(sess.Store, positional[0])
	if err != nil {
		return err
	}
	day := tracker.FormatDate(date)
	if err := sess.Store.SetRating(day, task.ID, value); err != nil {
		return err
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	avg := stats.DailyAverage(sess.Store.Ratings(), day)
	fmt.Printf("Rated %q %d on %s (day average %s)\n", task.Description, value, day, ui.FormatAverage(avg))
	return nil
}

// unrateCommand removes a rating.
func (e *env) unrateCommand(args []string) error {
	fs := newFlagSet("unrate")
	dateFlag := fs.String("date", "", "Date (YYYY-MM-DD, default today)")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("usage: unrate [-date YYYY-MM-DD] <task>")
	}
	date, err := resolveDate(*dateFlag)
	if err != nil {
		return err
	}

	sess := e.open()
	task, err := resolveTask(sess.Store, positional[0])
	if err != nil {
		return err
	}
	day := tracker.FormatDate(date)
	removed, err := sess.Store.ClearRating(day, task.ID)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("%q has no rating on %s\n", task.Description, day)
		return nil
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	fmt.Printf("Removed rating of %q on %s\n", task.Description, day)
	return nil
}

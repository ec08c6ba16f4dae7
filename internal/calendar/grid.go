// Package calendar lays out month grids under a Sunday-first week.
package calendar

import (
	"time"

	"github.com/nibzard/dayrate/internal/tracker"
)

// Cell is one day of a month grid.
type Cell struct {
	Date   string // YYYY-MM-DD
	Day    int
	Column int // 0 = Sunday
	Row    int
	Today  bool
}

var weekdays = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Weekdays returns the column header labels, Sunday first.
func Weekdays() []string {
	out := make([]string, len(weekdays))
	copy(out, weekdays)
	return out
}

// DaysIn returns the number of days in month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartColumn returns the grid column of the first day of month.
func StartColumn(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Monday-based weekday shifted one column right.
	mondayFirst := (int(first.Weekday()) + 6) % 7
	return (mondayFirst + 1) % 7
}

// Rows returns how many grid rows month occupies.
func Rows(year int, month time.Month) int {
	return (StartColumn(year, month) + DaysIn(year, month) + 6) / 7
}

// MonthGrid returns one cell per day of month. Today is matched by date
// against today's year, month, and day.
func MonthGrid(year int, month time.Month, today time.Time) []Cell {
	start := StartColumn(year, month)
	n := DaysIn(year, month)
	todayKey := tracker.FormatDate(today)

	cells := make([]Cell, 0, n)
	for day := 1; day <= n; day++ {
		pos := start + day - 1
		date := tracker.FormatDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		cells = append(cells, Cell{
			Date:   date,
			Day:    day,
			Column: pos % 7,
			Row:    pos / 7,
			Today:  date == todayKey,
		})
	}
	return cells
}

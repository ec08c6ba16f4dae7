package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysIn(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestMonthGridLeapYears(t *testing.T) {
	today := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	assert.Len(t, MonthGrid(2024, time.February, today), 29)
	assert.Len(t, MonthGrid(2023, time.February, today), 28)
}

func TestMonthGridLayout(t *testing.T) {
	// June 2024 starts on a Saturday.
	today := time.Date(2024, 6, 12, 23, 59, 0, 0, time.UTC)
	cells := MonthGrid(2024, time.June, today)

	require.Len(t, cells, 30)
	assert.Equal(t, Cell{Date: "2024-06-01", Day: 1, Column: 6, Row: 0}, cells[0])
	assert.Equal(t, Cell{Date: "2024-06-02", Day: 2, Column: 0, Row: 1}, cells[1])
	assert.Equal(t, Cell{Date: "2024-06-30", Day: 30, Column: 0, Row: 5}, cells[29])
	assert.Equal(t, 6, Rows(2024, time.June))

	var todays []string
	for _, c := range cells {
		if c.Today {
			todays = append(todays, c.Date)
		}
	}
	assert.Equal(t, []string{"2024-06-12"}, todays)
}

func TestStartColumn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.September, 0}, // Sunday
		{2024, time.January, 1},   // Monday
		{2024, time.October, 2},   // Tuesday
		{2024, time.May, 3},       // Wednesday
		{2024, time.February, 4},  // Thursday
		{2024, time.March, 5},     // Friday
		{2024, time.June, 6},      // Saturday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StartColumn(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestMonthGridNoTodayOutsideMonth(t *testing.T) {
	today := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range MonthGrid(2024, time.June, today) {
		assert.False(t, c.Today, c.Date)
	}
}

func TestWeekdays(t *testing.T) {
	w := Weekdays()
	assert.Equal(t, []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}, w)
	w[0] = "xx"
	assert.Equal(t, "Su", Weekdays()[0])
}

func TestNavigator(t *testing.T) {
	now := time.Date(2024, 12, 15, 14, 45, 30, 0, time.UTC)
	nav := NewNavigator(func() time.Time { return now })

	assert.Equal(t, "December 2024", nav.Label())

	nav.NextMonth()
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nav.Anchor())
	assert.Equal(t, "January 2025", nav.Label())
	for _, c := range nav.Grid() {
		assert.False(t, c.Today)
	}

	nav.PreviousMonth()
	nav.PreviousMonth()
	assert.Equal(t, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), nav.Anchor())
	assert.Len(t, nav.Grid(), 30)

	nav.GoToday()
	assert.Equal(t, now, nav.Anchor(), "today keeps the full time")
	grid := nav.Grid()
	require.Len(t, grid, 31)
	assert.True(t, grid[14].Today)
}

func TestNavigatorPreviousFromJanuary(t *testing.T) {
	nav := NewNavigator(func() time.Time { return time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC) })
	nav.PreviousMonth()
	assert.Equal(t, "December 2023", nav.Label())
	assert.Equal(t, 1, nav.Anchor().Day())

	nav.SetMonth(2024, time.February)
	assert.Len(t, nav.Grid(), 29)
}

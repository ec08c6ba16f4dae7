package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/dayrate/internal/calendar"
	"github.com/nibzard/dayrate/internal/palette"
	"github.com/nibzard/dayrate/internal/stats"
	"github.com/nibzard/dayrate/internal/tracker"
)

// cellWidth is the rendered width of one calendar day.
const cellWidth = 8

// Styles renders dayrate views with one theme.
type Styles struct {
	theme palette.Theme

	Title     lipgloss.Style
	Heading   lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Danger    lipgloss.Style
	Success   lipgloss.Style
	Selected  lipgloss.Style
	Card      lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
}

// NewStyles builds the styles for theme.
func NewStyles(theme palette.Theme) Styles {
	text := lipgloss.Color(theme.Text)
	return Styles{
		theme:   theme,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(text),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.AccentHover)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextSecondary)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.AccentHover)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Danger)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success)),
		Selected: lipgloss.NewStyle().Bold(true).
			Foreground(text).
			Background(lipgloss.Color(theme.Accent)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Accent)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(theme.AccentHover)),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextSecondary)),
	}
}

// Theme returns the theme the styles were built from.
func (s Styles) Theme() palette.Theme {
	return s.theme
}

// FormatAverage renders an average with one decimal, or "-" when unrated.
func FormatAverage(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}

// Month renders a month grid. Each day shows its number and average and is
// coloured by that average. The selected date is bracketed and today is
// marked with '*'.
func (s Styles) Month(label string, cells []calendar.Cell, ratings tracker.Ratings, selected string) string {
	var b strings.Builder
	width := cellWidth * 7
	b.WriteString(s.Title.Width(width).Align(lipgloss.Center).Render(label))
	b.WriteString("\n")

	for _, wd := range calendar.Weekdays() {
		b.WriteString(s.Muted.Render(fmt.Sprintf(" %-*s", cellWidth-1, wd)))
	}
	b.WriteString("\n")

	row := 0
	col := 0
	for _, c := range cells {
		for row < c.Row {
			b.WriteString("\n")
			row++
			col = 0
		}
		for col < c.Column {
			b.WriteString(strings.Repeat(" ", cellWidth))
			col++
		}
		b.WriteString(s.dayCell(c, stats.DailyAverage(ratings, c.Date), c.Date == selected))
		col++
	}
	b.WriteString("\n")
	return b.String()
}

func (s Styles) dayCell(c calendar.Cell, avg float64, selected bool) string {
	value := "   "
	if avg > 0 {
		value = fmt.Sprintf("%.1f", avg)
	}
	left, right := " ", " "
	if c.Today {
		left = "*"
	}
	if selected {
		left, right = "[", "]"
	}
	content := fmt.Sprintf("%s%2d %s%s", left, c.Day, value, right)

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.TextColor(avg).Hex())).
		Background(lipgloss.Color(palette.RatingColor(avg).Hex()))
	if selected || c.Today {
		style = style.Bold(true)
	}
	return style.Render(content)
}

// Summary renders the day, week, and total averages with the trend sparkline.
func (s Styles) Summary(sum stats.Summary) string {
	metric := func(name string, v float64) string {
		value := lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(palette.RatingColor(v).Hex())).
			Render(FormatAverage(v))
		return s.Muted.Render(name+" ") + value
	}
	line := strings.Join([]string{
		metric("Day", sum.Day),
		metric("Week", sum.Week),
		metric("Total", sum.Total),
	}, "   ")
	trend := s.Muted.Render("Trend ") + s.Accent.Render("["+stats.Sparkline(sum.Trend)+"]")
	return line + "\n" + trend
}

// WorkspaceTiles renders each workspace's average for date.
func (s Styles) WorkspaceTiles(workspaces []string, tasks map[string]tracker.Task, ratings tracker.Ratings, date string) string {
	var lines []string
	for _, ws := range workspaces {
		avg := stats.WorkspaceAverage(ratings, tasks, date, ws)
		value := lipgloss.NewStyle().
			Foreground(lipgloss.Color(palette.RatingColor(avg).Hex())).
			Render(FormatAverage(avg))
		lines = append(lines, fmt.Sprintf("%s %s", s.Muted.Render(ws+":"), value))
	}
	return strings.Join(lines, "\n")
}

// Package ui renders the calendar and rating views and runs the
// interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/dayrate/internal/calendar"
	"github.com/nibzard/dayrate/internal/session"
	"github.com/nibzard/dayrate/internal/stats"
	"github.com/nibzard/dayrate/internal/tracker"
)

// RunTUI starts the interactive interface over sess.
func RunTUI(ctx context.Context, sess *session.Session, styles Styles) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(NewModel(sess, styles), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type focus int

const (
	focusCalendar focus = iota
	focusTasks
)

// Model is the bubbletea model of the interactive interface.
type Model struct {
	sess   *session.Session
	store  *tracker.Store
	styles Styles
	nav    *calendar.Navigator

	selected  time.Time
	workspace int
	cursor    int
	focus     focus
	showHelp  bool

	status    string
	statusErr bool
}

// NewModel builds a model showing today's month.
func NewModel(sess *session.Session, styles Styles) *Model {
	store := sess.Store
	return &Model{
		sess:     sess,
		store:    store,
		styles:   styles,
		nav:      calendar.NewNavigator(store.Now),
		selected: store.Now(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "enter":
		if m.focus == focusCalendar {
			m.focus = focusTasks
		} else {
			m.focus = focusCalendar
		}
	case "esc":
		m.focus = focusCalendar
		m.showHelp = false
	case "tab":
		m.cycleWorkspace(1)
	case "shift+tab":
		m.cycleWorkspace(-1)
	case "[":
		m.nav.PreviousMonth()
		m.selected = m.nav.Anchor()
	case "]":
		m.nav.NextMonth()
		m.selected = m.nav.Anchor()
	case "t":
		m.nav.GoToday()
		m.selected = m.nav.Anchor()
	case "1", "2", "3", "4", "5":
		m.rate(int(k[0] - '0'))
	case "0", "x":
		m.clear()
	case "left", "h":
		m.moveDay(-1)
	case "right", "l":
		m.moveDay(1)
	case "up", "k":
		if m.focus == focusTasks {
			m.moveCursor(-1)
		} else {
			m.moveDay(-7)
		}
	case "down", "j":
		if m.focus == focusTasks {
			m.moveCursor(1)
		} else {
			m.moveDay(7)
		}
	}
	return m, nil
}

func (m *Model) moveDay(days int) {
	m.selected = m.selected.AddDate(0, 0, days)
	y, mo, _ := m.selected.Date()
	ay, amo, _ := m.nav.Anchor().Date()
	if y != ay || mo != amo {
		m.nav.SetMonth(y, mo)
	}
}

func (m *Model) moveCursor(delta int) {
	n := len(m.tasks())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

func (m *Model) cycleWorkspace(delta int) {
	n := len(m.store.Workspaces())
	if n == 0 {
		return
	}
	m.workspace = (m.workspace + delta + n) % n
	m.cursor = 0
}

// currentWorkspace returns the selected workspace name, clamped to the list.
func (m *Model) currentWorkspace() string {
	ws := m.store.Workspaces()
	if len(ws) == 0 {
		return ""
	}
	if m.workspace >= len(ws) {
		m.workspace = len(ws) - 1
	}
	return ws[m.workspace]
}

func (m *Model) tasks() []tracker.Task {
	return m.store.TasksInWorkspace(m.currentWorkspace())
}

func (m *Model) selectedTask() (tracker.Task, bool) {
	tasks := m.tasks()
	if len(tasks) == 0 {
		return tracker.Task{}, false
	}
	if m.cursor >= len(tasks) {
		m.cursor = len(tasks) - 1
	}
	return tasks[m.cursor], true
}

func (m *Model) rate(value int) {
	task, ok := m.selectedTask()
	if !ok {
		m.setError(errors.New("no task to rate in this workspace"))
		return
	}
	date := tracker.FormatDate(m.selected)
	if err := m.store.SetRating(date, task.ID, value); err != nil {
		m.setError(err)
		return
	}
	if err := m.sess.Commit(); err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("Rated %q %d on %s", task.Description, value, date))
}

func (m *Model) clear() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	date := tracker.FormatDate(m.selected)
	removed, err := m.store.ClearRating(date, task.ID)
	if err != nil {
		m.setError(err)
		return
	}
	if !removed {
		m.setStatus(fmt.Sprintf("%q has no rating on %s", task.Description, date))
		return
	}
	if err := m.sess.Commit(); err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("Cleared %q on %s", task.Description, date))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	switch {
	case errors.Is(err, tracker.ErrPersistence):
		m.status = "Could not save: " + err.Error()
	case errors.Is(err, tracker.ErrFutureDate):
		m.status = "Cannot rate a future date"
	default:
		m.status = err.Error()
	}
	m.statusErr = true
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b, m.styles)

	if m.showHelp {
		writeHelp(&b, m.styles)
		writeFooter(&b, m.styles)
		return b.String()
	}

	ratings := m.store.Ratings()
	date := tracker.FormatDate(m.selected)

	month := m.styles.Month(m.nav.Label(), m.nav.Grid(), ratings, date)
	side := m.sidePanel(ratings, date)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Card.Render(month), " ", side))
	b.WriteString("\n")

	writeStatusLine(&b, m.styles, m.status, m.statusErr)
	writeFooter(&b, m.styles)
	return b.String()
}

func (m *Model) sidePanel(ratings tracker.Ratings, date string) string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render(m.selected.Format("Monday, 2 January 2006")))
	b.WriteString("\n")
	b.WriteString(m.styles.Summary(stats.Summarize(ratings, m.selected)))
	b.WriteString("\n\n")

	current := m.currentWorkspace()
	var tabs []string
	for _, ws := range m.store.Workspaces() {
		if ws == current {
			tabs = append(tabs, m.styles.ActiveTab.Render(ws))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(ws))
		}
	}
	b.WriteString(strings.Join(tabs, m.styles.Muted.Render(" | ")))
	b.WriteString("\n\n")

	tasks := m.tasks()
	if len(tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("  No tasks. Add one with: dayrate task add <description>"))
		b.WriteString("\n")
	}
	for i, t := range tasks {
		rating := "-"
		if v, ok := ratings[date][t.ID]; ok {
			rating = fmt.Sprintf("%d", v)
		}
		line := fmt.Sprintf("%s [%s] %s", cursorMark(i == m.cursor && m.focus == focusTasks), rating, t.Description)
		if i == m.cursor {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if t.Criteria != "" && i == m.cursor {
			b.WriteString(m.styles.Muted.Render("      " + t.Criteria))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.WorkspaceTiles(m.store.Workspaces(), m.store.Snapshot().Tasks, ratings, date))
	return m.styles.Card.Render(b.String())
}

func cursorMark(active bool) string {
	if active {
		return ">"
	}
	return " "
}

func writeTitle(b *strings.Builder, styles Styles) {
	b.WriteString(styles.Title.Render("dayrate"))
	b.WriteString("\n\n")
}

func writeStatusLine(b *strings.Builder, styles Styles, status string, isErr bool) {
	if status == "" {
		b.WriteString("\n")
		return
	}
	if isErr {
		b.WriteString(styles.Danger.Render(status))
	} else {
		b.WriteString(styles.Success.Render(status))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder, styles Styles) {
	b.WriteString(styles.Heading.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString("  arrows, hjkl  Move the selected day\n")
	b.WriteString("  enter         Toggle task mode (up/down pick a task)\n")
	b.WriteString("  [ ]           Previous / next month\n")
	b.WriteString("  t             Jump to today\n")
	b.WriteString("  tab           Next workspace (shift+tab previous)\n")
	b.WriteString("  1-5           Rate the selected task on the selected day\n")
	b.WriteString("  0, x          Clear the rating\n")
	b.WriteString("  ?             Toggle this help screen\n")
	b.WriteString("  q, ctrl+c     Quit\n\n")
}

func writeFooter(b *strings.Builder, styles Styles) {
	b.WriteString(styles.Muted.Render("Press ? for help | q to quit"))
	b.WriteString("\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

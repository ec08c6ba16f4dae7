package tracker

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the mutable task, workspace, and rating state.
type Store struct {
	tasks      map[string]Task
	ratings    Ratings
	workspaces []string

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to decide which dates are in the future.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides task id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore builds a store from loaded data. Out-of-range ratings and
// duplicate or blank workspace names are dropped.
func NewStore(data Data, opts ...Option) *Store {
	s := &Store{
		tasks:      make(map[string]Task, len(data.Tasks)),
		ratings:    make(Ratings, len(data.Ratings)),
		workspaces: make([]string, 0, len(data.Workspaces)),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	for id, t := range data.Tasks {
		t.ID = id
		s.tasks[id] = t
	}
	for date, day := range data.Ratings {
		for id, v := range day {
			if !ValidRating(v) {
				continue
			}
			if s.ratings[date] == nil {
				s.ratings[date] = make(map[string]int)
			}
			s.ratings[date][id] = v
		}
	}
	for _, name := range data.Workspaces {
		if strings.TrimSpace(name) == "" || s.HasWorkspace(name) {
			continue
		}
		s.workspaces = append(s.workspaces, name)
	}
	return s
}

// Today returns the store clock's current date as YYYY-MM-DD.
func (s *Store) Today() string {
	return FormatDate(s.now())
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// EnsureWorkspaces seeds defaults when no workspace exists yet.
// It reports whether the store changed.
func (s *Store) EnsureWorkspaces(defaults []string) bool {
	if len(s.workspaces) > 0 {
		return false
	}
	for _, name := range defaults {
		name = strings.TrimSpace(name)
		if name == "" || s.HasWorkspace(name) {
			continue
		}
		s.workspaces = append(s.workspaces, name)
	}
	return len(s.workspaces) > 0
}

// Workspaces returns the workspace names in order.
func (s *Store) Workspaces() []string {
	out := make([]string, len(s.workspaces))
	copy(out, s.workspaces)
	return out
}

// HasWorkspace reports whether name is in the workspace list (exact match).
func (s *Store) HasWorkspace(name string) bool {
	return s.workspaceIndex(name) >= 0
}

func (s *Store) workspaceIndex(name string) int {
	for i, ws := range s.workspaces {
		if ws == name {
			return i
		}
	}
	return -1
}

// CreateWorkspace appends a new workspace.
func (s *Store) CreateWorkspace(name string) error {
	const op = "create workspace"
	if strings.TrimSpace(name) == "" {
		return invalid(op, ErrEmptyWorkspaceName)
	}
	if s.HasWorkspace(name) {
		return invalid(op, fmt.Errorf("%w: %q", ErrDuplicateWorkspace, name))
	}
	s.workspaces = append(s.workspaces, name)
	return nil
}

// DeleteWorkspace removes a workspace and moves its tasks to Uncategorized.
// It returns the number of tasks that were moved.
func (s *Store) DeleteWorkspace(name string) (int, error) {
	const op = "delete workspace"
	idx := s.workspaceIndex(name)
	if idx < 0 {
		return 0, invalid(op, fmt.Errorf("%w: %q", ErrWorkspaceNotFound, name))
	}
	if len(s.workspaces) <= 1 {
		return 0, invalid(op, ErrLastWorkspace)
	}

	s.workspaces = append(s.workspaces[:idx], s.workspaces[idx+1:]...)

	moved := 0
	if name == Uncategorized {
		// Tasks keep the literal sentinel name.
		return moved, nil
	}
	for id, t := range s.tasks {
		if t.Workspace != name {
			continue
		}
		t.Workspace = Uncategorized
		s.tasks[id] = t
		moved++
	}
	if moved > 0 && !s.HasWorkspace(Uncategorized) {
		s.workspaces = append(s.workspaces, Uncategorized)
	}
	return moved, nil
}

// AddTask creates a task in workspace and returns it.
func (s *Store) AddTask(description, workspace string) (Task, error) {
	const op = "add task"
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, invalid(op, ErrEmptyDescription)
	}
	if strings.TrimSpace(workspace) == "" {
		return Task{}, invalid(op, ErrNoWorkspaceSelected)
	}

	id := s.newID()
	for _, exists := s.tasks[id]; exists; _, exists = s.tasks[id] {
		id = s.newID()
	}
	t := Task{
		ID:          id,
		Description: description,
		Workspace:   workspace,
	}
	s.tasks[id] = t
	return t, nil
}

// EditTask replaces a task's description and criteria.
func (s *Store) EditTask(id, description, criteria string) error {
	const op = "edit task"
	t, ok := s.tasks[id]
	if !ok {
		return invalid(op, fmt.Errorf("%w: %q", ErrTaskNotFound, id))
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return invalid(op, ErrEmptyDescription)
	}
	t.Description = description
	t.Criteria = strings.TrimSpace(criteria)
	s.tasks[id] = t
	return nil
}

// DeleteTask removes a task and every rating recorded for it.
func (s *Store) DeleteTask(id string) error {
	if _, ok := s.tasks[id]; !ok {
		return invalid("delete task", fmt.Errorf("%w: %q", ErrTaskNotFound, id))
	}
	delete(s.tasks, id)
	for date, day := range s.ratings {
		delete(day, id)
		if len(day) == 0 {
			delete(s.ratings, date)
		}
	}
	return nil
}

// Task returns a task by id.
func (s *Store) Task(id string) (Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// Tasks returns every task ordered by description, then id.
func (s *Store) Tasks() []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sortTasks(out)
	return out
}

// TasksInWorkspace returns the tasks of one workspace ordered like Tasks.
func (s *Store) TasksInWorkspace(workspace string) []Task {
	var out []Task
	for _, t := range s.tasks {
		if t.Workspace == workspace {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out
}

func sortTasks(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		li, lj := strings.ToLower(tasks[i].Description), strings.ToLower(tasks[j].Description)
		if li != lj {
			return li < lj
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// SetRating records value for a task on date, replacing any earlier rating.
func (s *Store) SetRating(date, id string, value int) error {
	const op = "set rating"
	day, err := s.checkDate(date)
	if err != nil {
		return invalid(op, err)
	}
	if !ValidRating(value) {
		return invalid(op, fmt.Errorf("%w, got %d", ErrInvalidRating, value))
	}
	if _, ok := s.tasks[id]; !ok {
		return invalid(op, fmt.Errorf("%w: %q", ErrTaskNotFound, id))
	}
	if s.ratings[day] == nil {
		s.ratings[day] = make(map[string]int)
	}
	s.ratings[day][id] = value
	return nil
}

// ClearRating removes the rating of a task on date. It reports whether a
// rating existed. Future dates hold no ratings, so clearing one is a no-op.
func (s *Store) ClearRating(date, id string) (bool, error) {
	day, err := s.checkDate(date)
	if errors.Is(err, ErrFutureDate) {
		return false, nil
	}
	if err != nil {
		return false, invalid("clear rating", err)
	}
	ratings, ok := s.ratings[day]
	if !ok {
		return false, nil
	}
	if _, ok := ratings[id]; !ok {
		return false, nil
	}
	delete(ratings, id)
	if len(ratings) == 0 {
		delete(s.ratings, day)
	}
	return true, nil
}

// checkDate validates date and returns its canonical form.
func (s *Store) checkDate(date string) (string, error) {
	now := s.now()
	t, err := ParseDate(date, now.Location())
	if err != nil {
		return "", err
	}
	day := FormatDate(t)
	if day > FormatDate(now) {
		return "", fmt.Errorf("%w: %s", ErrFutureDate, day)
	}
	return day, nil
}

// Rating returns the rating of a task on date.
func (s *Store) Rating(date, id string) (int, bool) {
	v, ok := s.ratings[date][id]
	return v, ok
}

// Ratings returns a copy of every recorded rating.
func (s *Store) Ratings() Ratings {
	return s.ratings.Clone()
}

// Snapshot returns a deep copy of the store contents for persisting.
func (s *Store) Snapshot() Data {
	return Data{
		Tasks:      s.taskMap(),
		Ratings:    s.ratings.Clone(),
		Workspaces: s.Workspaces(),
	}
}

func (s *Store) taskMap() map[string]Task {
	out := make(map[string]Task, len(s.tasks))
	for id, t := range s.tasks {
		out[id] = t
	}
	return out
}

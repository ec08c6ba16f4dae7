package tracker

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for rating keys.
const DateLayout = "2006-01-02"

// Uncategorized receives the tasks of a deleted workspace.
const Uncategorized = "Uncategorized"

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrDuplicateWorkspace  = errors.New("workspace already exists")
	ErrLastWorkspace       = errors.New("cannot delete the last workspace")
	ErrWorkspaceNotFound   = errors.New("workspace not found")
	ErrEmptyWorkspaceName  = errors.New("workspace name is empty")
	ErrEmptyDescription    = errors.New("task description is empty")
	ErrNoWorkspaceSelected = errors.New("no workspace selected")
	ErrTaskNotFound        = errors.New("task not found")
	ErrFutureDate          = errors.New("cannot rate a future date")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrPersistence         = errors.New("persistence failure")
)

// ValidationError reports which operation rejected its input.
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(op string, err error) error {
	return &ValidationError{Op: op, Err: err}
}

// Task is a reusable unit of work that can be rated once per day.
type Task struct {
	ID          string
	Description string
	Workspace   string
	Criteria    string
}

// Ratings maps a date to the ratings recorded that day, keyed by task id.
type Ratings map[string]map[string]int

// Clone returns a deep copy.
func (r Ratings) Clone() Ratings {
	out := make(Ratings, len(r))
	for date, day := range r {
		copied := make(map[string]int, len(day))
		for id, v := range day {
			copied[id] = v
		}
		out[date] = copied
	}
	return out
}

// Data is the full persisted state.
type Data struct {
	Tasks      map[string]Task
	Ratings    Ratings
	Workspaces []string
}

// EmptyData returns a Data with non-nil, empty collections.
func EmptyData() Data {
	return Data{
		Tasks:      map[string]Task{},
		Ratings:    Ratings{},
		Workspaces: []string{},
	}
}

// Clone returns a deep copy.
func (d Data) Clone() Data {
	out := EmptyData()
	for id, t := range d.Tasks {
		out.Tasks[id] = t
	}
	if d.Ratings != nil {
		out.Ratings = d.Ratings.Clone()
	}
	out.Workspaces = append(out.Workspaces, d.Workspaces...)
	return out
}

// ValidRating reports whether v may be stored.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Package storage loads and saves the tracker document as JSON.
package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/dayrate/internal/logging"
	"github.com/nibzard/dayrate/internal/tracker"
	"github.com/nibzard/dayrate/internal/utils"
)

// Gateway persists the tracker state. Load never fails: unreadable data
// yields an empty structure.
type Gateway interface {
	Load() tracker.Data
	Save(tracker.Data) error
}

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/nibzard/dayrate/schema/task_data.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// document is the on-disk layout.
type document struct {
	Tasks      map[string]taskRecord     `json:"global_tasks"`
	Ratings    map[string]map[string]int `json:"daily_ratings"`
	Workspaces []string                  `json:"workspaces"`
}

type taskRecord struct {
	Description string `json:"description"`
	Workspace   string `json:"workspace"`
	Criteria    string `json:"description_criteria"`
}

// SchemaError reports one schema violation in the data file.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// FileGateway stores the document in a single JSON file.
type FileGateway struct {
	path   string
	logger *log.Logger
}

// NewFileGateway returns a gateway for path. A nil logger discards output.
func NewFileGateway(path string, logger *log.Logger) *FileGateway {
	return &FileGateway{path: path, logger: logging.OrDiscard(logger)}
}

// Path returns the data file path.
func (g *FileGateway) Path() string {
	return g.path
}

// Load reads the data file. A missing, malformed, or invalid file yields
// empty data and a logged warning.
func (g *FileGateway) Load() tracker.Data {
	data, err := g.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.logger.Info("no data file yet, starting empty", "path", g.path)
		} else {
			g.logger.Warn("data file unreadable, starting empty", "path", g.path, "err", err)
		}
		return tracker.EmptyData()
	}
	g.logger.Debug("loaded data", "path", g.path, "tasks", len(data.Tasks), "days", len(data.Ratings))
	return data
}

// Read reads and validates the data file, returning any failure.
func (g *FileGateway) Read() (tracker.Data, error) {
	raw, err := os.ReadFile(g.path)
	if err != nil {
		return tracker.Data{}, fmt.Errorf("read data file: %w", err)
	}
	return Decode(raw)
}

// Save writes data atomically. Failures wrap tracker.ErrPersistence.
func (g *FileGateway) Save(data tracker.Data) error {
	raw, err := Encode(data)
	if err != nil {
		return fmt.Errorf("%w: %v", tracker.ErrPersistence, err)
	}
	if err := utils.WriteFileAtomic(g.path, raw, 0o644); err != nil {
		g.logger.Error("save failed", "path", g.path, "err", err)
		return fmt.Errorf("%w: write %s: %v", tracker.ErrPersistence, g.path, err)
	}
	g.logger.Debug("saved data", "path", g.path, "tasks", len(data.Tasks), "days", len(data.Ratings))
	return nil
}

// Decode parses and validates a document.
func Decode(raw []byte) (tracker.Data, error) {
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return tracker.Data{}, fmt.Errorf("parse data file: %w", err)
	}
	if err := Validate(instance); err != nil {
		return tracker.Data{}, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return tracker.Data{}, fmt.Errorf("parse data file: %w", err)
	}

	data := tracker.EmptyData()
	for id, rec := range doc.Tasks {
		data.Tasks[id] = tracker.Task{
			ID:          id,
			Description: rec.Description,
			Workspace:   rec.Workspace,
			Criteria:    rec.Criteria,
		}
	}
	for date, day := range doc.Ratings {
		if len(day) == 0 {
			continue
		}
		copied := make(map[string]int, len(day))
		for id, v := range day {
			copied[id] = v
		}
		data.Ratings[date] = copied
	}
	data.Workspaces = append(data.Workspaces, doc.Workspaces...)
	return data, nil
}

// Encode renders data as an indented document with a trailing newline.
// Non-ASCII text is written as-is. Out-of-range ratings and days left
// without ratings are dropped.
func Encode(data tracker.Data) ([]byte, error) {
	doc := document{
		Tasks:      make(map[string]taskRecord, len(data.Tasks)),
		Ratings:    make(map[string]map[string]int, len(data.Ratings)),
		Workspaces: data.Workspaces,
	}
	if doc.Workspaces == nil {
		doc.Workspaces = []string{}
	}
	for id, t := range data.Tasks {
		doc.Tasks[id] = taskRecord{
			Description: t.Description,
			Workspace:   t.Workspace,
			Criteria:    t.Criteria,
		}
	}
	for date, day := range data.Ratings {
		kept := make(map[string]int, len(day))
		for id, v := range day {
			if tracker.ValidRating(v) {
				kept[id] = v
			}
		}
		if len(kept) > 0 {
			doc.Ratings[date] = kept
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshal data file: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks a decoded JSON value against the document schema.
func Validate(instance any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	err = schema.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return fmt.Errorf("data file does not match schema: %w", errors.Join(errs...))
}

func collectSchemaErrors(errs *[]error, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &SchemaError{
			Path: utils.JSONPointerToPath(ve.InstanceLocation),
			Err:  errors.New(strings.TrimSpace(ve.Message)),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"progress-board/internal/model"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Export is the portable snapshot written by `board export`.
type Export struct {
	ExportedAt time.Time         `json:"exported_at"`
	Namespace  string            `json:"namespace,omitempty"`
	Statuses   model.StatusStore `json:"statuses"`
}

const exportSchemaURL = "mem://board/export.schema.json"

const exportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["exported_at", "statuses"],
  "properties": {
    "exported_at": {"type": "string", "format": "date-time"},
    "namespace": {"type": "string"},
    "statuses": {
      "type": "object",
      "additionalProperties": {"enum": ["todo", "doing", "done"]}
    }
  }
}`

var (
	exportSchemaOnce     sync.Once
	exportSchemaCompiled *jsonschema.Schema
	exportSchemaErr      error
)

func compiledExportSchema() (*jsonschema.Schema, error) {
	exportSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat = true
		if err := c.AddResource(exportSchemaURL, strings.NewReader(exportSchema)); err != nil {
			exportSchemaErr = err
			return
		}
		exportSchemaCompiled, exportSchemaErr = c.Compile(exportSchemaURL)
	})
	return exportSchemaCompiled, exportSchemaErr
}

// SchemaViolation is one failed constraint in an import file.
type SchemaViolation struct {
	Path    string
	Message string
}

// InvalidExportError lists every schema violation found in an import file.
type InvalidExportError struct {
	Violations []SchemaViolation
}

func (e *InvalidExportError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "invalid export file"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		path := v.Path
		if path == "" {
			path = "/"
		}
		parts = append(parts, path+": "+v.Message)
	}
	return "invalid export file: " + strings.Join(parts, "; ")
}

// NewExport snapshots statuses, dropping values outside the three states.
func NewExport(namespace string, statuses model.StatusStore, now time.Time) Export {
	clean := model.StatusStore{}
	for k, v := range statuses {
		if v.Valid() {
			clean[k] = v
		}
	}
	return Export{ExportedAt: now.UTC().Truncate(time.Second), Namespace: namespace, Statuses: clean}
}

func WriteExport(w io.Writer, e Export) error {
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// ReadExport parses and validates an export file.
func ReadExport(r io.Reader) (Export, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Export{}, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Export{}, fmt.Errorf("invalid export file: %w", err)
	}
	schema, err := compiledExportSchema()
	if err != nil {
		return Export{}, fmt.Errorf("compile export schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Export{}, schemaError(err)
	}
	var e Export
	if err := json.Unmarshal(raw, &e); err != nil {
		return Export{}, fmt.Errorf("invalid export file: %w", err)
	}
	if e.Statuses == nil {
		e.Statuses = model.StatusStore{}
	}
	return e, nil
}

func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	out := &InvalidExportError{}
	collectViolations(out, ve)
	sort.SliceStable(out.Violations, func(i, j int) bool { return out.Violations[i].Path < out.Violations[j].Path })
	return out
}

func collectViolations(out *InvalidExportError, ve *jsonschema.ValidationError) {
	if ve == nil {
		return
	}
	if len(ve.Causes) == 0 {
		out.Violations = append(out.Violations, SchemaViolation{Path: ve.InstanceLocation, Message: ve.Message})
		return
	}
	for _, c := range ve.Causes {
		collectViolations(out, c)
	}
}

// Merge returns base overlaid with incoming. With replace set, incoming wins
// outright and base is discarded.
func Merge(base, incoming model.StatusStore, replace bool) model.StatusStore {
	if replace {
		return incoming.Clone()
	}
	out := base.Clone()
	for k, v := range incoming {
		out[k] = v
	}
	return out
}

// ExportFileName is the default file name for a snapshot taken at t.
func ExportFileName(t time.Time) string {
	return "board-export-" + t.UTC().Format("20060102-150405") + ".json"
}

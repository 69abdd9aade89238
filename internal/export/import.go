package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todolist-go/internal/todo"
)

const schemaURL = "tasks.schema.json"

//go:embed tasks.schema.json
var schemaSource string

// Schema returns the JSON schema that imported documents must satisfy.
func Schema() string {
	return schemaSource
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// Problem is one schema violation.
type Problem struct {
	// Path is the dotted location in the document, e.g. tasks[2].deadline.
	Path    string
	Message string
}

// SchemaError reports every violation found in a document.
type SchemaError struct {
	Problems []Problem
	Err      error
}

func (e *SchemaError) Error() string {
	if len(e.Problems) == 0 {
		return fmt.Sprintf("invalid task document: %v", e.Err)
	}
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Path == "" {
			parts = append(parts, p.Message)
			continue
		}
		parts = append(parts, p.Path+": "+p.Message)
	}
	return "invalid task document: " + strings.Join(parts, "; ")
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ReadJSON reads a JSON task document, validates it against the schema and
// returns its tasks in document order.
func ReadJSON(r io.Reader) ([]*todo.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, schemaError(err)
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	tasks := make([]*todo.Task, 0, len(doc.Tasks))
	var problems []Problem
	for i, rec := range doc.Tasks {
		deadline, err := todo.ParseDate(rec.Deadline)
		if err != nil {
			problems = append(problems, Problem{
				Path:    fmt.Sprintf("tasks[%d].deadline", i),
				Message: err.Error(),
			})
			continue
		}
		tasks = append(tasks, todo.NewTask(rec.Description, rec.Details, deadline))
	}
	if len(problems) > 0 {
		return nil, &SchemaError{Problems: problems, Err: todo.ErrInvalidField}
	}
	return tasks, nil
}

// schemaError flattens a jsonschema validation error into leaf problems.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Err: err}
	}
	se := &SchemaError{Err: err}
	collectProblems(ve, &se.Problems)
	return se
}

func collectProblems(ve *jsonschema.ValidationError, out *[]Problem) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Problem{
			Path:    pointerPath(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}
	for _, cause := range ve.Causes {
		collectProblems(cause, out)
	}
}

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nibzard/todolist-go/internal/todo"
)

func sampleTasks() []*todo.Task {
	return []*todo.Task{
		todo.NewTask("Buy milk", "semi-skimmed", todo.MustParseDate("01-01-2025")),
		todo.NewTask("Write report, part 1", "", todo.MustParseDate("15-06-2025")),
		todo.NewTask("Café visit", "with \"quotes\"", todo.MustParseDate("02-01-2025")),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"CSV", FormatCSV, false},
		{" pdf ", FormatPDF, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, ok := FormatFromPath("out/tasks.PDF"); !ok || f != FormatPDF {
		t.Errorf("FormatFromPath(pdf) = %q, %v", f, ok)
	}
	if _, ok := FormatFromPath("tasks.txt"); ok {
		t.Error("FormatFromPath(txt) reported a known format")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleTasks()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if doc.Version != DocumentVersion {
		t.Errorf("version = %d, want %d", doc.Version, DocumentVersion)
	}
	if len(doc.Tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(doc.Tasks))
	}
	if doc.Tasks[0] != (TaskRecord{"Buy milk", "semi-skimmed", "01-01-2025"}) {
		t.Errorf("first task = %+v", doc.Tasks[0])
	}
	if strings.Contains(buf.String(), `"details": ""`) {
		t.Error("empty details should be omitted")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, sampleTasks()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want header + 3", len(records))
	}
	if strings.Join(records[0], ",") != "description,details,deadline" {
		t.Errorf("header = %v", records[0])
	}
	if records[2][0] != "Write report, part 1" {
		t.Errorf("comma field = %q", records[2][0])
	}
	if records[3][1] != `with "quotes"` || records[3][2] != "02-01-2025" {
		t.Errorf("third record = %v", records[3])
	}
}

func TestWritePDF(t *testing.T) {
	for _, tasks := range [][]*todo.Task{sampleTasks(), nil} {
		var buf bytes.Buffer
		if err := Write(&buf, FormatPDF, tasks); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(16, buf.Len())])
		}
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Format("xml"), sampleTasks()); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestReadJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := sampleTasks()
	if err := Write(&buf, FormatJSON, want); err != nil {
		t.Fatal(err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Description != want[i].Description ||
			got[i].Details != want[i].Details ||
			!got[i].Deadline.Equal(want[i].Deadline) {
			t.Errorf("task %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadJSONRejects(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{
			name:     "missing tasks",
			doc:      `{"version": 1}`,
			wantPath: "",
		},
		{
			name:     "wrong version",
			doc:      `{"version": 2, "tasks": []}`,
			wantPath: "version",
		},
		{
			name:     "bad deadline pattern",
			doc:      `{"version": 1, "tasks": [{"description": "a", "deadline": "2025-01-01"}]}`,
			wantPath: "tasks[0].deadline",
		},
		{
			name:     "tab in description",
			doc:      `{"version": 1, "tasks": [{"description": "a", "deadline": "01-01-2025"}, {"description": "a\tb", "deadline": "01-01-2025"}]}`,
			wantPath: "tasks[1].description",
		},
		{
			name:     "unknown field",
			doc:      `{"version": 1, "tasks": [{"description": "a", "deadline": "01-01-2025", "done": true}]}`,
			wantPath: "tasks[0]",
		},
		{
			name:     "impossible date",
			doc:      `{"version": 1, "tasks": [{"description": "a", "deadline": "31-02-2025"}]}`,
			wantPath: "tasks[0].deadline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SchemaError, got %T: %v", err, err)
			}
			if len(se.Problems) == 0 {
				t.Fatalf("no problems reported: %v", err)
			}
			found := false
			for _, p := range se.Problems {
				if p.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("no problem at %q in %+v", tt.wantPath, se.Problems)
			}
		})
	}
}

func TestReadJSONSyntaxError(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"version": 1,`))
	if err == nil {
		t.Fatal("expected error")
	}
	var se *SchemaError
	if errors.As(err, &se) {
		t.Errorf("syntax error reported as schema error: %v", err)
	}
}

func TestSchemaCompiles(t *testing.T) {
	if _, err := compiledSchema(); err != nil {
		t.Fatalf("embedded schema does not compile: %v", err)
	}
	if !strings.Contains(Schema(), `"tasks"`) {
		t.Error("Schema() does not return the embedded schema")
	}
}

// Package export converts tasks to and from interchange formats.
//
// JSON documents carry a version number and a list of tasks with dates in
// the task file's dd-mm-yyyy form. CSV and PDF are write-only.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/todolist-go/internal/todo"
)

// DocumentVersion is the version written to and accepted in JSON documents.
const DocumentVersion = 1

// Format names an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatPDF}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want json, csv or pdf)", s)
}

// FormatFromPath guesses the format from a file extension. It reports false
// when the extension is not a known format.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Document is the JSON form of a task list.
type Document struct {
	Version int          `json:"version"`
	Tasks   []TaskRecord `json:"tasks"`
}

// TaskRecord is the JSON form of one task.
type TaskRecord struct {
	Description string `json:"description"`
	Details     string `json:"details,omitempty"`
	Deadline    string `json:"deadline"`
}

// NewDocument builds a JSON document from tasks, in order.
func NewDocument(tasks []*todo.Task) Document {
	doc := Document{Version: DocumentVersion, Tasks: make([]TaskRecord, 0, len(tasks))}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, TaskRecord{
			Description: t.Description,
			Details:     t.Details,
			Deadline:    t.Deadline.String(),
		})
	}
	return doc
}

// Write writes tasks to w in the given format.
func Write(w io.Writer, format Format, tasks []*todo.Task) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeJSON(w io.Writer, tasks []*todo.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(tasks)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, tasks []*todo.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"description", "details", "deadline"}); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write([]string{t.Description, t.Details, t.Deadline.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writePDF(w io.Writer, tasks []*todo.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("To-do list", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "To-do list")
	pdf.Ln(12)

	if len(tasks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(40, 6, "No tasks.")
		pdf.Ln(6)
	}
	for _, t := range tasks {
		pdf.SetFont("Arial", "B", 10)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s  %s", t.Deadline.Display(), t.Description)), "0", "L", false)
		if t.Details != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, tr(t.Details), "0", "L", false)
		}
		pdf.Ln(2)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

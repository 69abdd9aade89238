package todo

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Decode reads tasks in the line format from r. name is used in errors.
// Blank lines are skipped and a trailing CR is stripped so files edited on
// Windows still load. Lines have no length limit.
func Decode(r io.Reader, name string) ([]*Task, error) {
	br := bufio.NewReader(r)

	var tasks []*Task
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, &ParseError{Path: name, Line: lineNo + 1, Err: err}
		}
		if line == "" && err == io.EOF {
			break
		}
		lineNo++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if strings.TrimSpace(line) != "" {
			task, perr := decodeLine(line)
			if perr != nil {
				return nil, &ParseError{Path: name, Line: lineNo, Text: line, Err: perr}
			}
			tasks = append(tasks, task)
		}
		if err == io.EOF {
			break
		}
	}
	return tasks, nil
}

func decodeLine(line string) (*Task, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return nil, fmt.Errorf("expected 3 tab-separated fields, got %d", len(fields))
	}
	deadline, err := ParseDate(fields[2])
	if err != nil {
		return nil, err
	}
	return NewTask(fields[0], fields[1], deadline), nil
}

// Encode writes tasks in the line format. Every task is validated before
// anything is written, so a bad task never produces a partial file.
func Encode(w io.Writer, tasks []*Task) error {
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %d (%q): %w", i+1, t.Description, err)
		}
	}
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", t.Description, t.Details, t.Deadline); err != nil {
			return err
		}
	}
	return bw.Flush()
}

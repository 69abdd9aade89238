package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Load when the task file does not exist.
	ErrNotFound = errors.New("task file not found")
	// ErrInvalidField marks text that cannot be stored in the line format.
	ErrInvalidField = errors.New("invalid task field")
	// ErrLocked is returned by Lock when another process holds the lock.
	ErrLocked = errors.New("task file is locked by another process")
)

// ParseError reports a malformed line in the task file.
type ParseError struct {
	Path string // task file path, may be empty for in-memory input
	Line int    // 1-based
	Text string // offending line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed save. Op names the step that failed.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("save %s: %s: %v", e.Path, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// ValidationError reports a task field that cannot be stored.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

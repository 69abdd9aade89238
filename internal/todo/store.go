package todo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultFileName is the task file name used when none is configured.
const DefaultFileName = "TodoListItems.txt"

// Store owns the ordered task list and its backing file.
// It is not safe for concurrent use; the UI drives it from one goroutine.
type Store struct {
	path      string
	tasks     []*Task
	listeners []listener
	nextID    int
	logger    *log.Logger
	lock      *fileLock
	dirty     bool
}

type listener struct {
	id int
	fn func()
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load and save events.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns an empty store backed by path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Tasks returns the tasks in insertion order. The slice is a copy; the
// tasks are shared.
func (s *Store) Tasks() []*Task {
	out := make([]*Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Contains reports whether task is held by the store.
func (s *Store) Contains(task *Task) bool {
	return s.indexOf(task) >= 0
}

func (s *Store) indexOf(task *Task) int {
	if task == nil {
		return -1
	}
	for i, t := range s.tasks {
		if t == task {
			return i
		}
	}
	return -1
}

// Load replaces the store contents with the task file. On any error the
// store is left unchanged.
func (s *Store) Load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	tasks, err := Decode(f, s.path)
	if err != nil {
		return err
	}
	s.tasks = tasks
	s.dirty = false
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	s.notify()
	return nil
}

// LoadOrEmpty is Load, except a missing file leaves an empty store.
func (s *Store) LoadOrEmpty() error {
	err := s.Load()
	if errors.Is(err, ErrNotFound) {
		s.logger.Info("task file not found, starting empty", "path", s.path)
		s.tasks = nil
		s.dirty = false
		s.notify()
		return nil
	}
	return err
}

// Add appends task. Nothing is written until Save.
func (s *Store) Add(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: nil task", ErrInvalidField)
	}
	if err := task.Validate(); err != nil {
		return err
	}
	s.tasks = append(s.tasks, task)
	s.dirty = true
	s.notify()
	return nil
}

// Delete removes task by identity. It reports whether anything was removed.
func (s *Store) Delete(task *Task) bool {
	i := s.indexOf(task)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.dirty = true
	s.notify()
	return true
}

// Replace swaps in a new task list, validating every entry first.
func (s *Store) Replace(tasks []*Task) error {
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	s.tasks = append([]*Task(nil), tasks...)
	s.dirty = true
	s.notify()
	return nil
}

// Save writes all tasks to the backing file atomically.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: s.path, Op: "create temp file", Err: err}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := Encode(tmp, s.tasks); err != nil {
		return &WriteError{Path: s.path, Op: "write", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &WriteError{Path: s.path, Op: "sync", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: s.path, Op: "close", Err: err}
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return &WriteError{Path: s.path, Op: "chmod", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &WriteError{Path: s.path, Op: "rename", Err: err}
	}
	committed = true
	s.dirty = false
	s.logger.Debug("saved tasks", "path", s.path, "count", len(s.tasks))
	return nil
}

// Dirty reports whether the tasks changed since the last Load or Save.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Subscribe registers fn to run after every Add, Delete, Replace and Load.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	for _, l := range s.listeners {
		l.fn()
	}
}

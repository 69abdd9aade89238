package todo

import (
	"fmt"
	"os"
)

// LockSuffix is appended to the task file path to name its lock file.
const LockSuffix = ".lock"

type fileLock struct {
	path string
	f    *os.File
}

// Lock takes an exclusive advisory lock on the task file for the lifetime
// of the store. It fails fast with ErrLocked if another process holds it.
// Calling Lock twice is a no-op.
func (s *Store) Lock() error {
	if s.lock != nil {
		return nil
	}
	path := s.path + LockSuffix
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return err
	}
	s.lock = &fileLock{path: path, f: f}
	s.logger.Debug("locked task file", "lock", path)
	return nil
}

// Unlock releases the lock taken by Lock. The lock file is left in place;
// removing it would race with a process that just opened it.
func (s *Store) Unlock() error {
	if s.lock == nil {
		return nil
	}
	l := s.lock
	s.lock = nil
	err := unlockFile(l.f)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}

// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/todo"
	"github.com/nibzard/todolist-go/internal/view"
)

// ErrNotTTY is returned when the interactive UI is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// RunTUI locks and loads store, runs the interactive list until the user
// quits and saves on the way out. If ctx is cancelled while the UI runs,
// the tasks are saved before returning.
func RunTUI(ctx context.Context, cfg *config.Config, store *todo.Store, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}

	if cfg.Lock {
		if err := store.Lock(); err != nil {
			if errors.Is(err, todo.ErrLocked) {
				return fmt.Errorf("%s is open in another todolist session: %w", store.Path(), err)
			}
			return err
		}
		defer func() {
			if err := store.Unlock(); err != nil {
				logger.Warn("unlock failed", "err", err)
			}
		}()
	}

	if err := store.LoadOrEmpty(); err != nil {
		return err
	}

	filter, err := view.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		return err
	}
	proj := view.New(store, view.WithFilter(filter))
	defer proj.Close()

	model := NewModel(store, proj,
		WithLogger(logger),
		WithConfirmExit(cfg.ConfirmExit),
	)
	logger.Info("session started", "path", store.Path(), "tasks", store.Len())
	return runProgram(ctx, model, store, logger)
}

func runProgram(ctx context.Context, model *Model, store *todo.Store, logger *log.Logger) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		// Interrupted from outside: keep the user's edits.
		logger.Info("session interrupted, saving", "path", store.Path())
		if serr := store.Save(); serr != nil {
			return errors.Join(ctx.Err(), serr)
		}
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	if model.Discarded() {
		logger.Warn("session ended without saving", "path", store.Path())
		return nil
	}
	logger.Info("session ended", "path", store.Path(), "tasks", store.Len())
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

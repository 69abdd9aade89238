package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/export"
	"github.com/nibzard/todolist-go/internal/view"
)

// exportCommand writes the deadline-sorted tasks in one of the export
// formats.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todolist export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatName := fs.String("format", "", "Output format: json, csv or pdf")
	out := fs.String("o", "", "Output file (default stdout)")
	today := fs.Bool("today", false, "Only tasks due today")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	format := export.FormatJSON
	switch {
	case *formatName != "":
		f, err := export.ParseFormat(*formatName)
		if err != nil {
			return err
		}
		format = f
	case *out != "":
		if f, ok := export.FormatFromPath(*out); ok {
			format = f
		}
	}

	store, err := openStore(cfg, cfg.TaskFile, consoleLogger(cfg), false)
	if err != nil {
		return err
	}
	if err := store.LoadOrEmpty(); err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}
	filter := view.FilterAll
	if *today {
		filter = view.FilterToday
	}
	proj := view.New(store, view.WithFilter(filter))
	defer proj.Close()
	tasks := proj.Visible()

	if *out == "" || *out == "-" {
		return export.Write(stdout, format, tasks)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	if err := export.Write(f, format, tasks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Exported %d tasks to %s (%s)\n", len(tasks), *out, format)
	return nil
}

// importCommand reads a JSON document and adds its tasks to the task file.
func importCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todolist import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	replace := fs.Bool("replace", false, "Replace all tasks instead of appending")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("import: expected exactly one FILE (use - for stdin)")
	}

	var r io.Reader = stdin
	if name := fs.Arg(0); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	tasks, err := export.ReadJSON(r)
	if err != nil {
		return fmt.Errorf("import %s: %w", fs.Arg(0), err)
	}

	logger := consoleLogger(cfg)
	store, err := openStore(cfg, cfg.TaskFile, logger, true)
	if err != nil {
		return err
	}
	defer store.Unlock()
	if err := store.LoadOrEmpty(); err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	if *replace {
		if err := store.Replace(tasks); err != nil {
			return err
		}
	} else {
		for _, t := range tasks {
			if err := store.Add(t); err != nil {
				return err
			}
		}
	}
	if err := store.Save(); err != nil {
		return err
	}
	logger.Debug("imported tasks", "count", len(tasks), "replace", *replace)
	fmt.Fprintf(stdout, "Imported %d tasks (%d total)\n", len(tasks), store.Len())
	return nil
}

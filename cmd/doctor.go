package cmd

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/todo"
	"github.com/nibzard/todolist-go/internal/view"
)

// doctorCommand checks the configuration, the task file, its lock and the
// log directory.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todolist doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	cfg := cws.Config
	path, err := taskFileArg(cfg, fs.Args())
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Todolist Doctor")
	fmt.Fprintln(stdout, "===============")
	fmt.Fprintln(stdout)

	allOK := true

	// Config files and sources
	fmt.Fprintln(stdout, "Config:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(stdout, "  ✅ No config file (defaults)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(stdout, "  ✅ Loaded %s\n", f)
	}
	for _, key := range cws.Unknown {
		fmt.Fprintf(stdout, "  ⚠️  Unknown key %s\n", key)
	}
	if *verbose {
		keys := make([]string, 0, len(cws.Sources))
		for k := range cws.Sources {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(stdout, "     %-15s (%s)\n", k, cws.Sources[k])
		}
	}
	fmt.Fprintln(stdout)

	// Task file
	fmt.Fprintf(stdout, "Task file: %s\n", path)
	store := todo.NewStore(path, todo.WithLogger(logging.Discard()))
	switch err := store.Load(); {
	case errors.Is(err, todo.ErrNotFound):
		fmt.Fprintln(stdout, "  ⚠️  Not found (it will be created on first save)")
	case err != nil:
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	default:
		proj := view.New(store)
		all, today := proj.Counts()
		proj.Close()
		fmt.Fprintf(stdout, "  ✅ OK (%d tasks, %d due today)\n", all, today)
	}

	// Lock
	if cfg.Lock {
		switch err := store.Lock(); {
		case errors.Is(err, todo.ErrLocked):
			fmt.Fprintln(stdout, "  ⚠️  Locked by another todolist session")
		case err != nil:
			fmt.Fprintf(stdout, "  ⚠️  Lock unavailable: %v\n", err)
		default:
			fmt.Fprintln(stdout, "  ✅ Not locked")
			if err := store.Unlock(); err != nil {
				fmt.Fprintf(stdout, "  ❌ Unlock: %v\n", err)
				allOK = false
			}
		}
	} else {
		fmt.Fprintln(stdout, "  ⚠️  Locking disabled")
	}
	fmt.Fprintln(stdout)

	// Log directory
	fmt.Fprintln(stdout, "Logs:")
	logDir, err := logging.FindLogDir(cfg.LogDir, path)
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		runs, err := logging.FindLogRuns(logDir)
		switch {
		case err != nil:
			fmt.Fprintf(stdout, "  ❌ %s: %v\n", logDir, err)
			allOK = false
		case len(runs) == 0:
			fmt.Fprintf(stdout, "  ✅ %s (no runs yet)\n", logDir)
		default:
			fmt.Fprintf(stdout, "  ✅ %s (%d runs, latest %s)\n", logDir, len(runs), runs[0].RunID)
		}
	}
	fmt.Fprintln(stdout)

	if !allOK {
		fmt.Fprintln(stdout, "❌ Some checks failed")
		return fmt.Errorf("doctor checks failed")
	}
	fmt.Fprintln(stdout, "✅ All checks passed")
	return nil
}

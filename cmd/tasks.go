package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/todo"
	"github.com/nibzard/todolist-go/internal/ui"
	"github.com/nibzard/todolist-go/internal/view"
)

// timeNow is the clock used for default deadlines.
var timeNow = time.Now

// tuiCommand launches the terminal UI. It logs to a per-run file since the
// UI owns the terminal.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todolist tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := taskFileArg(cfg, fs.Args())
	if err != nil {
		return err
	}

	logger := logging.Discard()
	runLog, err := logging.NewRunLogger(cfg.LogDir, path)
	if err != nil {
		consoleLogger(cfg).Warn("run log disabled", "err", err)
	} else {
		defer runLog.Close()
		opts := logging.DefaultOptions()
		opts.Level = logging.ParseLevel(cfg.LogLevel)
		opts.Formatter = logging.ParseFormatter(cfg.LogFormat)
		opts.ReportTimestamp = true
		opts.ReportCaller = cfg.LogCaller
		logger = logging.New(runLog.Writer(), opts)
	}

	store := todo.NewStore(path, todo.WithLogger(logger))
	return ui.RunTUI(ctx, cfg, store, logger)
}

// lsCommand prints the visible tasks sorted by deadline. Indexes refer to
// the unfiltered list so they can be passed to rm.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todolist ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filter, err := view.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		return err
	}
	today := fs.Bool("today", filter == view.FilterToday, "Only tasks due today")
	verbose := fs.Bool("v", false, "Show more details")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := taskFileArg(cfg, fs.Args())
	if err != nil {
		return err
	}

	store, err := openStore(cfg, path, consoleLogger(cfg), false)
	if err != nil {
		return err
	}
	if err := store.LoadOrEmpty(); err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	all := view.New(store)
	defer all.Close()
	index := make(map[*todo.Task]int, all.Len())
	for i, t := range all.Visible() {
		index[t] = i + 1
	}

	shown := all
	if *today {
		shown = view.New(store, view.WithFilter(view.FilterToday))
		defer shown.Close()
	}

	if shown.Len() == 0 {
		if *today {
			fmt.Fprintln(stdout, "Nothing due today.")
		} else {
			fmt.Fprintln(stdout, "No tasks.")
		}
		return nil
	}
	day := shown.Today()
	for _, t := range shown.Visible() {
		printTask(stdout, index[t], t, day, *verbose)
	}
	return nil
}

// printTask prints a single task.
func printTask(w io.Writer, n int, t *todo.Task, today todo.Date, verbose bool) {
	marker := " "
	switch t.Deadline.UrgencyOn(today) {
	case todo.Overdue:
		marker = "!"
	case todo.DueToday:
		marker = "*"
	}
	fmt.Fprintf(w, "%3d %s %s  %s\n", n, marker, t.Deadline, t.Description)
	if !verbose {
		return
	}
	fmt.Fprintf(w, "        Due: %s (%s)\n", t.Deadline.Display(), t.Deadline.UrgencyOn(today))
	if t.Details != "" {
		fmt.Fprintf(w, "        Details: %s\n", t.Details)
	}
}

// addCommand appends one task and saves.
func addCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todolist add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	desc := fs.String("d", "", "Description")
	details := fs.String("details", "", "Details")
	due := fs.String("due", "", "Deadline (dd-mm-yyyy, default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *desc == "" {
		*desc = strings.Join(fs.Args(), " ")
	} else if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if strings.TrimSpace(*desc) == "" {
		return errors.New("add: a description is required (-d)")
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

	deadline := todo.Today(timeNow())
	if *due != "" {
		deadline, err = todo.ParseDate(strings.TrimSpace(*due))
		if err != nil {
			return err
		}
	}
	task := todo.NewTask(strings.TrimSpace(*desc), strings.TrimSpace(*details), deadline)
	if err := store.Add(task); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}
	logger.Debug("added task", "description", task.Description)
	fmt.Fprintf(stdout, "Added %q (due %s)\n", task.Description, task.Deadline)
	return nil
}

// rmCommand deletes the task at a 1-based index of the deadline-sorted list.
func rmCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todolist rm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("rm: expected exactly one INDEX")
	}
	n, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("rm: invalid index %q", fs.Arg(0))
	}

	logger := consoleLogger(cfg)
	store, err := openStore(cfg, cfg.TaskFile, logger, true)
	if err != nil {
		return err
	}
	defer store.Unlock()
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	all := view.New(store)
	defer all.Close()
	if !all.SelectIndex(n - 1) {
		return fmt.Errorf("rm: index %d out of range (1-%d)", n, all.Len())
	}
	task := all.Selected()

	if !*yes && !confirm(fmt.Sprintf("Delete %q (due %s)?", task.Description, task.Deadline)) {
		fmt.Fprintln(stdout, "Cancelled.")
		return nil
	}
	store.Delete(task)
	if err := store.Save(); err != nil {
		return err
	}
	logger.Debug("deleted task", "description", task.Description)
	fmt.Fprintf(stdout, "Deleted %q\n", task.Description)
	return nil
}

// confirm asks a yes/no question on stdin. Anything but y/yes is no.
func confirm(question string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

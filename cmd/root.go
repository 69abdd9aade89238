// Package cmd implements the CLI command structure for todolist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the todolist CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "import":
		return importCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		// An existing file is opened in the terminal UI.
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			return tuiCommand(ctx, cfg, append([]string{subcommand}, remainingArgs...))
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// consoleLogger returns the stderr logger used by one-shot commands.
func consoleLogger(cfg *config.Config) *log.Logger {
	return logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

// taskFileArg resolves an optional trailing [file] argument.
func taskFileArg(cfg *config.Config, remaining []string) (string, error) {
	if len(remaining) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		return cfg.ResolveTaskFile(remaining[0]), nil
	}
	return cfg.TaskFile, nil
}

// openStore builds a store for path. With lock set and locking enabled in
// cfg, it takes the task file lock first; the caller must Unlock.
func openStore(cfg *config.Config, path string, logger *log.Logger, lock bool) (*todo.Store, error) {
	store := todo.NewStore(path, todo.WithLogger(logger))
	if lock && cfg.Lock {
		if err := store.Lock(); err != nil {
			return nil, fmt.Errorf("locking %s: %w", path, err)
		}
	}
	return store, nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "todolist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todolist - a small to-do list with deadlines")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todolist [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]        Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  ls [file]         List tasks sorted by deadline")
	fmt.Fprintln(w, "  add               Add a task")
	fmt.Fprintln(w, "  rm INDEX          Delete the task at INDEX (as shown by ls)")
	fmt.Fprintln(w, "  export            Write tasks as json, csv or pdf")
	fmt.Fprintln(w, "  import FILE.json  Add tasks from a JSON document")
	fmt.Fprintln(w, "  doctor            Check config, task file, lock and log directory")
	fmt.Fprintln(w, "  tail              Tail the latest terminal UI log")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -today    Only tasks due today")
	fmt.Fprintln(w, "  -v        Show details and long-form deadlines")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -d string         Description (or pass it as arguments)")
	fmt.Fprintln(w, "  -details string   Details")
	fmt.Fprintln(w, "  -due string       Deadline as dd-mm-yyyy (default today)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rm Options:")
	fmt.Fprintln(w, "  -y        Do not ask for confirmation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string   json, csv or pdf (default from -o extension, else json)")
	fmt.Fprintln(w, "  -o string        Output file (default stdout)")
	fmt.Fprintln(w, "  -today           Only tasks due today")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import Options:")
	fmt.Fprintln(w, "  -replace  Replace all tasks instead of appending")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options:")
	fmt.Fprintln(w, "  -v        Verbose output")
	fmt.Fprintln(w, "  -example  Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -f, -follow   Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list         List run logs instead")
}

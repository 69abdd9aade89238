package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todolist configuration file
# Values can be overridden by TODOLIST_* environment variables or CLI flags

# Task file (relative to the working directory unless absolute)
task_file = "TodoListItems.txt"

# Initial filter of the terminal UI and "ls": all or today
default_filter = "all"

# Ask for confirmation before leaving the terminal UI
confirm_exit = true

# Take an advisory lock on the task file while the terminal UI runs
lock = true

# Log directory for terminal UI run logs (supports ~ expansion)
log_dir = "~/.todolist/logs"

# Logging: level (debug, info, warn, error), format (text, json, logfmt)
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}

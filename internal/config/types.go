package config

import (
	"fmt"
	"strings"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Unknown lists keys found in config files that no field accepts.
	Unknown []string
}

// Default values.
const (
	DefaultTaskFile      = "TodoListItems.txt"
	DefaultLogDir        = "~/.todolist/logs"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultFilter        = "all"
	DefaultConfirmExit   = true
	DefaultLock          = true
	DefaultConfigDirName = ".todolist"
	DefaultConfigName    = "todolist.toml"
)

// Config holds the full configuration for todolist.
type Config struct {
	// Task file, relative to the working directory unless absolute.
	TaskFile string `toml:"task_file"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// UI behaviour
	ConfirmExit   bool   `toml:"confirm_exit"`
	DefaultFilter string `toml:"default_filter"`

	// Take an advisory lock on the task file for interactive sessions.
	Lock bool `toml:"lock"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"confirm_exit",
		"default_filter",
		"lock",
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TaskFile) == "" {
		return fmt.Errorf("task_file must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("log_level %q: expected debug|info|warn|error|fatal", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format %q: expected text|json|logfmt", c.LogFormat)
	}
	switch strings.ToLower(c.DefaultFilter) {
	case "all", "today":
	default:
		return fmt.Errorf("default_filter %q: expected all|today", c.DefaultFilter)
	}
	return nil
}

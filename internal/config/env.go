package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// envBinding maps one environment variable onto a config field.
type envBinding struct {
	name  string
	field string
	apply func(cfg *Config, value string) error
}

func stringEnv(set func(*Config, string)) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		set(cfg, v)
		return nil
	}
}

func boolEnv(set func(*Config, bool)) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		set(cfg, b)
		return nil
	}
}

var envBindings = []envBinding{
	{"TODOLIST_FILE", "task_file", stringEnv(func(c *Config, v string) { c.TaskFile = v })},
	{"TODOLIST_LOG_DIR", "log_dir", stringEnv(func(c *Config, v string) { c.LogDir = v })},
	{"TODOLIST_LOG_LEVEL", "log_level", stringEnv(func(c *Config, v string) { c.LogLevel = v })},
	{"TODOLIST_LOG_FORMAT", "log_format", stringEnv(func(c *Config, v string) { c.LogFormat = v })},
	{"TODOLIST_LOG_TIMESTAMPS", "log_timestamps", boolEnv(func(c *Config, v bool) { c.LogTimestamps = v })},
	{"TODOLIST_LOG_CALLER", "log_caller", boolEnv(func(c *Config, v bool) { c.LogCaller = v })},
	{"TODOLIST_CONFIRM_EXIT", "confirm_exit", boolEnv(func(c *Config, v bool) { c.ConfirmExit = v })},
	{"TODOLIST_FILTER", "default_filter", stringEnv(func(c *Config, v string) { c.DefaultFilter = v })},
	{"TODOLIST_LOCK", "lock", boolEnv(func(c *Config, v bool) { c.Lock = v })},
}

// loadFromEnv overrides config from TODOLIST_* environment variables.
// If sources is non-nil, it records which fields were set.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	for _, b := range envBindings {
		v, ok := os.LookupEnv(b.name)
		if !ok || v == "" {
			continue
		}
		if err := b.apply(cfg, v); err != nil {
			return fmt.Errorf("%s: %w", b.name, err)
		}
		if sources != nil {
			sources[b.field] = SourceEnv
		}
	}
	return nil
}

// parseBool accepts strconv.ParseBool values plus yes/no and on/off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}

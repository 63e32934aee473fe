// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taskdeck/taskdeck/lib/tasksync"
)

// Config is the complete taskdeck configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Service  ServiceConfig  `yaml:"service"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
	View     ViewConfig     `yaml:"view"`
	Voice    VoiceConfig    `yaml:"voice"`
	Log      LogConfig      `yaml:"log"`

	// Path is the file the configuration was loaded from, empty when
	// built from defaults.
	Path string `yaml:"-"`
}

// StoreConfig configures the local SQLite task store.
type StoreConfig struct {
	// Database is the SQLite file path.
	Database string `yaml:"database"`

	// PoolSize is the number of pooled connections.
	PoolSize int `yaml:"pool_size"`

	// SeedOnEmpty inserts the sample tasks when the table is empty.
	SeedOnEmpty bool `yaml:"seed_on_empty"`
}

// ServiceConfig configures the task service socket.
type ServiceConfig struct {
	Socket string `yaml:"socket"`
}

// TimeoutsConfig bounds each asynchronous effect. Values are Go
// duration strings ("10s", "1m30s").
type TimeoutsConfig struct {
	Fetch    string `yaml:"fetch"`
	Mutation string `yaml:"mutation"`
	Parse    string `yaml:"parse"`
}

// ViewConfig configures the presentation defaults.
type ViewConfig struct {
	// DefaultMode is "board" or "list".
	DefaultMode string `yaml:"default_mode"`
}

// VoiceConfig configures audio capture.
type VoiceConfig struct {
	// TranscribeCommand is an argv that records speech and prints the
	// transcript on stdout. Empty means transcripts are typed.
	TranscribeCommand []string `yaml:"transcribe_command"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present and
// the base that file values are merged over.
func Default() *Config {
	root := defaultRoot()
	return &Config{
		Store: StoreConfig{
			Database:    filepath.Join(root, "tasks.db"),
			PoolSize:    4,
			SeedOnEmpty: true,
		},
		Service: ServiceConfig{
			Socket: filepath.Join(root, "taskdeck.sock"),
		},
		Timeouts: TimeoutsConfig{
			Fetch:    tasksync.DefaultTimeouts.Fetch.String(),
			Mutation: tasksync.DefaultTimeouts.Mutation.String(),
			Parse:    tasksync.DefaultTimeouts.Parse.String(),
		},
		View: ViewConfig{DefaultMode: tasksync.ModeBoard.String()},
		Log:  LogConfig{Level: "info"},
	}
}

func defaultRoot() string {
	homeDirectory, _ := os.UserHomeDir()
	return filepath.Join(homeDirectory, ".local", "share", "taskdeck")
}

// DefaultPath returns $HOME/.config/taskdeck/config.yaml.
func DefaultPath() string {
	homeDirectory, _ := os.UserHomeDir()
	return filepath.Join(homeDirectory, ".config", "taskdeck", "config.yaml")
}

// Load locates the configuration file through TASKDECK_CONFIG or
// [DefaultPath]. A missing file at the default location yields
// [Default] with environment overrides applied; a missing file named
// by TASKDECK_CONFIG is an error.
func Load() (*Config, error) {
	if configPath := os.Getenv("TASKDECK_CONFIG"); configPath != "" {
		return LoadFile(configPath)
	}

	cfg, err := LoadFile(DefaultPath())
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		cfg.finish()
		return cfg, nil
	}
	return cfg, err
}

// LoadFile loads configuration from path, merged over [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.Path = path
	cfg.finish()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) finish() {
	c.applyEnvironmentOverrides()
	c.expandVariables()
}

func (c *Config) applyEnvironmentOverrides() {
	if database := os.Getenv("TASKDECK_DATABASE"); database != "" {
		c.Store.Database = database
	}
	if socket := os.Getenv("TASKDECK_SOCKET"); socket != "" {
		c.Service.Socket = socket
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":          os.Getenv("HOME"),
		"TASKDECK_ROOT": defaultRoot(),
	}
	c.Store.Database = expandVars(c.Store.Database, vars)
	c.Service.Socket = expandVars(c.Service.Socket, vars)
	for index, argument := range c.Voice.TranscribeCommand {
		c.Voice.TranscribeCommand[index] = expandVars(argument, vars)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}. Names resolve against
// vars first, then the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Store.Database == "" {
		errs = append(errs, errors.New("store.database is required"))
	}
	if c.Store.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("store.pool_size must be positive, got %d", c.Store.PoolSize))
	}
	if c.Service.Socket == "" {
		errs = append(errs, errors.New("service.socket is required"))
	}
	for _, field := range []struct{ name, value string }{
		{"timeouts.fetch", c.Timeouts.Fetch},
		{"timeouts.mutation", c.Timeouts.Mutation},
		{"timeouts.parse", c.Timeouts.Parse},
	} {
		if _, err := parsePositiveDuration(field.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field.name, err))
		}
	}
	if _, err := tasksync.ParseMode(c.View.DefaultMode); err != nil {
		errs = append(errs, fmt.Errorf("view.default_mode: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// TaskTimeouts converts the timeouts section. Call after [Config.Validate].
func (c *Config) TaskTimeouts() (tasksync.Timeouts, error) {
	fetch, err := parsePositiveDuration(c.Timeouts.Fetch)
	if err != nil {
		return tasksync.Timeouts{}, fmt.Errorf("timeouts.fetch: %w", err)
	}
	mutation, err := parsePositiveDuration(c.Timeouts.Mutation)
	if err != nil {
		return tasksync.Timeouts{}, fmt.Errorf("timeouts.mutation: %w", err)
	}
	parse, err := parsePositiveDuration(c.Timeouts.Parse)
	if err != nil {
		return tasksync.Timeouts{}, fmt.Errorf("timeouts.parse: %w", err)
	}
	return tasksync.Timeouts{Fetch: fetch, Mutation: mutation, Parse: parse}, nil
}

// ViewMode returns the configured default view mode.
func (c *Config) ViewMode() (tasksync.Mode, error) {
	return tasksync.ParseMode(c.View.DefaultMode)
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level %q", c.Log.Level)
	}
}

func parsePositiveDuration(value string) (time.Duration, error) {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if duration <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", value)
	}
	return duration, nil
}

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/lib/cli"
	"github.com/taskdeck/taskdeck/lib/clock"
	"github.com/taskdeck/taskdeck/lib/config"
	"github.com/taskdeck/taskdeck/lib/process"
	"github.com/taskdeck/taskdeck/lib/tasksync"
	"github.com/taskdeck/taskdeck/lib/taskui"
	"github.com/taskdeck/taskdeck/lib/transcribe"
	"github.com/taskdeck/taskdeck/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var configPath, modeFlag, logOutput string
	var serviceMode, showVersion bool

	flagSet := pflag.NewFlagSet("taskdeck", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "configuration file (default: $TASKDECK_CONFIG or ~/.config/taskdeck/config.yaml)")
	flagSet.BoolVar(&serviceMode, "service", false, "use a running taskdeck-service instead of opening the database")
	flagSet.StringVar(&modeFlag, "mode", "", "initial layout: board or list (default: view.default_mode)")
	flagSet.StringVar(&logOutput, "log-output", "", "also write JSON log records to this file")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return cli.Validation("%w", err)
	}
	if showVersion {
		fmt.Printf("taskdeck %s\n", version.Full())
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	mode, err := cfg.ViewMode()
	if modeFlag != "" {
		mode, err = tasksync.ParseMode(modeFlag)
	}
	if err != nil {
		return cli.Validation("%w", err)
	}
	timeouts, err := cfg.TaskTimeouts()
	if err != nil {
		return cli.Validation("%w", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return cli.Validation("%w", err)
	}

	// The terminal belongs to the UI from here on; records go to the
	// status line and, optionally, a file.
	tuiHandler := taskui.NewTUILogHandler(max(level, slog.LevelWarn))
	var handler slog.Handler = tuiHandler
	if logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(logOutput, level)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, err)
		}
		defer closeFile()
		handler = multiHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wallClock := clock.Real()
	backend, err := openBackend(ctx, cfg, serviceMode, wallClock, logger)
	if err != nil {
		return err
	}
	defer backend.close()

	options := taskui.Options{
		Runner:  tasksync.NewRunner(backend.gateway, backend.parser, timeouts, logger.With("component", "runner")),
		Mode:    mode,
		Context: ctx,
		Clock:   wallClock,
		Logger:  logger.With("component", "ui"),
	}
	if command := transcribe.NewCommand(cfg.Voice.TranscribeCommand); command != nil {
		options.Transcriber = command
	}

	program := tea.NewProgram(taskui.New(options), tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err).
			WithHint("Fix the listed fields or remove the file to use defaults.")
	}
	return cfg, nil
}

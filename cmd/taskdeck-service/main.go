// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/lib/cli"
	"github.com/taskdeck/taskdeck/lib/clock"
	"github.com/taskdeck/taskdeck/lib/config"
	"github.com/taskdeck/taskdeck/lib/process"
	"github.com/taskdeck/taskdeck/lib/service"
	"github.com/taskdeck/taskdeck/lib/taskstore"
	"github.com/taskdeck/taskdeck/lib/version"
	"github.com/taskdeck/taskdeck/lib/voiceparse"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var configPath, socketPath, databasePath string
	var showVersion bool

	flagSet := pflag.NewFlagSet("taskdeck-service", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "configuration file (default: $TASKDECK_CONFIG or ~/.config/taskdeck/config.yaml)")
	flagSet.StringVar(&socketPath, "socket", "", "listen on this socket instead of service.socket")
	flagSet.StringVar(&databasePath, "database", "", "use this database instead of store.database")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return cli.Validation("%w", err)
	}
	if showVersion {
		fmt.Printf("taskdeck-service %s\n", version.Full())
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if socketPath != "" {
		cfg.Service.Socket = socketPath
	}
	if databasePath != "" {
		cfg.Store.Database = databasePath
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return cli.Validation("%w", err)
	}
	logger := cli.NewCommandLogger(level).With("component", "taskdeck-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, path := range []string{cfg.Store.Database, cfg.Service.Socket} {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return cli.Internal("creating %s: %w", filepath.Dir(path), err)
		}
	}

	wallClock := clock.Real()
	store, err := taskstore.Open(ctx, taskstore.Config{
		Path:     cfg.Store.Database,
		PoolSize: cfg.Store.PoolSize,
		Clock:    wallClock,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Store.SeedOnEmpty {
		seeded, err := store.SeedIfEmpty(ctx)
		if err != nil {
			return err
		}
		if seeded > 0 {
			logger.Info("seeded empty store with sample tasks", "count", seeded)
		}
	}

	server := service.NewServer(cfg.Service.Socket, logger)
	newTaskService(store, voiceparse.New(wallClock), wallClock, logger).register(server)

	logger.Info("taskdeck service starting",
		"version", version.Info(),
		"database", cfg.Store.Database,
	)
	if err := server.Serve(ctx); err != nil {
		return err
	}
	logger.Info("taskdeck service stopped")
	return nil
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

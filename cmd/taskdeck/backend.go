// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/taskdeck/taskdeck/lib/cli"
	"github.com/taskdeck/taskdeck/lib/clock"
	"github.com/taskdeck/taskdeck/lib/config"
	"github.com/taskdeck/taskdeck/lib/taskclient"
	"github.com/taskdeck/taskdeck/lib/taskstore"
	"github.com/taskdeck/taskdeck/lib/tasksync"
	"github.com/taskdeck/taskdeck/lib/voiceparse"
)

// serviceProbeTimeout bounds the status call made before the UI starts.
const serviceProbeTimeout = 3 * time.Second

// backend is where tasks live and who parses transcripts.
type backend struct {
	gateway tasksync.Gateway
	parser  tasksync.Parser
	close   func()
}

// openBackend opens the local store, or with serviceMode connects to
// the service socket and checks that something answers there.
func openBackend(ctx context.Context, cfg *config.Config, serviceMode bool, wallClock clock.Clock, logger *slog.Logger) (backend, error) {
	if serviceMode {
		client := taskclient.New(cfg.Service.Socket)
		probeContext, cancel := context.WithTimeout(ctx, serviceProbeTimeout)
		defer cancel()
		status, err := client.Status(probeContext)
		if err != nil {
			return backend{}, cli.Transient("task service not reachable at %s: %w", cfg.Service.Socket, err).
				WithHint("Start taskdeck-service, or run without --service to open the database directly.")
		}
		logger.Info("connected to task service", "version", status.Version, "tasks", status.Tasks)
		return backend{gateway: client, parser: client, close: func() {}}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Database), 0o700); err != nil {
		return backend{}, cli.Internal("creating %s: %w", filepath.Dir(cfg.Store.Database), err)
	}
	store, err := taskstore.Open(ctx, taskstore.Config{
		Path:     cfg.Store.Database,
		PoolSize: cfg.Store.PoolSize,
		Clock:    wallClock,
		Logger:   logger.With("component", "store"),
	})
	if err != nil {
		return backend{}, err
	}
	if cfg.Store.SeedOnEmpty {
		if _, err := store.SeedIfEmpty(ctx); err != nil {
			store.Close()
			return backend{}, err
		}
	}
	return backend{
		gateway: store,
		parser:  voiceparse.New(wallClock),
		close:   func() { store.Close() },
	}, nil
}

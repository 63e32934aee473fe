// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Timeouts bound each kind of effect. A timeout surfaces as the
// failure of that effect.
type Timeouts struct {
	Fetch    time.Duration
	Mutation time.Duration
	Parse    time.Duration
}

// DefaultTimeouts are used for any zero field.
var DefaultTimeouts = Timeouts{
	Fetch:    10 * time.Second,
	Mutation: 10 * time.Second,
	Parse:    15 * time.Second,
}

// Runner executes effects against the collaborators. Run is safe to
// call from multiple goroutines as long as the Gateway and Parser are.
type Runner struct {
	gateway  Gateway
	parser   Parser
	timeouts Timeouts
	logger   *slog.Logger
}

// NewRunner creates a Runner. A nil parser makes every ParseTranscript
// fail.
func NewRunner(gateway Gateway, parser Parser, timeouts Timeouts, logger *slog.Logger) *Runner {
	if timeouts.Fetch <= 0 {
		timeouts.Fetch = DefaultTimeouts.Fetch
	}
	if timeouts.Mutation <= 0 {
		timeouts.Mutation = DefaultTimeouts.Mutation
	}
	if timeouts.Parse <= 0 {
		timeouts.Parse = DefaultTimeouts.Parse
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{gateway: gateway, parser: parser, timeouts: timeouts, logger: logger}
}

// Run executes effect and returns the completion event to feed back
// into Reduce. It blocks until the collaborator answers or the effect's
// timeout expires.
func (runner *Runner) Run(ctx context.Context, effect Effect) Event {
	switch effect := effect.(type) {
	case FetchTasks:
		return runner.fetch(ctx)
	case ApplyMutation:
		return runner.mutate(ctx, effect.Mutation)
	case ParseTranscript:
		return runner.parse(ctx, effect)
	}
	panic(fmt.Sprintf("tasksync: unknown effect %T", effect))
}

func (runner *Runner) fetch(ctx context.Context) Event {
	ctx, cancel := context.WithTimeout(ctx, runner.timeouts.Fetch)
	defer cancel()

	tasks, err := runner.gateway.List(ctx)
	if err != nil {
		runner.logger.Warn("fetching tasks failed", "error", err)
		return RefreshCompleted{Err: fmt.Errorf("fetching tasks: %w", err)}
	}
	runner.logger.Debug("fetched tasks", "count", len(tasks))
	return RefreshCompleted{Tasks: tasks}
}

func (runner *Runner) mutate(ctx context.Context, mutation Mutation) Event {
	ctx, cancel := context.WithTimeout(ctx, runner.timeouts.Mutation)
	defer cancel()

	completed := MutationCompleted{Mutation: mutation}
	switch mutation.Kind {
	case MutationCreate:
		completed.Task, completed.Err = runner.gateway.Create(ctx, mutation.Payload)
	case MutationUpdate:
		completed.Task, completed.Err = runner.gateway.Update(ctx, mutation.ID, mutation.Payload)
	case MutationDelete:
		completed.Err = runner.gateway.Delete(ctx, mutation.ID)
	default:
		completed.Err = fmt.Errorf("unknown mutation kind %d", int(mutation.Kind))
	}

	if completed.Err != nil {
		completed.Err = fmt.Errorf("%s task: %w", mutation.Kind, completed.Err)
		runner.logger.Warn("task mutation failed",
			"kind", mutation.Kind.String(),
			"task_id", mutation.ID,
			"error", completed.Err,
		)
		return completed
	}

	taskID := mutation.ID
	if mutation.Kind == MutationCreate {
		taskID = completed.Task.ID
	}
	runner.logger.Info("task mutation applied", "kind", mutation.Kind.String(), "task_id", taskID)
	return completed
}

func (runner *Runner) parse(ctx context.Context, effect ParseTranscript) Event {
	completed := ParseCompleted{SessionID: effect.SessionID}
	if runner.parser == nil {
		completed.Err = errors.New("no transcript parser configured")
		return completed
	}

	ctx, cancel := context.WithTimeout(ctx, runner.timeouts.Parse)
	defer cancel()

	completed.Candidate, completed.Err = runner.parser.Parse(ctx, effect.Transcript)
	if completed.Err != nil {
		runner.logger.Warn("parsing transcript failed", "session", effect.SessionID.String(), "error", completed.Err)
		return completed
	}
	runner.logger.Debug("parsed transcript", "session", effect.SessionID.String())
	return completed
}

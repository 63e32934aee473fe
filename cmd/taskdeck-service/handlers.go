// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck/lib/clock"
	"github.com/taskdeck/taskdeck/lib/schema/task"
	"github.com/taskdeck/taskdeck/lib/service"
	"github.com/taskdeck/taskdeck/lib/taskstore"
	"github.com/taskdeck/taskdeck/lib/tasksync"
	"github.com/taskdeck/taskdeck/lib/version"
)

// taskService answers socket actions from the store and the parser.
type taskService struct {
	store     *taskstore.Store
	parser    tasksync.Parser
	clock     clock.Clock
	startedAt time.Time
	logger    *slog.Logger
}

func newTaskService(store *taskstore.Store, parser tasksync.Parser, wallClock clock.Clock, logger *slog.Logger) *taskService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &taskService{
		store:     store,
		parser:    parser,
		clock:     wallClock,
		startedAt: wallClock.Now(),
		logger:    logger,
	}
}

func (taskService *taskService) register(server *service.Server) {
	server.Handle(task.ActionStatus, taskService.handleStatus)
	server.Handle(task.ActionList, taskService.handleList)
	server.Handle(task.ActionCreate, taskService.handleCreate)
	server.Handle(task.ActionUpdate, taskService.handleUpdate)
	server.Handle(task.ActionDelete, taskService.handleDelete)
	server.Handle(task.ActionParse, taskService.handleParse)
}

func (taskService *taskService) handleStatus(ctx context.Context, _ service.Request) (any, error) {
	tasks, err := taskService.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return task.ServiceStatus{
		Version:       version.Info(),
		Tasks:         len(tasks),
		UptimeSeconds: int64(taskService.clock.Now().Sub(taskService.startedAt).Seconds()),
		Parser:        taskService.parser != nil,
	}, nil
}

func (taskService *taskService) handleList(ctx context.Context, _ service.Request) (any, error) {
	return taskService.store.List(ctx)
}

func (taskService *taskService) handleCreate(ctx context.Context, request service.Request) (any, error) {
	var body task.MutationRequest
	if err := request.Decode(&body); err != nil {
		return nil, err
	}
	created, err := taskService.store.Create(ctx, body.Task)
	if err != nil {
		return nil, err
	}
	taskService.logger.Info("task created", "id", created.ID, "status", created.Status)
	return created, nil
}

func (taskService *taskService) handleUpdate(ctx context.Context, request service.Request) (any, error) {
	var body task.MutationRequest
	if err := request.Decode(&body); err != nil {
		return nil, err
	}
	updated, err := taskService.store.Update(ctx, body.ID, body.Task)
	if err != nil {
		return nil, err
	}
	taskService.logger.Info("task updated", "id", updated.ID, "status", updated.Status)
	return updated, nil
}

func (taskService *taskService) handleDelete(ctx context.Context, request service.Request) (any, error) {
	var body task.MutationRequest
	if err := request.Decode(&body); err != nil {
		return nil, err
	}
	if err := taskService.store.Delete(ctx, body.ID); err != nil {
		return nil, err
	}
	taskService.logger.Info("task deleted", "id", body.ID)
	return nil, nil
}

func (taskService *taskService) handleParse(ctx context.Context, request service.Request) (any, error) {
	var body task.ParseRequest
	if err := request.Decode(&body); err != nil {
		return nil, err
	}
	candidate, err := taskService.parser.Parse(ctx, body.Transcript)
	if err != nil {
		return nil, err
	}
	return candidate.Partial(), nil
}

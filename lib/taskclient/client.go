// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskclient talks to a running task service over its socket.
// Client satisfies both tasksync.Gateway and tasksync.Parser, so the
// terminal UI can run against the service exactly as it runs against a
// local store.
package taskclient

import (
	"context"

	"github.com/taskdeck/taskdeck/lib/schema/task"
	"github.com/taskdeck/taskdeck/lib/service"
)

// Client is a task service client. Safe for concurrent use.
type Client struct {
	service *service.Client
}

// New returns a client for the service socket at socketPath. No
// connection is made until the first call.
func New(socketPath string) *Client {
	return &Client{service: service.NewClient(socketPath)}
}

// Status reports the service's version and task count.
func (client *Client) Status(ctx context.Context) (task.ServiceStatus, error) {
	var status task.ServiceStatus
	err := client.service.Call(ctx, task.ActionStatus, nil, &status)
	return status, err
}

// List fetches every task.
func (client *Client) List(ctx context.Context) ([]task.Task, error) {
	tasks := []task.Task{}
	if err := client.service.Call(ctx, task.ActionList, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create creates a task.
func (client *Client) Create(ctx context.Context, payload task.Payload) (task.Task, error) {
	var created task.Task
	err := client.service.Call(ctx, task.ActionCreate, map[string]any{"task": payload}, &created)
	return created, err
}

// Update replaces the mutable fields of task id.
func (client *Client) Update(ctx context.Context, id int64, payload task.Payload) (task.Task, error) {
	var updated task.Task
	err := client.service.Call(ctx, task.ActionUpdate, map[string]any{"id": id, "task": payload}, &updated)
	return updated, err
}

// Delete removes task id.
func (client *Client) Delete(ctx context.Context, id int64) error {
	return client.service.Call(ctx, task.ActionDelete, map[string]any{"id": id}, nil)
}

// Parse asks the service to turn transcript into a candidate task.
func (client *Client) Parse(ctx context.Context, transcript string) (task.Candidate, error) {
	var partial task.PartialTask
	if err := client.service.Call(ctx, task.ActionParse, map[string]any{"transcript": transcript}, &partial); err != nil {
		return task.Candidate{}, err
	}
	return partial.Candidate(), nil
}

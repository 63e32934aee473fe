// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"context"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// Gateway is the persistence collaborator. Implementations report a
// single error per call and never retry.
type Gateway interface {
	List(ctx context.Context) ([]task.Task, error)
	Create(ctx context.Context, payload task.Payload) (task.Task, error)
	Update(ctx context.Context, id int64, payload task.Payload) (task.Task, error)
	Delete(ctx context.Context, id int64) error
}

// Parser turns a transcript into a best-effort candidate task.
type Parser interface {
	Parse(ctx context.Context, transcript string) (task.Candidate, error)
}

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

type sampleTask struct {
	title       string
	description string
	priority    task.Priority
	status      task.Status
	// dueInDays is relative to the store clock's current date.
	dueInDays int
}

var sampleTasks = []sampleTask{
	{"Complete project proposal", "Write and submit the Q1 project proposal to stakeholders", task.PriorityHigh, task.StatusInProgress, 3},
	{"Review code changes", "Review pull requests from the team", task.PriorityMedium, task.StatusTodo, 1},
	{"Update documentation", "Update API documentation with new endpoints", task.PriorityLow, task.StatusTodo, 7},
	{"Fix bug in login flow", "Users reporting issues with password reset", task.PriorityUrgent, task.StatusInProgress, 0},
	{"Team meeting preparation", "Prepare slides for weekly team sync", task.PriorityMedium, task.StatusDone, -1},
	{"Database optimization", "Optimize slow queries in production", task.PriorityHigh, task.StatusTodo, 5},
}

// SeedIfEmpty inserts the sample tasks when the table has no rows and
// returns how many were inserted.
func (store *Store) SeedIfEmpty(ctx context.Context) (int, error) {
	today := task.DateOf(store.clock.Now())
	now := store.now()
	inserted := 0

	err := store.pool.WithConn(ctx, func(conn *sqlite.Conn) (err error) {
		defer sqlitex.Save(conn)(&err)

		var count int
		err = sqlitex.Execute(conn, `SELECT count(*) FROM tasks`, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt(0)
				return nil
			},
		})
		if err != nil || count > 0 {
			return err
		}

		for _, sample := range sampleTasks {
			due := today.AddDays(sample.dueInDays)
			payload := task.Payload{
				Title:       sample.title,
				Description: sample.description,
				Priority:    sample.priority,
				Status:      sample.status,
				DueDate:     &due,
			}
			err = sqlitex.Execute(conn,
				`INSERT INTO tasks (title, description, priority, status, due_date, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				&sqlitex.ExecOptions{Args: append(payloadArgs(payload), now, now)})
			if err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seeding sample tasks: %w", err)
	}
	if inserted > 0 {
		store.logger.Info("seeded sample tasks", "count", inserted)
	}
	return inserted, nil
}

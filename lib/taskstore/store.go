// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/taskdeck/taskdeck/lib/clock"
	"github.com/taskdeck/taskdeck/lib/schema/task"
	"github.com/taskdeck/taskdeck/lib/sqlitepool"
)

// Config describes where and how to open the store.
type Config struct {
	// Path is the SQLite database file.
	Path     string
	PoolSize int
	Clock    clock.Clock
	Logger   *slog.Logger
}

// Store is the SQLite-backed task collection. Safe for concurrent use.
type Store struct {
	pool   *sqlitepool.Pool
	clock  clock.Clock
	logger *slog.Logger
}

// Open opens (creating if needed) the database at cfg.Path.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	wallClock := cfg.Clock
	if wallClock == nil {
		wallClock = clock.Real()
	}

	pool, err := sqlitepool.Open(ctx, sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: cfg.PoolSize,
		Logger:   logger,
		Schema:   schema,
	})
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}
	return &Store{pool: pool, clock: wallClock, logger: logger}, nil
}

// Close closes the underlying pool.
func (store *Store) Close() error {
	return store.pool.Close()
}

// List returns every task, newest first.
func (store *Store) List(ctx context.Context) ([]task.Task, error) {
	tasks := []task.Task{}
	err := store.pool.WithConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT `+selectColumns+` FROM tasks ORDER BY created_at DESC, id DESC`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					row, err := scanTask(stmt)
					if err != nil {
						return err
					}
					tasks = append(tasks, row)
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Get returns one task or task.ErrNotFound.
func (store *Store) Get(ctx context.Context, id int64) (task.Task, error) {
	var found task.Task
	err := store.pool.WithConn(ctx, func(conn *sqlite.Conn) error {
		var err error
		found, err = getTask(conn, id)
		return err
	})
	if err != nil {
		return task.Task{}, fmt.Errorf("getting task %d: %w", id, err)
	}
	return found, nil
}

// Create inserts a task and returns it as stored.
func (store *Store) Create(ctx context.Context, payload task.Payload) (task.Task, error) {
	if err := payload.Validate(); err != nil {
		return task.Task{}, err
	}
	payload = payload.WithDefaults()
	now := store.now()

	var created task.Task
	err := store.pool.WithConn(ctx, func(conn *sqlite.Conn) (err error) {
		defer sqlitex.Save(conn)(&err)
		err = sqlitex.Execute(conn,
			`INSERT INTO tasks (title, description, priority, status, due_date, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: append(payloadArgs(payload), now, now)})
		if err != nil {
			return err
		}
		created, err = getTask(conn, conn.LastInsertRowID())
		return err
	})
	if err != nil {
		return task.Task{}, fmt.Errorf("creating task: %w", err)
	}
	store.logger.Info("task created", "task_id", created.ID, "title", created.Title)
	return created, nil
}

// Update replaces the mutable fields of task id. An empty priority or
// status in the payload resets that field to its default.
func (store *Store) Update(ctx context.Context, id int64, payload task.Payload) (task.Task, error) {
	if err := payload.Validate(); err != nil {
		return task.Task{}, err
	}
	payload = payload.WithDefaults()

	var updated task.Task
	err := store.pool.WithConn(ctx, func(conn *sqlite.Conn) (err error) {
		defer sqlitex.Save(conn)(&err)
		err = sqlitex.Execute(conn,
			`UPDATE tasks SET title = ?, description = ?, priority = ?, status = ?, due_date = ?, updated_at = ?
			 WHERE id = ?`,
			&sqlitex.ExecOptions{Args: append(payloadArgs(payload), store.now(), id)})
		if err != nil {
			return err
		}
		if conn.Changes() == 0 {
			return task.ErrNotFound
		}
		updated, err = getTask(conn, id)
		return err
	})
	if err != nil {
		return task.Task{}, fmt.Errorf("updating task %d: %w", id, err)
	}
	store.logger.Info("task updated", "task_id", id, "status", string(updated.Status))
	return updated, nil
}

// Delete removes task id.
func (store *Store) Delete(ctx context.Context, id int64) error {
	err := store.pool.WithConn(ctx, func(conn *sqlite.Conn) error {
		if err := sqlitex.Execute(conn, `DELETE FROM tasks WHERE id = ?`, &sqlitex.ExecOptions{Args: []any{id}}); err != nil {
			return err
		}
		if conn.Changes() == 0 {
			return task.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	store.logger.Info("task deleted", "task_id", id)
	return nil
}

func (store *Store) now() string {
	return store.clock.Now().UTC().Format(timestampLayout)
}

func payloadArgs(payload task.Payload) []any {
	var description, dueDate any
	if payload.Description != "" {
		description = payload.Description
	}
	if payload.DueDate != nil {
		dueDate = payload.DueDate.String()
	}
	return []any{payload.Title, description, string(payload.Priority), string(payload.Status), dueDate}
}

func getTask(conn *sqlite.Conn, id int64) (task.Task, error) {
	var found task.Task
	var ok bool
	err := sqlitex.Execute(conn, `SELECT `+selectColumns+` FROM tasks WHERE id = ?`, &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var err error
			found, err = scanTask(stmt)
			ok = err == nil
			return err
		},
	})
	if err != nil {
		return task.Task{}, err
	}
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	return found, nil
}

// scanTask reads a row selected with selectColumns.
func scanTask(stmt *sqlite.Stmt) (task.Task, error) {
	row := task.Task{
		ID:          stmt.ColumnInt64(0),
		Title:       stmt.ColumnText(1),
		Description: stmt.ColumnText(2),
	}
	var err error
	if row.Priority, err = task.ParsePriority(stmt.ColumnText(3)); err != nil {
		return task.Task{}, fmt.Errorf("task %d: %w", row.ID, err)
	}
	if row.Status, err = task.ParseStatus(stmt.ColumnText(4)); err != nil {
		return task.Task{}, fmt.Errorf("task %d: %w", row.ID, err)
	}
	if stmt.ColumnType(5) != sqlite.TypeNull {
		due, err := task.ParseDate(stmt.ColumnText(5))
		if err != nil {
			return task.Task{}, fmt.Errorf("task %d: %w", row.ID, err)
		}
		row.DueDate = &due
	}
	if row.CreatedAt, err = time.Parse(timestampLayout, stmt.ColumnText(6)); err != nil {
		return task.Task{}, fmt.Errorf("task %d created_at: %w", row.ID, err)
	}
	if row.UpdatedAt, err = time.Parse(timestampLayout, stmt.ColumnText(7)); err != nil {
		return task.Task{}, fmt.Errorf("task %d updated_at: %w", row.ID, err)
	}
	return row, nil
}

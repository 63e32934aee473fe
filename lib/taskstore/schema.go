// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL CHECK (length(trim(title)) > 0),
	description TEXT,
	priority    TEXT NOT NULL DEFAULT 'medium'
	            CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
	status      TEXT NOT NULL DEFAULT 'todo'
	            CHECK (status IN ('todo', 'in_progress', 'done')),
	due_date    TEXT,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks (priority);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks (due_date);
`

// timestampLayout is fixed width so that text ordering is time
// ordering.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

const selectColumns = `id, title, description, priority, status, due_date, created_at, updated_at`

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"github.com/taskdeck/taskdeck/lib/schema/task"
	"github.com/taskdeck/taskdeck/lib/tasksync"
)

func statusIndex(status task.Status) int {
	for index, candidate := range task.Statuses {
		if candidate == status {
			return index
		}
	}
	return 0
}

// columns groups the visible tasks by status, keeping their order.
func (model Model) columns() [][]task.Task {
	grouped := make([][]task.Task, len(task.Statuses))
	for _, visible := range model.state.Visible() {
		index := statusIndex(visible.Status)
		grouped[index] = append(grouped[index], visible)
	}
	return grouped
}

// selected returns the task under the cursor in the current layout.
func (model Model) selected() (task.Task, bool) {
	if model.state.View().Mode == tasksync.ModeBoard {
		column := model.columns()[model.column]
		row := model.rows[model.column]
		if row < 0 || row >= len(column) {
			return task.Task{}, false
		}
		return column[row], true
	}
	visible := model.state.Visible()
	if model.listRow < 0 || model.listRow >= len(visible) {
		return task.Task{}, false
	}
	return visible[model.listRow], true
}

func (model *Model) moveCursor(step int) {
	model.follow = followTarget{}
	if model.state.View().Mode == tasksync.ModeBoard {
		model.rows[model.column] += step
	} else {
		model.listRow += step
	}
	model.clampCursor()
	model.syncPanes()
}

func (model *Model) moveColumn(step int) {
	if model.state.View().Mode != tasksync.ModeBoard {
		return
	}
	model.follow = followTarget{}
	model.column = min(max(model.column+step, 0), len(task.Statuses)-1)
	model.syncPanes()
}

// clampCursor keeps both cursors inside the visible tasks and lands
// on a followed task once it shows up where it was expected.
func (model *Model) clampCursor() {
	columns := model.columns()
	visible := model.state.Visible()

	if model.follow.id != 0 {
		for index, candidate := range visible {
			if candidate.ID != model.follow.id {
				continue
			}
			if model.follow.status != "" && candidate.Status != model.follow.status {
				break
			}
			model.listRow = index
			model.column = statusIndex(candidate.Status)
			for row, inColumn := range columns[model.column] {
				if inColumn.ID == candidate.ID {
					model.rows[model.column] = row
				}
			}
			model.follow = followTarget{}
			break
		}
	}

	for index := range model.rows {
		model.rows[index] = clamp(model.rows[index], len(columns[index]))
	}
	model.listRow = clamp(model.listRow, len(visible))
}

func clamp(position, length int) int {
	if length == 0 {
		return 0
	}
	return min(max(position, 0), length-1)
}

// scrollWindow returns the first row to draw so that cursor stays
// within a window of height rows.
func scrollWindow(offset, cursor, height int) int {
	if height <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+height {
		return cursor - height + 1
	}
	return offset
}

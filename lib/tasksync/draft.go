// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"strings"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// Draft is an editable task, as shown in the task form or the voice
// review surface. An empty Priority or Status leaves the choice to
// persistence defaults.
type Draft struct {
	Title       string
	Description string
	Priority    task.Priority
	Status      task.Status
	DueDate     *task.Date
}

// DraftFromTask pre-fills a draft for editing an existing task.
func DraftFromTask(existing task.Task) Draft {
	payload := existing.Payload()
	return Draft{
		Title:       payload.Title,
		Description: payload.Description,
		Priority:    payload.Priority,
		Status:      payload.Status,
		DueDate:     payload.DueDate,
	}
}

// DraftFromCandidate pre-fills a draft from parser output. Unknown
// fields are left empty for the user to fill in.
func DraftFromCandidate(candidate task.Candidate) Draft {
	draft := Draft{
		Title:       strings.TrimSpace(candidate.Title.Or("")),
		Description: candidate.Description.Or(""),
		Priority:    candidate.Priority.Or(""),
		Status:      candidate.Status.Or(""),
	}
	if due, ok := candidate.DueDate.Get(); ok {
		draft.DueDate = &due
	}
	return draft
}

// Payload validates the draft and returns the request body for it.
func (draft Draft) Payload() (task.Payload, error) {
	payload := task.Payload{
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Priority:    draft.Priority,
		Status:      draft.Status,
	}
	if draft.DueDate != nil {
		due := *draft.DueDate
		payload.DueDate = &due
	}
	if err := payload.Validate(); err != nil {
		return task.Payload{}, err
	}
	return payload, nil
}

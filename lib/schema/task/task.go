// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by persistence when an update or delete names
// an ID that does not exist.
var ErrNotFound = errors.New("task not found")

// Priority is one of the four closed priority levels.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is applied by persistence when a payload omits one.
const DefaultPriority = PriorityMedium

// Priorities lists every priority from least to most pressing.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is one of the closed set.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ParsePriority validates a priority name.
func ParsePriority(value string) (Priority, error) {
	priority := Priority(value)
	if !priority.Valid() {
		return "", fmt.Errorf("unknown priority %q", value)
	}
	return priority, nil
}

// Status is the workflow column a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// DefaultStatus is applied by persistence when a payload omits one.
const DefaultStatus = StatusTodo

// Statuses lists every status in board column order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the closed set.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label is the human-readable column heading.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// ParseStatus validates a status name.
func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q", value)
	}
	return status, nil
}

// Task is a persisted work item as returned by the persistence
// collaborator.
type Task struct {
	// ID is assigned by persistence and is unique across the store.
	ID int64 `cbor:"id"`

	Title string `cbor:"title"`

	// Description is markdown. The empty string means the task has
	// no description.
	Description string `cbor:"description,omitempty"`

	Priority Priority `cbor:"priority"`
	Status   Status   `cbor:"status"`

	// DueDate is nil when the task has no due date.
	DueDate *Date `cbor:"due_date,omitempty"`

	CreatedAt time.Time `cbor:"created_at"`
	UpdatedAt time.Time `cbor:"updated_at"`
}

// HasDescription reports whether the task carries a description.
func (t Task) HasDescription() bool { return t.Description != "" }

// Payload returns the mutable fields of t, suitable for an update that
// changes nothing but what the caller edits afterwards.
func (t Task) Payload() Payload {
	payload := Payload{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
	}
	if t.DueDate != nil {
		due := *t.DueDate
		payload.DueDate = &due
	}
	return payload
}

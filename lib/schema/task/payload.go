// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"errors"
	"fmt"
	"strings"
)

// Payload is the task-shaped body of a create or update. Only Title is
// required; persistence fills the defaults for an empty Priority or
// Status.
type Payload struct {
	Title       string   `cbor:"title"`
	Description string   `cbor:"description,omitempty"`
	Priority    Priority `cbor:"priority,omitempty"`
	Status      Status   `cbor:"status,omitempty"`
	DueDate     *Date    `cbor:"due_date,omitempty"`
}

// ErrEmptyTitle is returned by Payload.Validate for a blank title.
var ErrEmptyTitle = errors.New("task payload: title is required")

// Validate checks the payload shape: a non-blank title and, when set,
// known priority and status values.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.Priority != "" && !p.Priority.Valid() {
		return fmt.Errorf("task payload: unknown priority %q", p.Priority)
	}
	if p.Status != "" && !p.Status.Valid() {
		return fmt.Errorf("task payload: unknown status %q", p.Status)
	}
	return nil
}

// WithDefaults returns p with the title trimmed and persistence
// defaults filled in for an empty Priority and Status.
func (p Payload) WithDefaults() Payload {
	p.Title = strings.TrimSpace(p.Title)
	if p.Priority == "" {
		p.Priority = DefaultPriority
	}
	if p.Status == "" {
		p.Status = DefaultStatus
	}
	return p
}

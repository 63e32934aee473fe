// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"strings"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// Criteria are the active filter predicates. A zero field imposes no
// constraint. Criteria are always replaced as a whole.
type Criteria struct {
	// Search is matched case-insensitively as a substring of the
	// title, or of the description when the task has one.
	Search string

	Status   task.Status
	Priority task.Priority
}

// IsZero reports whether the criteria constrain nothing.
func (criteria Criteria) IsZero() bool {
	return criteria == Criteria{}
}

// Matches reports whether a single task satisfies every set predicate.
func (criteria Criteria) Matches(candidate task.Task) bool {
	if criteria.Status != "" && candidate.Status != criteria.Status {
		return false
	}
	if criteria.Priority != "" && candidate.Priority != criteria.Priority {
		return false
	}
	if criteria.Search == "" {
		return true
	}
	query := strings.ToLower(criteria.Search)
	if strings.Contains(strings.ToLower(candidate.Title), query) {
		return true
	}
	return candidate.HasDescription() &&
		strings.Contains(strings.ToLower(candidate.Description), query)
}

// Apply returns the tasks matching criteria in their original order.
// The result is a new slice; tasks is not modified.
func Apply(tasks []task.Task, criteria Criteria) []task.Task {
	visible := make([]task.Task, 0, len(tasks))
	for _, candidate := range tasks {
		if criteria.Matches(candidate) {
			visible = append(visible, candidate)
		}
	}
	return visible
}

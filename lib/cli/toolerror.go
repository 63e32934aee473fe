// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// ErrorCategory classifies command errors so callers can decide
// between fixing input, retrying, and reporting.
type ErrorCategory string

const (
	// CategoryValidation: the caller supplied bad input or config.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: a referenced task does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryTransient: a timeout or unreachable service. Retrying
	// may succeed.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal: anything else.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error with an optional hint shown to the
// operator after the message.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is a remediation suggestion. Empty means none.
	Hint string
}

func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Categorize returns the category of err. An explicit ToolError in the
// chain wins; otherwise well-known sentinels are mapped and everything
// else is internal.
func Categorize(err error) ErrorCategory {
	var toolErr *ToolError
	switch {
	case errors.As(err, &toolErr):
		return toolErr.Category
	case errors.Is(err, task.ErrNotFound):
		return CategoryNotFound
	case errors.Is(err, task.ErrEmptyTitle):
		return CategoryValidation
	case errors.Is(err, context.DeadlineExceeded):
		return CategoryTransient
	}
	return CategoryInternal
}

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package task

// Optional holds a value that a parser either found or did not find.
// An unknown Optional and a known Optional holding the zero value are
// different answers: "nothing was said" versus "an empty value was
// said".
type Optional[T any] struct {
	Value T
	Known bool
}

// Some returns a known Optional.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Known: true}
}

// None returns an unknown Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is known.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Known
}

// Or returns the value if known, fallback otherwise.
func (o Optional[T]) Or(fallback T) T {
	if o.Known {
		return o.Value
	}
	return fallback
}

// Candidate is a best-effort task extracted from a transcript. Any
// field may be unknown, including Title.
type Candidate struct {
	Title       Optional[string]
	Description Optional[string]
	Priority    Optional[Priority]
	Status      Optional[Status]
	DueDate     Optional[Date]
}

// PartialTask is the wire form of a Candidate. A nil pointer is an
// unknown field.
type PartialTask struct {
	Title       *string   `cbor:"title,omitempty"`
	Description *string   `cbor:"description,omitempty"`
	Priority    *Priority `cbor:"priority,omitempty"`
	Status      *Status   `cbor:"status,omitempty"`
	DueDate     *Date     `cbor:"due_date,omitempty"`
}

// Candidate converts the wire form. Enum values outside the closed
// sets are treated as unknown rather than carried into review.
func (p PartialTask) Candidate() Candidate {
	var candidate Candidate
	if p.Title != nil {
		candidate.Title = Some(*p.Title)
	}
	if p.Description != nil {
		candidate.Description = Some(*p.Description)
	}
	if p.Priority != nil && p.Priority.Valid() {
		candidate.Priority = Some(*p.Priority)
	}
	if p.Status != nil && p.Status.Valid() {
		candidate.Status = Some(*p.Status)
	}
	if p.DueDate != nil {
		candidate.DueDate = Some(*p.DueDate)
	}
	return candidate
}

// Partial converts a Candidate to its wire form.
func (c Candidate) Partial() PartialTask {
	var partial PartialTask
	if value, ok := c.Title.Get(); ok {
		partial.Title = &value
	}
	if value, ok := c.Description.Get(); ok {
		partial.Description = &value
	}
	if value, ok := c.Priority.Get(); ok {
		partial.Priority = &value
	}
	if value, ok := c.Status.Get(); ok {
		partial.Status = &value
	}
	if value, ok := c.DueDate.Get(); ok {
		partial.DueDate = &value
	}
	return partial
}

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// Effect is I/O requested by Reduce.
type Effect interface {
	isEffect()
}

// FetchTasks reads the whole collection. Completes with
// RefreshCompleted.
type FetchTasks struct{}

// ApplyMutation sends a mutation to persistence. Completes with
// MutationCompleted.
type ApplyMutation struct {
	Mutation Mutation
}

// ParseTranscript hands a transcript to the parser. Completes with
// ParseCompleted.
type ParseTranscript struct {
	SessionID  uuid.UUID
	Transcript string
}

func (FetchTasks) isEffect()      {}
func (ApplyMutation) isEffect()   {}
func (ParseTranscript) isEffect() {}

// MutationKind selects the persistence operation.
type MutationKind int

const (
	MutationCreate MutationKind = iota + 1
	MutationUpdate
	MutationDelete
)

func (kind MutationKind) String() string {
	switch kind {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	case MutationDelete:
		return "delete"
	}
	return fmt.Sprintf("MutationKind(%d)", int(kind))
}

// Origin records which surface issued a mutation, so its completion
// can be routed back to that surface.
type Origin int

const (
	OriginDirect Origin = iota
	OriginForm
	OriginVoice
	OriginBoard
)

// Mutation is one persistence write.
type Mutation struct {
	// Seq is unique per State and increases with each mutation.
	Seq     uint64
	Kind    MutationKind
	ID      int64
	Payload task.Payload
	Origin  Origin
}

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// Mode is the presentation of the visible tasks.
type Mode int

const (
	// ModeBoard groups tasks into one column per status.
	ModeBoard Mode = iota
	// ModeList shows one row per task.
	ModeList
)

func (mode Mode) String() string {
	switch mode {
	case ModeBoard:
		return "board"
	case ModeList:
		return "list"
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// ParseMode accepts "board" or "list".
func ParseMode(value string) (Mode, error) {
	switch value {
	case "board", "kanban":
		return ModeBoard, nil
	case "list":
		return ModeList, nil
	}
	return 0, fmt.Errorf("unknown view mode %q (want board or list)", value)
}

// Modal identifies the overlay surface that currently has focus.
type Modal int

const (
	ModalNone Modal = iota
	ModalTaskForm
	ModalConfirmDelete
	ModalVoiceCapture
	ModalVoiceReview
)

// View is the presentation state. It never affects which tasks exist
// or which are visible.
type View struct {
	Mode  Mode
	Modal Modal

	// EditingID is the task the form or delete confirmation is about.
	// Zero while creating a new task or when no modal is open.
	EditingID int64
}

// Phase is the voice workflow position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCapturing
	PhaseParsing
	PhaseReviewing
	// PhaseConfirmed holds while the create request for the reviewed
	// draft is in flight.
	PhaseConfirmed
)

func (phase Phase) String() string {
	switch phase {
	case PhaseIdle:
		return "idle"
	case PhaseCapturing:
		return "capturing"
	case PhaseParsing:
		return "parsing"
	case PhaseReviewing:
		return "reviewing"
	case PhaseConfirmed:
		return "confirmed"
	}
	return fmt.Sprintf("Phase(%d)", int(phase))
}

// Session is the live voice session. It exists from the moment a
// transcript is handed to the parser until the reviewed task is
// created or the user cancels.
type Session struct {
	ID         uuid.UUID
	Transcript string

	// Candidate is what the parser extracted. Populated once the
	// session reaches Reviewing.
	Candidate task.Candidate

	// Draft is the human-editable form of the candidate.
	Draft Draft

	// mutation is the sequence number of the create request while
	// the session is Confirmed.
	mutation uint64
}

// FailureKind classifies a surfaced failure.
type FailureKind int

const (
	FetchFailure FailureKind = iota + 1
	MutationFailure
	ParseFailure
	ValidationRefusal
)

func (kind FailureKind) String() string {
	switch kind {
	case FetchFailure:
		return "fetch"
	case MutationFailure:
		return "mutation"
	case ParseFailure:
		return "parse"
	case ValidationRefusal:
		return "validation"
	}
	return fmt.Sprintf("FailureKind(%d)", int(kind))
}

// Notice is a failure shown to the user until dismissed or replaced.
type Notice struct {
	Kind    FailureKind
	Message string
	Err     error
}

// fetchFailureMessage is the user-facing text for a failed refresh.
const fetchFailureMessage = "Failed to load tasks. Please try again."

// State is the whole application state. The zero value is not ready;
// use New. Slices held by a State are never modified in place, so
// copies of a State may share them.
type State struct {
	tasks    []task.Task
	visible  []task.Task
	digest   Digest
	criteria Criteria

	// pendingFetches counts dispatched FetchTasks effects that have
	// not completed.
	pendingFetches int
	loaded         bool
	fetchErr       error
	duplicates     int

	view   View
	phase  Phase
	voice  *Session
	notice *Notice

	// formMutation is the sequence number of the in-flight form
	// submission, zero when none.
	formMutation uint64
	nextMutation uint64

	closed bool
}

// New returns the initial state: empty store, no criteria, no modal,
// voice workflow idle.
func New(mode Mode) State {
	return State{
		tasks:   []task.Task{},
		visible: []task.Task{},
		digest:  digestTasks(nil),
		view:    View{Mode: mode},
	}
}

// Tasks returns the canonical collection in persistence order.
func (state State) Tasks() []task.Task { return state.tasks }

// Visible returns the tasks that pass the active criteria.
func (state State) Visible() []task.Task { return state.visible }

// Criteria returns the active filter criteria.
func (state State) Criteria() Criteria { return state.criteria }

// Digest identifies the store contents. Two states hold identical
// collections exactly when their digests match.
func (state State) Digest() Digest { return state.digest }

// Task looks a task up by ID in the canonical collection.
func (state State) Task(id int64) (task.Task, bool) {
	for _, candidate := range state.tasks {
		if candidate.ID == id {
			return candidate, true
		}
	}
	return task.Task{}, false
}

// Loading reports whether a refresh is in flight.
func (state State) Loading() bool { return state.pendingFetches > 0 }

// Loaded reports whether at least one refresh has succeeded.
func (state State) Loaded() bool { return state.loaded }

// FetchError returns the error from the most recent refresh, or nil
// when it succeeded.
func (state State) FetchError() error { return state.fetchErr }

// DroppedDuplicates is the number of entries discarded from the last
// successful refresh because their ID had already been seen.
func (state State) DroppedDuplicates() int { return state.duplicates }

// View returns the presentation state.
func (state State) View() View { return state.view }

// Phase returns the voice workflow position.
func (state State) Phase() Phase { return state.phase }

// Voice returns a copy of the live voice session, if any.
func (state State) Voice() (Session, bool) {
	if state.voice == nil {
		return Session{}, false
	}
	return *state.voice, true
}

// Notice returns the failure awaiting the user's attention, if any.
func (state State) Notice() (Notice, bool) {
	if state.notice == nil {
		return Notice{}, false
	}
	return *state.notice, true
}

// FormPending reports whether a task form submission is in flight.
func (state State) FormPending() bool { return state.formMutation != 0 }

// Closed reports whether Shutdown has been applied.
func (state State) Closed() bool { return state.closed }

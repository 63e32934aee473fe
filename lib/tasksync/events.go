// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// Event is an input to Reduce: a user action or the completion of an
// effect.
type Event interface {
	isEvent()
}

// RefreshRequested asks for the collection to be fetched again.
type RefreshRequested struct{}

// RefreshCompleted carries the result of a FetchTasks effect.
type RefreshCompleted struct {
	Tasks []task.Task
	Err   error
}

// MutationRequested asks for a create, update, or delete. Create and
// update payloads are validated before anything is dispatched.
type MutationRequested struct {
	Kind    MutationKind
	ID      int64
	Payload task.Payload
}

// MutationCompleted carries the result of an ApplyMutation effect.
type MutationCompleted struct {
	Mutation Mutation

	// Task is the persisted task returned by create and update.
	Task task.Task
	Err  error
}

// CriteriaChanged replaces the active filter criteria.
type CriteriaChanged struct {
	Criteria Criteria
}

// ViewModeToggled flips between board and list.
type ViewModeToggled struct{}

// ViewModeSet selects a mode directly.
type ViewModeSet struct {
	Mode Mode
}

// FormOpened opens the task form. TaskID zero opens an empty form for
// a new task; otherwise the form edits that task.
type FormOpened struct {
	TaskID int64
}

// FormSubmitted submits the task form.
type FormSubmitted struct {
	Draft Draft
}

// FormClosed dismisses the task form without saving.
type FormClosed struct{}

// TaskMoved moves a task to another board column.
type TaskMoved struct {
	ID     int64
	Status task.Status
}

// DeleteRequested asks the user to confirm deleting a task.
type DeleteRequested struct {
	ID int64
}

// DeleteConfirmed deletes the task awaiting confirmation.
type DeleteConfirmed struct{}

// DeleteCancelled dismisses the confirmation.
type DeleteCancelled struct{}

// VoiceCaptureOpened opens the voice capture surface.
type VoiceCaptureOpened struct{}

// TranscriptReady hands a finished transcript to the workflow.
// SessionID names the session that will be created for it.
type TranscriptReady struct {
	SessionID  uuid.UUID
	Transcript string
}

// ParseCompleted carries the result of a ParseTranscript effect.
type ParseCompleted struct {
	SessionID uuid.UUID
	Candidate task.Candidate
	Err       error
}

// ReviewEdited replaces the reviewed draft.
type ReviewEdited struct {
	Draft Draft
}

// VoiceConfirmed commits the reviewed draft as a new task.
type VoiceConfirmed struct{}

// VoiceCancelled abandons the voice workflow.
type VoiceCancelled struct{}

// NoticeDismissed clears the displayed notice.
type NoticeDismissed struct{}

// Shutdown marks the state closed. Every later event is ignored.
type Shutdown struct{}

func (RefreshRequested) isEvent()   {}
func (RefreshCompleted) isEvent()   {}
func (MutationRequested) isEvent()  {}
func (MutationCompleted) isEvent()  {}
func (CriteriaChanged) isEvent()    {}
func (ViewModeToggled) isEvent()    {}
func (ViewModeSet) isEvent()        {}
func (FormOpened) isEvent()         {}
func (FormSubmitted) isEvent()      {}
func (FormClosed) isEvent()         {}
func (TaskMoved) isEvent()          {}
func (DeleteRequested) isEvent()    {}
func (DeleteConfirmed) isEvent()    {}
func (DeleteCancelled) isEvent()    {}
func (VoiceCaptureOpened) isEvent() {}
func (TranscriptReady) isEvent()    {}
func (ParseCompleted) isEvent()     {}
func (ReviewEdited) isEvent()       {}
func (VoiceConfirmed) isEvent()     {}
func (VoiceCancelled) isEvent()     {}
func (NoticeDismissed) isEvent()    {}
func (Shutdown) isEvent()           {}

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// Reduce applies event to state and returns the new state with the
// effects the caller must run. It performs no I/O and does not modify
// the slices held by the input state.
func Reduce(state State, event Event) (State, []Effect) {
	if state.closed {
		return state, nil
	}

	switch event := event.(type) {
	case RefreshRequested:
		return state.requestRefresh()
	case RefreshCompleted:
		return state.completeRefresh(event), nil
	case MutationRequested:
		return state.requestMutation(event.Kind, event.ID, event.Payload, OriginDirect)
	case MutationCompleted:
		return state.completeMutation(event)
	case CriteriaChanged:
		state.criteria = event.Criteria
		state.visible = Apply(state.tasks, state.criteria)
		return state, nil
	case ViewModeToggled:
		if state.view.Mode == ModeBoard {
			state.view.Mode = ModeList
		} else {
			state.view.Mode = ModeBoard
		}
		return state, nil
	case ViewModeSet:
		state.view.Mode = event.Mode
		return state, nil
	case FormOpened:
		return state.openForm(event.TaskID), nil
	case FormSubmitted:
		return state.submitForm(event.Draft)
	case FormClosed:
		if state.view.Modal == ModalTaskForm {
			state.view.Modal = ModalNone
			state.view.EditingID = 0
			state.formMutation = 0
		}
		return state, nil
	case TaskMoved:
		return state.moveTask(event.ID, event.Status)
	case DeleteRequested:
		if state.view.Modal != ModalNone {
			return state, nil
		}
		if _, ok := state.Task(event.ID); !ok {
			return state, nil
		}
		state.view.Modal = ModalConfirmDelete
		state.view.EditingID = event.ID
		return state, nil
	case DeleteConfirmed:
		if state.view.Modal != ModalConfirmDelete {
			return state, nil
		}
		id := state.view.EditingID
		state.view.Modal = ModalNone
		state.view.EditingID = 0
		return state.requestMutation(MutationDelete, id, task.Payload{}, OriginBoard)
	case DeleteCancelled:
		if state.view.Modal == ModalConfirmDelete {
			state.view.Modal = ModalNone
			state.view.EditingID = 0
		}
		return state, nil
	case VoiceCaptureOpened:
		return state.openVoiceCapture(), nil
	case TranscriptReady:
		return state.acceptTranscript(event)
	case ParseCompleted:
		return state.completeParse(event), nil
	case ReviewEdited:
		if state.phase == PhaseReviewing {
			session := *state.voice
			session.Draft = event.Draft
			state.voice = &session
		}
		return state, nil
	case VoiceConfirmed:
		return state.confirmVoice()
	case VoiceCancelled:
		return state.cancelVoice(), nil
	case NoticeDismissed:
		state.notice = nil
		return state, nil
	case Shutdown:
		state.closed = true
		return state, nil
	}
	return state, nil
}

func (state State) requestRefresh() (State, []Effect) {
	state.pendingFetches++
	return state, []Effect{FetchTasks{}}
}

// completeRefresh applies a fetch result. Every successful fetch
// replaces the collection, regardless of the order fetches were
// dispatched in.
func (state State) completeRefresh(event RefreshCompleted) State {
	if state.pendingFetches > 0 {
		state.pendingFetches--
	}

	if event.Err != nil {
		state.fetchErr = event.Err
		state.notice = &Notice{Kind: FetchFailure, Message: fetchFailureMessage, Err: event.Err}
		return state
	}

	tasks, duplicates := uniqueByID(event.Tasks)
	state.tasks = tasks
	state.duplicates = duplicates
	state.digest = digestTasks(tasks)
	state.visible = Apply(tasks, state.criteria)
	state.loaded = true
	state.fetchErr = nil
	if state.notice != nil && state.notice.Kind == FetchFailure {
		state.notice = nil
	}
	return state
}

// uniqueByID copies tasks, keeping the first entry for each ID.
func uniqueByID(tasks []task.Task) ([]task.Task, int) {
	seen := make(map[int64]struct{}, len(tasks))
	unique := make([]task.Task, 0, len(tasks))
	for _, candidate := range tasks {
		if _, exists := seen[candidate.ID]; exists {
			continue
		}
		seen[candidate.ID] = struct{}{}
		unique = append(unique, candidate)
	}
	return unique, len(tasks) - len(unique)
}

func (state State) requestMutation(kind MutationKind, id int64, payload task.Payload, origin Origin) (State, []Effect) {
	switch kind {
	case MutationCreate, MutationUpdate:
		if err := payload.Validate(); err != nil {
			state.notice = refusal(err)
			return state, nil
		}
	case MutationDelete:
	default:
		return state, nil
	}
	if kind != MutationCreate && id <= 0 {
		state.notice = &Notice{Kind: ValidationRefusal, Message: fmt.Sprintf("Cannot %s a task without an ID.", kind)}
		return state, nil
	}

	state.nextMutation++
	mutation := Mutation{
		Seq:     state.nextMutation,
		Kind:    kind,
		ID:      id,
		Payload: payload,
		Origin:  origin,
	}
	return state, []Effect{ApplyMutation{Mutation: mutation}}
}

// completeMutation routes the result back to the surface that issued
// it and always refreshes, so the store reflects what persistence did
// rather than what was requested.
func (state State) completeMutation(event MutationCompleted) (State, []Effect) {
	mutation := event.Mutation

	switch mutation.Origin {
	case OriginForm:
		if state.formMutation == mutation.Seq {
			state.formMutation = 0
			if event.Err == nil && state.view.Modal == ModalTaskForm {
				state.view.Modal = ModalNone
				state.view.EditingID = 0
			}
		}
	case OriginVoice:
		if state.voice != nil && state.phase == PhaseConfirmed && state.voice.mutation == mutation.Seq {
			if event.Err == nil {
				state.voice = nil
				state.phase = PhaseIdle
				state.view.Modal = ModalNone
			} else {
				session := *state.voice
				session.mutation = 0
				state.voice = &session
				state.phase = PhaseReviewing
			}
		}
	}

	if event.Err != nil {
		state.notice = &Notice{
			Kind:    MutationFailure,
			Message: fmt.Sprintf("Failed to %s task: %v", mutation.Kind, event.Err),
			Err:     event.Err,
		}
	}

	return state.requestRefresh()
}

func (state State) openForm(id int64) State {
	if state.view.Modal != ModalNone || state.phase != PhaseIdle {
		return state
	}
	if id != 0 {
		if _, ok := state.Task(id); !ok {
			return state
		}
	}
	state.view.Modal = ModalTaskForm
	state.view.EditingID = id
	return state
}

func (state State) submitForm(draft Draft) (State, []Effect) {
	if state.view.Modal != ModalTaskForm {
		return state, nil
	}
	payload, err := draft.Payload()
	if err != nil {
		state.notice = refusal(err)
		return state, nil
	}

	kind := MutationCreate
	if state.view.EditingID != 0 {
		kind = MutationUpdate
	}
	state, effects := state.requestMutation(kind, state.view.EditingID, payload, OriginForm)
	if len(effects) > 0 {
		state.formMutation = state.nextMutation
	}
	return state, effects
}

// moveTask re-sends the full task with a new status.
func (state State) moveTask(id int64, status task.Status) (State, []Effect) {
	existing, ok := state.Task(id)
	if !ok || !status.Valid() || existing.Status == status {
		return state, nil
	}
	payload := existing.Payload()
	payload.Status = status
	return state.requestMutation(MutationUpdate, id, payload, OriginBoard)
}

func refusal(err error) *Notice {
	message := err.Error()
	if errors.Is(err, task.ErrEmptyTitle) {
		message = "A task needs a title."
	}
	return &Notice{Kind: ValidationRefusal, Message: message, Err: err}
}

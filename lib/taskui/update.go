// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/lib/schema/task"
	"github.com/taskdeck/taskdeck/lib/tasksync"
)

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model.quit()
	}

	switch model.state.View().Modal {
	case tasksync.ModalTaskForm:
		return model.handleFormKeys(message)
	case tasksync.ModalConfirmDelete:
		return model.handleConfirmKeys(message)
	case tasksync.ModalVoiceCapture:
		return model.handleCaptureKeys(message)
	case tasksync.ModalVoiceReview:
		return model.handleReviewKeys(message)
	}
	if model.searching {
		return model.handleSearchKeys(message)
	}
	return model.handleMainKeys(message)
}

func (model Model) handleMainKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Quit):
		return model.quit()

	case key.Matches(message, keys.Dismiss):
		if _, ok := model.state.Notice(); ok {
			return model.dispatch(tasksync.NoticeDismissed{})
		}

	case key.Matches(message, keys.ToggleView):
		return model.dispatch(tasksync.ViewModeToggled{})

	case key.Matches(message, keys.NewTask):
		return model.dispatch(tasksync.FormOpened{})

	case key.Matches(message, keys.EditTask):
		if selected, ok := model.selected(); ok {
			return model.dispatch(tasksync.FormOpened{TaskID: selected.ID})
		}

	case key.Matches(message, keys.DeleteTask):
		if selected, ok := model.selected(); ok {
			return model.dispatch(tasksync.DeleteRequested{ID: selected.ID})
		}

	case key.Matches(message, keys.MoveBack):
		return model.moveSelected(-1)

	case key.Matches(message, keys.MoveForward):
		return model.moveSelected(1)

	case key.Matches(message, keys.Voice):
		return model.dispatch(tasksync.VoiceCaptureOpened{})

	case key.Matches(message, keys.Search):
		model.searching = true
		return model, model.search.Focus()

	case key.Matches(message, keys.CycleStatus):
		criteria := model.state.Criteria()
		criteria.Status = nextFilter(statusChoices, criteria.Status)
		return model.dispatch(tasksync.CriteriaChanged{Criteria: criteria})

	case key.Matches(message, keys.CyclePriority):
		criteria := model.state.Criteria()
		criteria.Priority = nextFilter(priorityChoices, criteria.Priority)
		return model.dispatch(tasksync.CriteriaChanged{Criteria: criteria})

	case key.Matches(message, keys.ClearFilters):
		model.search.SetValue("")
		return model.dispatch(tasksync.CriteriaChanged{})

	case key.Matches(message, keys.Refresh):
		return model.dispatch(tasksync.RefreshRequested{})

	case key.Matches(message, keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, keys.Down):
		model.moveCursor(1)
	case key.Matches(message, keys.Left):
		model.moveColumn(-1)
	case key.Matches(message, keys.Right):
		model.moveColumn(1)

	case key.Matches(message, keys.DetailPageUp):
		model.detail.HalfViewUp()
	case key.Matches(message, keys.DetailPageDown):
		model.detail.HalfViewDown()
	}
	return model, nil
}

// nextFilter steps a filter value through "" and each choice.
func nextFilter[T comparable](choices []T, current T) T {
	for index, choice := range choices {
		if choice == current {
			return choices[(index+1)%len(choices)]
		}
	}
	return choices[0]
}

// moveSelected moves the selected task one status along the board.
func (model Model) moveSelected(step int) (tea.Model, tea.Cmd) {
	selected, ok := model.selected()
	if !ok {
		return model, nil
	}
	index := statusIndex(selected.Status) + step
	if index < 0 || index >= len(task.Statuses) {
		return model, nil
	}
	target := task.Statuses[index]
	model.follow = followTarget{id: selected.ID, status: target}
	return model.dispatch(tasksync.TaskMoved{ID: selected.ID, Status: target})
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		if model.search.Value() != "" {
			model.search.SetValue("")
			return model.applySearch()
		}
		model.searching = false
		model.search.Blur()
		return model, nil
	case tea.KeyEnter:
		model.searching = false
		model.search.Blur()
		return model, nil
	}

	var cmd tea.Cmd
	model.search, cmd = model.search.Update(message)
	next, dispatched := model.applySearch()
	return next, tea.Batch(cmd, dispatched)
}

func (model Model) applySearch() (Model, tea.Cmd) {
	criteria := model.state.Criteria()
	if criteria.Search == model.search.Value() {
		return model, nil
	}
	criteria.Search = model.search.Value()
	return model.dispatch(tasksync.CriteriaChanged{Criteria: criteria})
}

// isSubmit reports whether a key submits a form. Enter inside the
// description inserts a newline instead.
func isSubmit(message tea.KeyMsg, form taskForm) bool {
	switch message.String() {
	case "ctrl+s":
		return true
	case "enter":
		return form.focus != fieldDescription
	}
	return false
}

func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyEsc {
		return model.dispatch(tasksync.FormClosed{})
	}
	if isSubmit(message, model.form) {
		if model.state.FormPending() {
			return model, nil
		}
		draft, err := model.form.draft()
		if err != nil {
			model.form.problem = err.Error()
			return model, nil
		}
		return model.dispatch(tasksync.FormSubmitted{Draft: draft})
	}
	var cmd tea.Cmd
	model.form, cmd = model.form.update(message)
	return model, cmd
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(message.String()) {
	case "y", "enter":
		return model.dispatch(tasksync.DeleteConfirmed{})
	case "n", "esc", "q":
		return model.dispatch(tasksync.DeleteCancelled{})
	}
	return model, nil
}

func (model Model) handleCaptureKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyEsc {
		return model.dispatch(tasksync.VoiceCancelled{})
	}
	if model.state.Phase() != tasksync.PhaseCapturing {
		return model, nil
	}
	if message.Type == tea.KeyEnter {
		transcript := strings.TrimSpace(model.capture.Value())
		if transcript == "" {
			return model, nil
		}
		return model.dispatch(tasksync.TranscriptReady{SessionID: uuid.New(), Transcript: transcript})
	}
	var cmd tea.Cmd
	model.capture, cmd = model.capture.Update(message)
	return model, cmd
}

func (model Model) handleReviewKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.state.Phase() != tasksync.PhaseReviewing {
		return model, nil
	}
	if message.Type == tea.KeyEsc {
		return model.dispatch(tasksync.VoiceCancelled{})
	}
	if isSubmit(message, model.form) {
		draft, err := model.form.draft()
		if err != nil {
			model.form.problem = err.Error()
			return model, nil
		}
		return model.dispatch(tasksync.ReviewEdited{Draft: draft}, tasksync.VoiceConfirmed{})
	}
	var cmd tea.Cmd
	model.form, cmd = model.form.update(message)
	return model, cmd
}

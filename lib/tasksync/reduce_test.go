// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"errors"
	"slices"
	"testing"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

func TestRefreshReplacesCollection(t *testing.T) {
	state, effects := Reduce(New(ModeBoard), RefreshRequested{})
	onlyEffect[FetchTasks](t, effects)
	if !state.Loading() {
		t.Error("Loading() = false after RefreshRequested")
	}

	state, effects = Reduce(state, RefreshCompleted{Tasks: sampleTasks()})
	if len(effects) != 0 {
		t.Errorf("RefreshCompleted emitted effects: %v", effects)
	}
	if state.Loading() {
		t.Error("Loading() = true after completion")
	}
	if !state.Loaded() {
		t.Error("Loaded() = false after successful refresh")
	}
	if got := ids(state.Tasks()); !slices.Equal(got, []int64{1, 2, 3, 4, 5}) {
		t.Errorf("Tasks() = %v", got)
	}
	if got := ids(state.Visible()); !slices.Equal(got, []int64{1, 2, 3, 4, 5}) {
		t.Errorf("Visible() = %v", got)
	}
}

func TestRefreshFailureKeepsLastKnownGood(t *testing.T) {
	state := loadedState(sampleTasks()...)
	before := state.Digest()

	state, _ = reduceAll(state, RefreshRequested{}, RefreshCompleted{Err: errBackend})

	if state.Digest() != before {
		t.Error("failed refresh changed the store")
	}
	if len(state.Tasks()) != 5 {
		t.Errorf("Tasks() has %d entries, want 5", len(state.Tasks()))
	}
	if !errors.Is(state.FetchError(), errBackend) {
		t.Errorf("FetchError() = %v, want %v", state.FetchError(), errBackend)
	}
	if state.Loading() {
		t.Error("Loading() = true after failed refresh")
	}
	notice, ok := state.Notice()
	if !ok || notice.Kind != FetchFailure {
		t.Fatalf("Notice() = %+v, %v; want fetch failure", notice, ok)
	}
	if notice.Message != "Failed to load tasks. Please try again." {
		t.Errorf("notice message = %q", notice.Message)
	}

	state, _ = reduceAll(state, RefreshRequested{}, RefreshCompleted{Tasks: sampleTasks()[:2]})
	if state.FetchError() != nil {
		t.Errorf("FetchError() = %v after successful retry", state.FetchError())
	}
	if _, ok := state.Notice(); ok {
		t.Error("fetch notice survived a successful retry")
	}
	if len(state.Tasks()) != 2 {
		t.Errorf("Tasks() has %d entries, want 2", len(state.Tasks()))
	}
}

func TestRefreshTwiceIsIdempotent(t *testing.T) {
	gateway := newMemoryGateway(sampleTasks()...)
	runner := NewRunner(gateway, nil, Timeouts{}, nil)

	first := settle(t, runner, New(ModeList), RefreshRequested{})
	second := settle(t, runner, first, RefreshRequested{})

	if first.Digest() != second.Digest() {
		t.Errorf("digest changed between refreshes: %s != %s", first.Digest().Short(), second.Digest().Short())
	}
	if !slices.EqualFunc(first.Tasks(), second.Tasks(), func(a, b task.Task) bool { return a == b }) {
		t.Error("task snapshot changed between refreshes")
	}
}

func TestRefreshDropsDuplicateIDs(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Title: "first"},
		{ID: 2, Title: "second"},
		{ID: 1, Title: "shadow"},
	}
	state := loadedState(tasks...)

	if got := ids(state.Tasks()); !slices.Equal(got, []int64{1, 2}) {
		t.Fatalf("Tasks() = %v, want [1 2]", got)
	}
	if first, _ := state.Task(1); first.Title != "first" {
		t.Errorf("kept %q, want the first occurrence", first.Title)
	}
	if state.DroppedDuplicates() != 1 {
		t.Errorf("DroppedDuplicates() = %d, want 1", state.DroppedDuplicates())
	}
}

func TestMutationAlwaysRefreshesAndNeverPatches(t *testing.T) {
	for _, failure := range []error{nil, errBackend} {
		state := loadedState(sampleTasks()...)
		before := state.Digest()

		state, effects := Reduce(state, MutationRequested{Kind: MutationDelete, ID: 2})
		apply := onlyEffect[ApplyMutation](t, effects)
		if apply.Mutation.Kind != MutationDelete || apply.Mutation.ID != 2 {
			t.Fatalf("mutation = %+v", apply.Mutation)
		}
		if state.Digest() != before {
			t.Error("store changed before the mutation completed")
		}

		state, effects = Reduce(state, MutationCompleted{Mutation: apply.Mutation, Err: failure})
		onlyEffect[FetchTasks](t, effects)
		if state.Digest() != before {
			t.Error("store patched locally on mutation completion")
		}

		notice, hasNotice := state.Notice()
		if failure == nil && hasNotice {
			t.Errorf("successful mutation raised notice %+v", notice)
		}
		if failure != nil && (!hasNotice || notice.Kind != MutationFailure) {
			t.Errorf("failed mutation notice = %+v, %v", notice, hasNotice)
		}
	}
}

func TestDeleteThenRefreshEmptiesStore(t *testing.T) {
	gateway := newMemoryGateway(task.Task{ID: 1, Title: "Buy milk", Priority: task.PriorityMedium, Status: task.StatusTodo})
	runner := NewRunner(gateway, nil, Timeouts{}, nil)

	state := settle(t, runner, New(ModeBoard), RefreshRequested{})
	if len(state.Tasks()) != 1 {
		t.Fatalf("initial store has %d tasks", len(state.Tasks()))
	}

	state = settle(t, runner, state, MutationRequested{Kind: MutationDelete, ID: 1})
	if len(state.Tasks()) != 0 {
		t.Errorf("store after delete = %v, want empty", ids(state.Tasks()))
	}
	if len(state.Visible()) != 0 {
		t.Errorf("visible after delete = %v, want empty", ids(state.Visible()))
	}
}

func TestOverlappingMutationsLastRefreshWins(t *testing.T) {
	state := loadedState()

	state, effects := Reduce(state, MutationRequested{Kind: MutationCreate, Payload: task.Payload{Title: "A"}})
	mutationA := onlyEffect[ApplyMutation](t, effects).Mutation
	state, effects = Reduce(state, MutationRequested{Kind: MutationCreate, Payload: task.Payload{Title: "B"}})
	mutationB := onlyEffect[ApplyMutation](t, effects).Mutation
	if mutationA.Seq == mutationB.Seq {
		t.Fatal("mutations share a sequence number")
	}

	// A resolves, then B; each dispatches its own refresh afterwards.
	state, effects = Reduce(state, MutationCompleted{Mutation: mutationA, Task: task.Task{ID: 1, Title: "A"}})
	onlyEffect[FetchTasks](t, effects)
	state, effects = Reduce(state, MutationCompleted{Mutation: mutationB, Task: task.Task{ID: 2, Title: "B"}})
	onlyEffect[FetchTasks](t, effects)
	if !state.Loading() {
		t.Fatal("Loading() = false with two refreshes in flight")
	}

	afterBoth := []task.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	afterA := []task.Task{{ID: 1, Title: "A"}}

	// The refresh dispatched after B completes first; the one after A
	// completes last and is authoritative.
	state, _ = Reduce(state, RefreshCompleted{Tasks: afterBoth})
	if !state.Loading() {
		t.Error("Loading() = false with one refresh still in flight")
	}
	state, _ = Reduce(state, RefreshCompleted{Tasks: afterA})

	if got := ids(state.Tasks()); !slices.Equal(got, []int64{1}) {
		t.Errorf("Tasks() = %v, want the last completed snapshot [1]", got)
	}
	if state.Digest() != digestTasks(afterA) {
		t.Error("digest does not match the last completed snapshot")
	}
	if state.Loading() {
		t.Error("Loading() = true after both refreshes completed")
	}
}

func TestCreateWithEmptyTitleIsRefused(t *testing.T) {
	state, effects := Reduce(loadedState(), MutationRequested{Kind: MutationCreate, Payload: task.Payload{Title: "  "}})
	if len(effects) != 0 {
		t.Fatalf("refused create emitted effects: %v", effects)
	}
	notice, ok := state.Notice()
	if !ok || notice.Kind != ValidationRefusal {
		t.Errorf("Notice() = %+v, %v; want validation refusal", notice, ok)
	}
}

func TestCriteriaAndRefreshBothRecomputeVisible(t *testing.T) {
	state := loadedState(sampleTasks()...)

	state, _ = Reduce(state, CriteriaChanged{Criteria: Criteria{Status: task.StatusTodo}})
	if got := ids(state.Visible()); !slices.Equal(got, []int64{1, 4}) {
		t.Errorf("after criteria change Visible() = %v, want [1 4]", got)
	}

	refreshed := append(sampleTasks(), task.Task{ID: 6, Title: "New todo", Status: task.StatusTodo})
	state, _ = reduceAll(state, RefreshRequested{}, RefreshCompleted{Tasks: refreshed})
	if got := ids(state.Visible()); !slices.Equal(got, []int64{1, 4, 6}) {
		t.Errorf("after refresh Visible() = %v, want [1 4 6]", got)
	}

	// Criteria are replaced, not merged.
	state, _ = Reduce(state, CriteriaChanged{Criteria: Criteria{Priority: task.PriorityHigh}})
	if got := state.Criteria(); got.Status != "" {
		t.Errorf("status constraint survived replacement: %+v", got)
	}
	if got := ids(state.Visible()); !slices.Equal(got, []int64{1, 5}) {
		t.Errorf("after replacement Visible() = %v, want [1 5]", got)
	}
}

func TestViewModeTogglePreservesData(t *testing.T) {
	state := loadedState(sampleTasks()...)
	state, _ = Reduce(state, CriteriaChanged{Criteria: Criteria{Search: "report"}})
	digest := state.Digest()
	visible := ids(state.Visible())

	state, effects := Reduce(state, ViewModeToggled{})
	if len(effects) != 0 {
		t.Errorf("toggle emitted effects: %v", effects)
	}
	if state.View().Mode != ModeList {
		t.Errorf("Mode = %s, want list", state.View().Mode)
	}
	if state.Digest() != digest || !slices.Equal(ids(state.Visible()), visible) {
		t.Error("toggle changed tasks or visible set")
	}
	if state.Criteria().Search != "report" {
		t.Errorf("toggle changed criteria: %+v", state.Criteria())
	}

	state, _ = Reduce(state, ViewModeToggled{})
	if state.View().Mode != ModeBoard {
		t.Errorf("second toggle Mode = %s, want board", state.View().Mode)
	}
	state, _ = Reduce(state, ViewModeSet{Mode: ModeList})
	if state.View().Mode != ModeList {
		t.Errorf("ViewModeSet Mode = %s, want list", state.View().Mode)
	}
}

func TestTaskFormCreateLifecycle(t *testing.T) {
	state := loadedState(sampleTasks()...)

	state, _ = Reduce(state, FormOpened{})
	if state.View().Modal != ModalTaskForm || state.View().EditingID != 0 {
		t.Fatalf("View() = %+v after FormOpened", state.View())
	}

	state, effects := Reduce(state, FormSubmitted{Draft: Draft{Title: ""}})
	if len(effects) != 0 {
		t.Fatalf("blank title submitted: %v", effects)
	}
	if state.View().Modal != ModalTaskForm {
		t.Error("refused submission closed the form")
	}

	state, effects = Reduce(state, FormSubmitted{Draft: Draft{Title: "Ship it", Priority: task.PriorityHigh}})
	mutation := onlyEffect[ApplyMutation](t, effects).Mutation
	if mutation.Kind != MutationCreate || mutation.Origin != OriginForm {
		t.Fatalf("mutation = %+v", mutation)
	}
	if !state.FormPending() {
		t.Error("FormPending() = false while create in flight")
	}

	failed, _ := Reduce(state, MutationCompleted{Mutation: mutation, Err: errBackend})
	if failed.View().Modal != ModalTaskForm {
		t.Error("failed create closed the form")
	}
	if failed.FormPending() {
		t.Error("FormPending() = true after completion")
	}

	succeeded, effects := Reduce(state, MutationCompleted{Mutation: mutation, Task: task.Task{ID: 9, Title: "Ship it"}})
	onlyEffect[FetchTasks](t, effects)
	if succeeded.View().Modal != ModalNone {
		t.Errorf("Modal = %v after successful create, want none", succeeded.View().Modal)
	}
}

func TestTaskFormEditUpdatesTask(t *testing.T) {
	state := loadedState(sampleTasks()...)

	state, _ = Reduce(state, FormOpened{TaskID: 3})
	if state.View().EditingID != 3 {
		t.Fatalf("EditingID = %d, want 3", state.View().EditingID)
	}
	existing, _ := state.Task(3)
	draft := DraftFromTask(existing)
	draft.Status = task.StatusDone

	_, effects := Reduce(state, FormSubmitted{Draft: draft})
	mutation := onlyEffect[ApplyMutation](t, effects).Mutation
	if mutation.Kind != MutationUpdate || mutation.ID != 3 {
		t.Fatalf("mutation = %+v, want update of 3", mutation)
	}
	if mutation.Payload.Status != task.StatusDone || mutation.Payload.Title != existing.Title {
		t.Errorf("payload = %+v", mutation.Payload)
	}

	if unknown, _ := Reduce(loadedState(sampleTasks()...), FormOpened{TaskID: 99}); unknown.View().Modal != ModalNone {
		t.Error("form opened for a task that does not exist")
	}
}

func TestTaskMovedSendsFullTask(t *testing.T) {
	due := task.Date{Year: 2026, Month: 4, Day: 1}
	original := task.Task{ID: 7, Title: "Deploy", Description: "prod", Priority: task.PriorityUrgent, Status: task.StatusTodo, DueDate: &due}
	state := loadedState(original)

	_, effects := Reduce(state, TaskMoved{ID: 7, Status: task.StatusInProgress})
	mutation := onlyEffect[ApplyMutation](t, effects).Mutation
	if mutation.Kind != MutationUpdate || mutation.Origin != OriginBoard {
		t.Fatalf("mutation = %+v", mutation)
	}
	want := task.Payload{Title: "Deploy", Description: "prod", Priority: task.PriorityUrgent, Status: task.StatusInProgress, DueDate: &due}
	got := mutation.Payload
	if got.Title != want.Title || got.Description != want.Description || got.Priority != want.Priority ||
		got.Status != want.Status || got.DueDate == nil || *got.DueDate != due {
		t.Errorf("payload = %+v, want %+v", got, want)
	}

	for _, event := range []Event{
		TaskMoved{ID: 7, Status: task.StatusTodo},
		TaskMoved{ID: 8, Status: task.StatusDone},
		TaskMoved{ID: 7, Status: "blocked"},
	} {
		if _, effects := Reduce(state, event); len(effects) != 0 {
			t.Errorf("%+v emitted %v, want nothing", event, effects)
		}
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	state := loadedState(sampleTasks()...)

	state, effects := Reduce(state, DeleteRequested{ID: 2})
	if len(effects) != 0 {
		t.Fatal("DeleteRequested dispatched before confirmation")
	}
	if state.View().Modal != ModalConfirmDelete || state.View().EditingID != 2 {
		t.Fatalf("View() = %+v", state.View())
	}

	cancelled, effects := Reduce(state, DeleteCancelled{})
	if len(effects) != 0 || cancelled.View().Modal != ModalNone {
		t.Errorf("cancel: modal %v effects %v", cancelled.View().Modal, effects)
	}

	confirmed, effects := Reduce(state, DeleteConfirmed{})
	mutation := onlyEffect[ApplyMutation](t, effects).Mutation
	if mutation.Kind != MutationDelete || mutation.ID != 2 {
		t.Errorf("mutation = %+v", mutation)
	}
	if confirmed.View().Modal != ModalNone {
		t.Error("confirmation dialog still open")
	}
}

func TestShutdownIgnoresLateResults(t *testing.T) {
	state := loadedState(sampleTasks()...)
	state, _ = reduceAll(state, RefreshRequested{}, Shutdown{})
	before := state.Digest()

	state, effects := Reduce(state, RefreshCompleted{Tasks: nil})
	if len(effects) != 0 {
		t.Errorf("closed state emitted effects: %v", effects)
	}
	if state.Digest() != before {
		t.Error("closed state applied a late refresh")
	}
	if !state.Closed() {
		t.Error("Closed() = false")
	}
}

func TestNoticeDismissed(t *testing.T) {
	state, _ := reduceAll(loadedState(), RefreshRequested{}, RefreshCompleted{Err: errBackend})
	if _, ok := state.Notice(); !ok {
		t.Fatal("expected a notice")
	}
	state, _ = Reduce(state, NoticeDismissed{})
	if _, ok := state.Notice(); ok {
		t.Error("notice survived dismissal")
	}
	if state.FetchError() == nil {
		t.Error("dismissing the notice cleared the fetch error")
	}
}

func TestParseMode(t *testing.T) {
	if mode, err := ParseMode("list"); err != nil || mode != ModeList {
		t.Errorf("ParseMode(list) = %v, %v", mode, err)
	}
	if mode, err := ParseMode("kanban"); err != nil || mode != ModeBoard {
		t.Errorf("ParseMode(kanban) = %v, %v", mode, err)
	}
	if _, err := ParseMode("grid"); err == nil {
		t.Error("ParseMode(grid) succeeded")
	}
}

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

func reviewingState(t *testing.T, candidate task.Candidate) State {
	t.Helper()
	state, _ := reduceAll(loadedState(),
		VoiceCaptureOpened{},
		TranscriptReady{SessionID: testSession, Transcript: "something"},
		ParseCompleted{SessionID: testSession, Candidate: candidate},
	)
	if state.Phase() != PhaseReviewing {
		t.Fatalf("Phase() = %s, want reviewing", state.Phase())
	}
	return state
}

func TestCancelFromIdleIsNoop(t *testing.T) {
	state := loadedState(sampleTasks()...)
	after, effects := Reduce(state, VoiceCancelled{})
	if len(effects) != 0 {
		t.Errorf("effects = %v", effects)
	}
	if after.Phase() != PhaseIdle || after.View() != state.View() {
		t.Errorf("state changed: phase %s view %+v", after.Phase(), after.View())
	}
	if _, ok := after.Voice(); ok {
		t.Error("session appeared")
	}
}

func TestVoiceTranscriptToConfirmedTask(t *testing.T) {
	tomorrow := task.Date{Year: 2026, Month: time.October, Day: 16}
	parser := &stubParser{candidate: task.Candidate{
		Title:   task.Some("Call mom"),
		DueDate: task.Some(tomorrow),
	}}
	gateway := newMemoryGateway()
	runner := NewRunner(gateway, parser, Timeouts{}, nil)

	state := settle(t, runner, New(ModeBoard), RefreshRequested{})
	state = settle(t, runner, state, VoiceCaptureOpened{})
	if state.Phase() != PhaseCapturing || state.View().Modal != ModalVoiceCapture {
		t.Fatalf("after open: phase %s modal %v", state.Phase(), state.View().Modal)
	}
	if _, ok := state.Voice(); ok {
		t.Fatal("session exists before a transcript is ready")
	}

	state, effects := Reduce(state, TranscriptReady{SessionID: testSession, Transcript: "remind me to call mom tomorrow"})
	parse := onlyEffect[ParseTranscript](t, effects)
	if parse.Transcript != "remind me to call mom tomorrow" || parse.SessionID != testSession {
		t.Fatalf("parse effect = %+v", parse)
	}
	if state.Phase() != PhaseParsing {
		t.Fatalf("Phase() = %s, want parsing", state.Phase())
	}

	state, _ = Reduce(state, runner.Run(t.Context(), parse))
	session, ok := state.Voice()
	if !ok || state.Phase() != PhaseReviewing || state.View().Modal != ModalVoiceReview {
		t.Fatalf("after parse: phase %s modal %v session %v", state.Phase(), state.View().Modal, ok)
	}
	if session.Draft.Title != "Call mom" {
		t.Errorf("draft title = %q", session.Draft.Title)
	}
	if session.Draft.DueDate == nil || *session.Draft.DueDate != tomorrow {
		t.Errorf("draft due date = %v", session.Draft.DueDate)
	}
	if session.Draft.Priority != "" {
		t.Errorf("draft priority = %q, want empty", session.Draft.Priority)
	}
	if session.Candidate.Priority.Known {
		t.Error("candidate priority should stay unknown")
	}

	draft := session.Draft
	draft.Priority = task.PriorityLow
	state = settle(t, runner, state, ReviewEdited{Draft: draft})
	state = settle(t, runner, state, VoiceConfirmed{})

	if len(gateway.creates) != 1 {
		t.Fatalf("gateway saw %d creates, want 1", len(gateway.creates))
	}
	sent := gateway.creates[0]
	if sent.Title != "Call mom" || sent.Priority != task.PriorityLow || sent.DueDate == nil || *sent.DueDate != tomorrow {
		t.Errorf("create payload = %+v", sent)
	}
	if sent.Status != "" {
		t.Errorf("create payload status = %q, want left to persistence", sent.Status)
	}

	if state.Phase() != PhaseIdle || state.View().Modal != ModalNone {
		t.Errorf("after confirm: phase %s modal %v", state.Phase(), state.View().Modal)
	}
	if _, ok := state.Voice(); ok {
		t.Error("session survived confirmation")
	}
	if len(state.Tasks()) != 1 || state.Tasks()[0].Title != "Call mom" {
		t.Errorf("store after confirm = %+v", state.Tasks())
	}
}

func TestParseFailureReturnsToIdle(t *testing.T) {
	state, _ := reduceAll(loadedState(),
		VoiceCaptureOpened{},
		TranscriptReady{SessionID: testSession, Transcript: "mumble"},
		ParseCompleted{SessionID: testSession, Err: errBackend},
	)
	if state.Phase() != PhaseIdle {
		t.Errorf("Phase() = %s, want idle", state.Phase())
	}
	if _, ok := state.Voice(); ok {
		t.Error("session survived parse failure")
	}
	if state.View().Modal != ModalNone {
		t.Errorf("Modal = %v, want none", state.View().Modal)
	}
	notice, ok := state.Notice()
	if !ok || notice.Kind != ParseFailure {
		t.Errorf("Notice() = %+v, %v; want parse failure", notice, ok)
	}
}

func TestCandidateWithoutTitleStillReachesReview(t *testing.T) {
	state := reviewingState(t, task.Candidate{Priority: task.Some(task.PriorityUrgent)})

	session, _ := state.Voice()
	if session.Draft.Title != "" || session.Draft.Priority != task.PriorityUrgent {
		t.Errorf("draft = %+v", session.Draft)
	}

	state, effects := Reduce(state, VoiceConfirmed{})
	if len(effects) != 0 {
		t.Fatalf("confirm with empty title emitted %v", effects)
	}
	if state.Phase() != PhaseReviewing {
		t.Errorf("Phase() = %s, want reviewing", state.Phase())
	}
	notice, ok := state.Notice()
	if !ok || notice.Kind != ValidationRefusal {
		t.Errorf("Notice() = %+v, %v; want validation refusal", notice, ok)
	}

	draft := session.Draft
	draft.Title = "   "
	state, _ = Reduce(state, ReviewEdited{Draft: draft})
	if state, effects = Reduce(state, VoiceConfirmed{}); len(effects) != 0 || state.Phase() != PhaseReviewing {
		t.Errorf("blank title: phase %s effects %v", state.Phase(), effects)
	}
}

func TestOnlyOneVoiceSession(t *testing.T) {
	state, _ := reduceAll(loadedState(),
		VoiceCaptureOpened{},
		TranscriptReady{SessionID: testSession, Transcript: "first"},
	)

	again, effects := Reduce(state, VoiceCaptureOpened{})
	if len(effects) != 0 || again.Phase() != PhaseParsing {
		t.Errorf("second capture: phase %s effects %v", again.Phase(), effects)
	}

	other := uuid.MustParse("0d7c6b5a-4938-4271-8e6f-5a4b3c2d1e0f")
	_, effects = Reduce(state, TranscriptReady{SessionID: other, Transcript: "second"})
	if len(effects) != 0 {
		t.Errorf("second transcript started a parse: %v", effects)
	}

	if formed, _ := Reduce(state, FormOpened{}); formed.View().Modal != ModalVoiceCapture {
		t.Error("task form opened over an active voice session")
	}

	withForm, _ := Reduce(loadedState(), FormOpened{})
	if blocked, _ := Reduce(withForm, VoiceCaptureOpened{}); blocked.Phase() != PhaseIdle {
		t.Error("voice capture opened over the task form")
	}
}

func TestCancelDropsLateParseResult(t *testing.T) {
	state, _ := reduceAll(loadedState(),
		VoiceCaptureOpened{},
		TranscriptReady{SessionID: testSession, Transcript: "buy bread"},
		VoiceCancelled{},
	)
	if state.Phase() != PhaseIdle {
		t.Fatalf("Phase() = %s after cancel", state.Phase())
	}

	state, effects := Reduce(state, ParseCompleted{SessionID: testSession, Candidate: task.Candidate{Title: task.Some("Buy bread")}})
	if len(effects) != 0 || state.Phase() != PhaseIdle || state.View().Modal != ModalNone {
		t.Errorf("late result applied: phase %s modal %v", state.Phase(), state.View().Modal)
	}

	// A new session ignores results addressed to the old one.
	fresh := uuid.MustParse("0d7c6b5a-4938-4271-8e6f-5a4b3c2d1e0f")
	state, _ = reduceAll(state, VoiceCaptureOpened{}, TranscriptReady{SessionID: fresh, Transcript: "walk dog"})
	state, _ = Reduce(state, ParseCompleted{SessionID: testSession, Candidate: task.Candidate{Title: task.Some("Buy bread")}})
	if state.Phase() != PhaseParsing {
		t.Errorf("stale result moved the new session to %s", state.Phase())
	}
}

func TestCancelFromEachActivePhase(t *testing.T) {
	capturing, _ := Reduce(loadedState(), VoiceCaptureOpened{})
	parsing, _ := Reduce(capturing, TranscriptReady{SessionID: testSession, Transcript: "x"})
	reviewing := reviewingState(t, task.Candidate{Title: task.Some("X")})

	for name, state := range map[string]State{"capturing": capturing, "parsing": parsing, "reviewing": reviewing} {
		after, effects := Reduce(state, VoiceCancelled{})
		if len(effects) != 0 {
			t.Errorf("%s: cancel emitted %v", name, effects)
		}
		if after.Phase() != PhaseIdle || after.View().Modal != ModalNone {
			t.Errorf("%s: phase %s modal %v", name, after.Phase(), after.View().Modal)
		}
		if _, ok := after.Voice(); ok {
			t.Errorf("%s: session survived cancel", name)
		}
	}
}

func TestConfirmFailureReturnsToReview(t *testing.T) {
	state := reviewingState(t, task.Candidate{Title: task.Some("Water plants")})

	state, effects := Reduce(state, VoiceConfirmed{})
	mutation := onlyEffect[ApplyMutation](t, effects).Mutation
	if mutation.Origin != OriginVoice || mutation.Kind != MutationCreate {
		t.Fatalf("mutation = %+v", mutation)
	}
	if state.Phase() != PhaseConfirmed {
		t.Fatalf("Phase() = %s, want confirmed", state.Phase())
	}

	if ignored, _ := Reduce(state, VoiceCancelled{}); ignored.Phase() != PhaseConfirmed {
		t.Error("cancel abandoned a confirmed session with its create in flight")
	}

	state, effects = Reduce(state, MutationCompleted{Mutation: mutation, Err: errBackend})
	onlyEffect[FetchTasks](t, effects)
	if state.Phase() != PhaseReviewing || state.View().Modal != ModalVoiceReview {
		t.Errorf("after failed create: phase %s modal %v", state.Phase(), state.View().Modal)
	}
	session, ok := state.Voice()
	if !ok || session.Draft.Title != "Water plants" {
		t.Errorf("draft lost after failed create: %+v", session)
	}
	if notice, _ := state.Notice(); notice.Kind != MutationFailure {
		t.Errorf("notice kind = %s, want mutation", notice.Kind)
	}
}

func TestTranscriptRequiresSessionID(t *testing.T) {
	state, _ := Reduce(loadedState(), VoiceCaptureOpened{})
	state, effects := Reduce(state, TranscriptReady{SessionID: uuid.Nil, Transcript: "x"})
	if len(effects) != 0 || state.Phase() != PhaseCapturing {
		t.Errorf("nil session accepted: phase %s effects %v", state.Phase(), effects)
	}
}

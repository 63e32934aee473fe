// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"fmt"

	"github.com/google/uuid"
)

// openVoiceCapture starts the workflow. Refused while a session is
// live or any other surface is open.
func (state State) openVoiceCapture() State {
	if state.phase != PhaseIdle || state.view.Modal != ModalNone {
		return state
	}
	state.phase = PhaseCapturing
	state.view.Modal = ModalVoiceCapture
	return state
}

func (state State) acceptTranscript(event TranscriptReady) (State, []Effect) {
	if state.phase != PhaseCapturing || event.SessionID == uuid.Nil {
		return state, nil
	}
	state.voice = &Session{ID: event.SessionID, Transcript: event.Transcript}
	state.phase = PhaseParsing
	return state, []Effect{ParseTranscript{SessionID: event.SessionID, Transcript: event.Transcript}}
}

// completeParse moves a parsing session to review, or back to Idle on
// failure. A candidate missing required fields still reaches review.
func (state State) completeParse(event ParseCompleted) State {
	if state.phase != PhaseParsing || state.voice == nil || state.voice.ID != event.SessionID {
		return state
	}

	if event.Err != nil {
		state.voice = nil
		state.phase = PhaseIdle
		state.view.Modal = ModalNone
		state.notice = &Notice{
			Kind:    ParseFailure,
			Message: fmt.Sprintf("Could not turn that into a task: %v", event.Err),
			Err:     event.Err,
		}
		return state
	}

	session := *state.voice
	session.Candidate = event.Candidate
	session.Draft = DraftFromCandidate(event.Candidate)
	state.voice = &session
	state.phase = PhaseReviewing
	state.view.Modal = ModalVoiceReview
	return state
}

// confirmVoice submits the reviewed draft as a create. A blank title
// keeps the user in review.
func (state State) confirmVoice() (State, []Effect) {
	if state.phase != PhaseReviewing {
		return state, nil
	}
	payload, err := state.voice.Draft.Payload()
	if err != nil {
		state.notice = refusal(err)
		return state, nil
	}

	state, effects := state.requestMutation(MutationCreate, 0, payload, OriginVoice)
	if len(effects) == 0 {
		return state, nil
	}
	session := *state.voice
	session.mutation = state.nextMutation
	state.voice = &session
	state.phase = PhaseConfirmed
	return state, effects
}

// cancelVoice discards the session. A parse result arriving later no
// longer matches a session and is dropped. Once confirmed, the create
// is already in flight and cancel has no effect.
func (state State) cancelVoice() State {
	switch state.phase {
	case PhaseCapturing, PhaseParsing, PhaseReviewing:
		state.voice = nil
		state.phase = PhaseIdle
		state.view.Modal = ModalNone
	}
	return state
}

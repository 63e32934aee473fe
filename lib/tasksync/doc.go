// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package tasksync is the task synchronization core: the canonical task
// collection, the filtered view derived from it, the voice-to-task
// review workflow, and the presentation mode.
//
// All application state lives in one State value. The only way to
// change it is Reduce, a pure function from (State, Event) to a new
// State plus the Effects the caller must run:
//
//	state, effects := tasksync.Reduce(state, tasksync.RefreshRequested{})
//	for _, effect := range effects {
//		event := runner.Run(ctx, effect) // blocking; run off the UI thread
//		state, effects = tasksync.Reduce(state, event)
//	}
//
// Reduce never performs I/O. Effects describe the I/O (FetchTasks,
// ApplyMutation, ParseTranscript); a Runner executes them against a
// Gateway and a Parser and turns the outcome into a completion event.
//
// # Consistency
//
// The store only ever holds what persistence returned. A mutation is
// never applied locally: its completion, successful or not, emits a
// FetchTasks effect, so the refresh is dispatched strictly after the
// mutation resolved. Every successful refresh replaces the whole
// collection, and when refreshes overlap the last one to complete
// wins. A failed refresh keeps the previous collection and records the
// failure.
//
// # Voice workflow
//
// Idle → Capturing → Parsing → Reviewing → Confirmed → Idle. Cancelling
// from Capturing, Parsing, or Reviewing discards the session and
// returns to Idle. Parse results carry the session ID they were
// requested for and are dropped when that session is gone. At most one
// session exists.
//
// # Threading
//
// State is not safe for concurrent mutation. Exactly one goroutine
// (the UI event loop) calls Reduce; effects run elsewhere and come back
// as events.
package tasksync

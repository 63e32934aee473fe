// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package voiceparse extracts a candidate task from a spoken
// transcript with a small set of English phrase rules.
//
// It recognizes a leading request phrase ("remind me to", "I need
// to"), a priority phrase ("urgent", "high priority", "no rush"), and
// one relative or absolute date ("tomorrow", "in 3 days", "next
// friday", "on March 4th", "2026-11-02"). Recognized phrases are removed
// and what remains becomes the title. Anything not recognized is left
// unknown in the candidate, for the reviewer to fill in.
//
// Relative dates resolve against the injected clock in its local
// time zone.
package voiceparse

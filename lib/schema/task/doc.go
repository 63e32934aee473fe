// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package task defines the task record and the shapes that travel
// between the synchronization core and its collaborators: the Payload
// sent to persistence on create and update, the PartialTask wire form
// a transcript parser returns, and the Candidate view of it in which
// every field is explicitly known or unknown.
//
// Identity and timestamps belong to persistence. Nothing in this
// package assigns an ID or stamps a time.
package task

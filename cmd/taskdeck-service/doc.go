// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Taskdeck-service owns the task database and serves it over a Unix
// socket so several terminals can share one task list.
//
// Requests and replies are CBOR maps. Every request carries an
// "action" key:
//
//   - status: version, task count, uptime
//   - list: every task, newest first
//   - create, update, delete: one mutation (see task.MutationRequest)
//   - parse: turn a transcript into a partial task
//
// Start the terminal UI with --service to use it.
package main

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskui is the interactive terminal front end for taskdeck.
//
// [Model] is a bubbletea model that owns a [tasksync.State]. Every key
// press is translated into a tasksync event and passed through
// [tasksync.Reduce]; the effects it returns are run as tea.Cmds through
// a [tasksync.Runner], and their completions come back as messages
// that are reduced in turn. The model itself only keeps widget state
// (text inputs, cursor positions, scroll offsets) that has no meaning
// outside the terminal.
//
// Two layouts are available, toggled with Tab: a board with one
// column per status, and a list with a detail pane that renders the
// selected task's description as markdown.
package taskui

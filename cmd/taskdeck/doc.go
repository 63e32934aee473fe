// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Taskdeck is a terminal task board. Tasks can be shown as a board with
// one column per status or as a list with a detail pane, filtered by
// status, priority, and free text, and created by speaking (or typing)
// a sentence such as "remind me to call mom tomorrow, it's urgent".
//
// By default taskdeck opens the task database directly. With --service
// it talks to a running taskdeck-service instead, which lets several
// terminals share one task list.
package main

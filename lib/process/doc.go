// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds entrypoint helpers shared by the taskdeck
// binaries: reporting the error returned by run() and choosing the exit
// status from its category.
package process

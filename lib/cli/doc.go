// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the pieces shared by taskdeck's command-line
// entry points: categorized errors with optional operator hints,
// and the command logger.
package cli

// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides terminal rendering helpers shared by taskdeck's
// interactive surfaces: the color theme, ANSI-aware truncation and
// overlay splicing, change highlighting, the scrollbar, and a
// markdown renderer for task descriptions.
//
// Nothing here owns application state. The bubbletea model in
// lib/taskui decides what to draw and calls into this package for how.
package tui

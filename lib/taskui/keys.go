// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings for the main surface. Modal surfaces
// (forms, confirmations) use fixed keys listed in their own footers.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding // Board: previous column.
	Right key.Binding // Board: next column.

	MoveBack    key.Binding // Move the selected task to the previous status.
	MoveForward key.Binding // Move the selected task to the next status.

	ToggleView key.Binding
	NewTask    key.Binding
	EditTask   key.Binding
	DeleteTask key.Binding
	Voice      key.Binding

	Search         key.Binding
	CycleStatus    key.Binding
	CyclePriority  key.Binding
	ClearFilters   key.Binding
	Refresh        key.Binding
	Dismiss        key.Binding
	DetailPageUp   key.Binding
	DetailPageDown key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "column"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "column"),
	),
	MoveBack: key.NewBinding(
		key.WithKeys("h", "["),
		key.WithHelp("h/[", "move back"),
	),
	MoveForward: key.NewBinding(
		key.WithKeys("l", "]"),
		key.WithHelp("l/]", "move on"),
	),
	ToggleView: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "board/list"),
	),
	NewTask: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	EditTask: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	DeleteTask: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Voice: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "voice"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	CyclePriority: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "priority filter"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear filters"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "dismiss"),
	),
	DetailPageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("C-u", "detail up"),
	),
	DetailPageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("C-d", "detail down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		keys.ToggleView, keys.NewTask, keys.EditTask, keys.DeleteTask,
		keys.MoveBack, keys.MoveForward, keys.Search, keys.Voice, keys.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.Left, keys.Right},
		{keys.NewTask, keys.EditTask, keys.DeleteTask, keys.MoveBack, keys.MoveForward},
		{keys.Search, keys.CycleStatus, keys.CyclePriority, keys.ClearFilters},
		{keys.ToggleView, keys.Voice, keys.Refresh, keys.Dismiss, keys.Quit},
	}
}

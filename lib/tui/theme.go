// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// Theme is the color palette for taskdeck's terminal UI. Colors are
// ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	PriorityUrgent lipgloss.Color
	PriorityHigh   lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityLow    lipgloss.Color

	StatusTodo       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusDone       lipgloss.Color

	// Overdue colors a due date in the past on an unfinished task.
	Overdue lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Background tints for recently changed tasks.
	HotAccentPut    lipgloss.Color
	HotAccentRemove lipgloss.Color

	// Notice bar.
	ErrorForeground lipgloss.Color
	ErrorBackground lipgloss.Color

	ModalBackground lipgloss.Color
}

// PriorityColor returns the color for a priority. Unknown values use
// NormalText.
func (theme Theme) PriorityColor(priority task.Priority) lipgloss.Color {
	switch priority {
	case task.PriorityUrgent:
		return theme.PriorityUrgent
	case task.PriorityHigh:
		return theme.PriorityHigh
	case task.PriorityMedium:
		return theme.PriorityMedium
	case task.PriorityLow:
		return theme.PriorityLow
	}
	return theme.NormalText
}

// StatusColor returns the color for a status. Unknown values use
// FaintText.
func (theme Theme) StatusColor(status task.Status) lipgloss.Color {
	switch status {
	case task.StatusTodo:
		return theme.StatusTodo
	case task.StatusInProgress:
		return theme.StatusInProgress
	case task.StatusDone:
		return theme.StatusDone
	}
	return theme.FaintText
}

// DefaultTheme targets 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PriorityUrgent: lipgloss.Color("196"), // bright red
	PriorityHigh:   lipgloss.Color("208"), // orange
	PriorityMedium: lipgloss.Color("75"),  // blue
	PriorityLow:    lipgloss.Color("245"), // gray

	StatusTodo:       lipgloss.Color("114"), // green
	StatusInProgress: lipgloss.Color("220"), // amber
	StatusDone:       lipgloss.Color("245"), // gray

	Overdue: lipgloss.Color("203"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	HotAccentPut:    lipgloss.Color("58"),
	HotAccentRemove: lipgloss.Color("52"),

	ErrorForeground: lipgloss.Color("255"),
	ErrorBackground: lipgloss.Color("124"),

	ModalBackground: lipgloss.Color("235"),
}

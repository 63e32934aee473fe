// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/schema/task"
	"github.com/taskdeck/taskdeck/lib/tasksync"
	"github.com/taskdeck/taskdeck/lib/tui"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldPriority
	fieldStatus
	fieldDueDate
	fieldCount
)

// Choice lists for the enum fields. The empty value leaves the choice
// to the store's defaults.
var (
	priorityChoices = append([]task.Priority{""}, task.Priorities...)
	statusChoices   = append([]task.Status{""}, task.Statuses...)
)

// taskForm edits a tasksync.Draft. It backs both the task form and the
// voice review surface.
type taskForm struct {
	title       textinput.Model
	description textarea.Model
	dueDate     textinput.Model
	priority    task.Priority
	status      task.Status
	focus       formField

	// problem is a local input error (an unparseable date) shown
	// under the fields.
	problem string
}

func newTaskForm(draft tasksync.Draft, width int) taskForm {
	fieldWidth := max(width-16, 20)

	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = 255
	title.Width = fieldWidth
	title.SetValue(draft.Title)
	title.Focus()

	description := textarea.New()
	description.Placeholder = "Details (markdown)"
	description.ShowLineNumbers = false
	description.SetWidth(fieldWidth)
	description.SetHeight(4)
	description.SetValue(draft.Description)

	dueDate := textinput.New()
	dueDate.Placeholder = "YYYY-MM-DD"
	dueDate.CharLimit = 10
	dueDate.Width = 12
	if draft.DueDate != nil {
		dueDate.SetValue(draft.DueDate.String())
	}

	return taskForm{
		title:       title,
		description: description,
		dueDate:     dueDate,
		priority:    draft.Priority,
		status:      draft.Status,
	}
}

// draft reads the fields back. Only the due date can fail here; title
// validation belongs to the reducer.
func (form taskForm) draft() (tasksync.Draft, error) {
	draft := tasksync.Draft{
		Title:       form.title.Value(),
		Description: form.description.Value(),
		Priority:    form.priority,
		Status:      form.status,
	}
	if raw := strings.TrimSpace(form.dueDate.Value()); raw != "" {
		due, err := task.ParseDate(raw)
		if err != nil {
			return tasksync.Draft{}, errors.New("due date must look like 2026-10-15")
		}
		draft.DueDate = &due
	}
	return draft, nil
}

func (form *taskForm) setFocus(field formField) tea.Cmd {
	form.focus = (field + fieldCount) % fieldCount
	form.title.Blur()
	form.description.Blur()
	form.dueDate.Blur()
	switch form.focus {
	case fieldTitle:
		return form.title.Focus()
	case fieldDescription:
		return form.description.Focus()
	case fieldDueDate:
		return form.dueDate.Focus()
	}
	return nil
}

// update handles a key that was not a submit or cancel key.
func (form taskForm) update(message tea.KeyMsg) (taskForm, tea.Cmd) {
	switch message.String() {
	case "tab", "down":
		if message.String() == "down" && form.focus == fieldDescription {
			break
		}
		cmd := form.setFocus(form.focus + 1)
		return form, cmd
	case "shift+tab", "up":
		if message.String() == "up" && form.focus == fieldDescription {
			break
		}
		cmd := form.setFocus(form.focus - 1)
		return form, cmd
	}

	var cmd tea.Cmd
	switch form.focus {
	case fieldTitle:
		form.title, cmd = form.title.Update(message)
	case fieldDescription:
		form.description, cmd = form.description.Update(message)
	case fieldDueDate:
		form.dueDate, cmd = form.dueDate.Update(message)
		form.problem = ""
	case fieldPriority:
		form.priority = cycleChoice(priorityChoices, form.priority, message.String())
	case fieldStatus:
		form.status = cycleChoice(statusChoices, form.status, message.String())
	}
	return form, cmd
}

// cycleChoice steps through choices with left/right (or h/l, space).
func cycleChoice[T comparable](choices []T, current T, pressed string) T {
	step := 0
	switch pressed {
	case "right", "l", " ":
		step = 1
	case "left", "h":
		step = -1
	default:
		return current
	}
	index := 0
	for position, choice := range choices {
		if choice == current {
			index = position
			break
		}
	}
	return choices[(index+step+len(choices))%len(choices)]
}

func (form taskForm) view(theme tui.Theme, heading, footer string, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(13)
	focusedLabel := labelStyle.Foreground(theme.HeaderForeground).Bold(true)
	label := func(field formField, name string) string {
		if form.focus == field {
			return focusedLabel.Render("› " + name)
		}
		return labelStyle.Render("  " + name)
	}

	priority := "(default)"
	if form.priority != "" {
		priority = lipgloss.NewStyle().Foreground(theme.PriorityColor(form.priority)).Render(string(form.priority))
	}
	status := "(default)"
	if form.status != "" {
		status = lipgloss.NewStyle().Foreground(theme.StatusColor(form.status)).Render(form.status.Label())
	}

	rows := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(heading),
		"",
		label(fieldTitle, "Title") + form.title.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, label(fieldDescription, "Description"), form.description.View()),
		label(fieldPriority, "Priority") + "‹ " + priority + " ›",
		label(fieldStatus, "Status") + "‹ " + status + " ›",
		label(fieldDueDate, "Due") + form.dueDate.View(),
	}
	if form.problem != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.Overdue).Render(form.problem))
	}
	rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.HelpText).Render(footer))

	return modalBox(theme, strings.Join(rows, "\n"), width)
}

// modalBox frames modal content.
func modalBox(theme tui.Theme, content string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1).
		Width(width).
		Render(content)
}

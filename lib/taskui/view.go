// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/schema/task"
	"github.com/taskdeck/taskdeck/lib/tasksync"
	"github.com/taskdeck/taskdeck/lib/tui"
)

const (
	// Below this width the list layout drops the detail pane.
	detailMinimumWidth = 90

	// Each board card is two lines plus a spacer.
	cardHeight = 3
)

// View implements tea.Model.
func (model Model) View() string {
	if model.width == 0 {
		return "Loading tasks…"
	}

	sections := []string{model.renderHeader()}
	if model.searching || model.search.Value() != "" {
		sections = append(sections, model.search.View())
	}

	body := model.renderEmpty()
	if body == "" {
		if model.state.View().Mode == tasksync.ModeBoard {
			body = model.renderBoard()
		} else {
			body = model.renderList()
		}
	}
	sections = append(sections, lipgloss.NewStyle().Height(model.bodyHeight()).MaxHeight(model.bodyHeight()).Render(body))

	if notice, ok := model.state.Notice(); ok {
		sections = append(sections, model.renderNotice(notice))
	}
	sections = append(sections, model.renderFooter())

	screen := strings.Join(sections, "\n")
	if modal := model.renderModal(); modal != "" {
		screen = tui.CenterOverlay(screen, modal, model.width, model.height)
	}
	return screen
}

func (model Model) bodyHeight() int {
	height := model.height - 2
	if model.searching || model.search.Value() != "" {
		height--
	}
	if _, ok := model.state.Notice(); ok {
		height--
	}
	return max(height, 1)
}

func (model Model) modalWidth() int {
	if model.width == 0 {
		return 60
	}
	return max(min(model.width-4, 72), 30)
}

func (model Model) detailVisible() bool {
	return model.state.View().Mode == tasksync.ModeList && model.width >= detailMinimumWidth
}

func (model Model) listWidth() int {
	if !model.detailVisible() {
		return model.width
	}
	return model.width * 55 / 100
}

// syncPanes recomputes scroll offsets and the detail pane content
// after the cursor, the tasks, or the window size changed.
func (model *Model) syncPanes() {
	bodyHeight := model.bodyHeight()
	model.listOffset = scrollWindow(model.listOffset, model.listRow, bodyHeight-1)
	cardsPerColumn := max((bodyHeight-2)/cardHeight, 1)
	for index := range model.boardOffsets {
		model.boardOffsets[index] = scrollWindow(model.boardOffsets[index], model.rows[index], cardsPerColumn)
	}

	if !model.detailVisible() {
		return
	}
	model.detail.Width = model.width - model.listWidth() - 3
	model.detail.Height = bodyHeight
	selected, ok := model.selected()
	if !ok {
		model.detail.SetContent("")
		return
	}
	model.detail.SetContent(model.renderDetail(selected, model.detail.Width))
	model.detail.GotoTop()
}

func (model Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render("taskdeck")

	board, list := "Board", "List"
	active := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(model.theme.HeaderForeground)
	inactive := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if model.state.View().Mode == tasksync.ModeBoard {
		board, list = active.Render(board), inactive.Render(list)
	} else {
		board, list = inactive.Render(board), active.Render(list)
	}

	parts := []string{" " + title, board + " " + list}
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	parts = append(parts, faint.Render(fmt.Sprintf("%d/%d tasks", len(model.state.Visible()), len(model.state.Tasks()))))

	criteria := model.state.Criteria()
	if criteria.Status != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(model.theme.StatusColor(criteria.Status)).Render("["+criteria.Status.Label()+"]"))
	}
	if criteria.Priority != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(model.theme.PriorityColor(criteria.Priority)).Render("["+string(criteria.Priority)+"]"))
	}
	if model.state.Loading() {
		parts = append(parts, lipgloss.NewStyle().Foreground(model.theme.StatusInProgress).Render("loading…"))
	}
	return tui.Truncate(strings.Join(parts, "  "), model.width)
}

// renderEmpty returns the placeholder shown instead of tasks, or ""
// when there are tasks to draw.
func (model Model) renderEmpty() string {
	var message string
	switch {
	case len(model.state.Visible()) > 0:
		return ""
	case !model.state.Loaded() && model.state.FetchError() != nil:
		message = "Could not load tasks. Press r to retry."
	case !model.state.Loaded():
		message = "Loading tasks…"
	case len(model.state.Tasks()) == 0:
		message = "No tasks yet. Press n to add one, or v to speak one."
	default:
		message = "No tasks match the current filters. Press c to clear them."
	}
	return lipgloss.Place(model.width, model.bodyHeight(), lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(message))
}

func (model Model) renderBoard() string {
	columns := model.columns()
	columnWidth := max((model.width-len(columns)+1)/len(columns), 12)
	cardsPerColumn := max((model.bodyHeight()-2)/cardHeight, 1)
	now := model.clock.Now()
	today := task.DateOf(now)

	rendered := make([]string, len(columns))
	for index, tasks := range columns {
		status := task.Statuses[index]
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.StatusColor(status))
		if index == model.column {
			headerStyle = headerStyle.Underline(true)
		}
		lines := []string{
			tui.PadRight(headerStyle.Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks))), columnWidth),
			lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render(strings.Repeat("─", columnWidth)),
		}
		if len(tasks) == 0 {
			lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("  nothing here"))
		}
		offset := model.boardOffsets[index]
		for row := offset; row < len(tasks) && row < offset+cardsPerColumn; row++ {
			selected := index == model.column && row == model.rows[index]
			lines = append(lines, model.renderCard(tasks[row], columnWidth, selected, today)...)
		}
		rendered[index] = lipgloss.NewStyle().Width(columnWidth).Render(strings.Join(lines, "\n"))
	}

	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render(
		strings.TrimSuffix(strings.Repeat("│\n", model.bodyHeight()), "\n"))
	var joined []string
	for index, column := range rendered {
		if index > 0 {
			joined = append(joined, divider)
		}
		joined = append(joined, column)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joined...)
}

func (model Model) renderCard(card task.Task, width int, selected bool, today task.Date) []string {
	style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if heat := model.heat.Heat(card.ID, model.clock.Now()); heat > 0 {
		style = style.Background(model.theme.HotAccentPut)
	}
	if selected {
		style = style.Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground).Bold(true)
	}

	marker := lipgloss.NewStyle().Foreground(model.theme.PriorityColor(card.Priority)).Render("▍")
	title := marker + style.Render(tui.PadRight(" "+card.Title, width-1))

	meta := string(card.Priority)
	if due := model.dueLabel(card, today); due != "" {
		meta += " · " + due
	}
	metaStyle := style.Bold(false).Foreground(model.theme.FaintText)
	if model.overdue(card, today) {
		metaStyle = metaStyle.Foreground(model.theme.Overdue)
	}
	return []string{title, " " + metaStyle.Render(tui.PadRight(" "+meta, width-1)), ""}
}

func (model Model) renderList() string {
	visible := model.state.Visible()
	width := model.listWidth()
	rowsHeight := model.bodyHeight() - 1
	today := task.DateOf(model.clock.Now())

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	lines := []string{faint.Render(tui.PadRight(fmt.Sprintf(" %-12s %-7s %-10s %s", "STATUS", "PRIO", "DUE", "TITLE"), width-1))}
	for row := model.listOffset; row < len(visible) && row < model.listOffset+rowsHeight; row++ {
		lines = append(lines, model.renderRow(visible[row], width-1, row == model.listRow, today))
	}
	list := lipgloss.NewStyle().Width(width - 1).Render(strings.Join(lines, "\n"))
	scrollbar := tui.RenderScrollbar(model.theme, model.bodyHeight(), len(visible), rowsHeight, model.listOffset)
	pane := lipgloss.JoinHorizontal(lipgloss.Top, list, scrollbar)

	if !model.detailVisible() {
		return pane
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pane, "  ", model.detail.View())
}

func (model Model) renderRow(row task.Task, width int, selected bool, today task.Date) string {
	style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if model.heat.Heat(row.ID, model.clock.Now()) > 0 {
		style = style.Background(model.theme.HotAccentPut)
	}
	if selected {
		style = style.Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground)
	}

	status := style.Foreground(model.theme.StatusColor(row.Status)).Render(fmt.Sprintf(" %-12s", row.Status.Label()))
	priority := style.Foreground(model.theme.PriorityColor(row.Priority)).Render(fmt.Sprintf(" %-7s", row.Priority))
	dueStyle := style.Foreground(model.theme.FaintText)
	if model.overdue(row, today) {
		dueStyle = dueStyle.Foreground(model.theme.Overdue)
	}
	due := dueStyle.Render(fmt.Sprintf(" %-10s", model.dueLabel(row, today)))
	used := lipgloss.Width(status) + lipgloss.Width(priority) + lipgloss.Width(due)
	title := style.Render(tui.PadRight(" "+row.Title, max(width-used, 0)))
	return status + priority + due + title
}

func (model Model) renderDetail(selected task.Task, width int) string {
	var sections []string
	sections = append(sections, lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Width(width).Render(selected.Title))

	today := task.DateOf(model.clock.Now())
	meta := []string{
		lipgloss.NewStyle().Foreground(model.theme.StatusColor(selected.Status)).Render(selected.Status.Label()),
		lipgloss.NewStyle().Foreground(model.theme.PriorityColor(selected.Priority)).Render(string(selected.Priority)),
	}
	if due := model.dueLabel(selected, today); due != "" {
		dueStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		if model.overdue(selected, today) {
			dueStyle = dueStyle.Foreground(model.theme.Overdue)
		}
		meta = append(meta, dueStyle.Render("due "+due))
	}
	sections = append(sections, strings.Join(meta, "  "), "")

	if selected.HasDescription() {
		sections = append(sections, tui.RenderMarkdown(selected.Description, model.theme, width))
	} else {
		sections = append(sections, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No description."))
	}

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	sections = append(sections, "",
		faint.Render(fmt.Sprintf("#%d · created %s · updated %s",
			selected.ID,
			selected.CreatedAt.Local().Format("2006-01-02 15:04"),
			selected.UpdatedAt.Local().Format("2006-01-02 15:04"))))
	return strings.Join(sections, "\n")
}

// dueLabel names the due date relative to today when close.
func (model Model) dueLabel(item task.Task, today task.Date) string {
	if item.DueDate == nil {
		return ""
	}
	switch *item.DueDate {
	case today:
		return "today"
	case today.AddDays(1):
		return "tomorrow"
	case today.AddDays(-1):
		return "yesterday"
	}
	return item.DueDate.String()
}

func (model Model) overdue(item task.Task, today task.Date) bool {
	return item.DueDate != nil && item.Status != task.StatusDone && item.DueDate.Before(today)
}

func (model Model) renderNotice(notice tasksync.Notice) string {
	hint := "Esc dismiss"
	if notice.Kind == tasksync.FetchFailure {
		hint = "r retry · Esc dismiss"
	}
	style := lipgloss.NewStyle().Foreground(model.theme.ErrorForeground).Background(model.theme.ErrorBackground)
	return style.Render(tui.PadRight(" ! "+notice.Message+"  ("+hint+")", model.width))
}

func (model Model) renderFooter() string {
	if model.logLine != "" {
		color := model.theme.FaintText
		switch {
		case model.logLevel >= slog.LevelError:
			color = model.theme.Overdue
		case model.logLevel >= slog.LevelWarn:
			color = model.theme.StatusInProgress
		}
		return lipgloss.NewStyle().Foreground(color).Render(tui.Truncate(" "+model.logLine, model.width))
	}
	return " " + model.help.View(model.keys)
}

func (model Model) renderModal() string {
	view := model.state.View()
	width := model.modalWidth()
	switch view.Modal {
	case tasksync.ModalTaskForm:
		heading := "New task"
		if view.EditingID != 0 {
			heading = fmt.Sprintf("Edit task #%d", view.EditingID)
		}
		footer := "Enter save · Tab next field · ←/→ change choice · Esc cancel"
		if model.state.FormPending() {
			footer = "Saving…"
		}
		return model.form.view(model.theme, heading, footer, width)

	case tasksync.ModalConfirmDelete:
		target, _ := model.state.Task(view.EditingID)
		lines := []string{fmt.Sprintf("Delete %q? (y/n)", tui.Truncate(target.Title, width-16))}
		if excerpt := tui.Excerpt(target.Description, width-6, 2); len(excerpt) > 0 {
			faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
			lines = append(lines, "")
			for _, line := range excerpt {
				lines = append(lines, faint.Render(line))
			}
		}
		return modalBox(model.theme, strings.Join(lines, "\n"), width)

	case tasksync.ModalVoiceCapture:
		return model.renderCapture(width)

	case tasksync.ModalVoiceReview:
		session, _ := model.state.Voice()
		heading := "Review voice task\n" + lipgloss.NewStyle().Italic(true).Foreground(model.theme.FaintText).
			Render("“"+tui.Truncate(session.Transcript, width-8)+"”")
		footer := "Enter create · Tab next field · ←/→ change choice · Esc discard"
		if model.state.Phase() == tasksync.PhaseConfirmed {
			footer = "Creating task…"
		}
		return model.form.view(model.theme, heading, footer, width)
	}
	return ""
}

func (model Model) renderCapture(width int) string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render("Voice task")
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	if model.state.Phase() == tasksync.PhaseParsing {
		session, _ := model.state.Voice()
		return modalBox(model.theme, strings.Join([]string{
			heading, "",
			faint.Italic(true).Render("“" + tui.Truncate(session.Transcript, width-8) + "”"),
			"", "Working out the details…",
			"", faint.Render("Esc cancel"),
		}, "\n"), width)
	}

	status := "Type what you would say."
	if model.listening {
		status = lipgloss.NewStyle().Foreground(model.theme.Overdue).Render("● Listening") + faint.Render(" (or type instead)")
	}
	return modalBox(model.theme, strings.Join([]string{
		heading, "", status, "", model.capture.View(),
		"", faint.Render("Enter submit · Esc cancel"),
	}, "\n"), width)
}

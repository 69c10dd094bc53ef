package tui

import (
	"fmt"
	"strings"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	}

	b.WriteString(m.viewTree())

	if m.mode == ModeConfirm {
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return m.styles.App.Render(b.String())
}

// viewHeader renders the goal line with task counts.
func (m *Model) viewHeader() string {
	if m.goal == nil {
		return m.styles.HeaderText.Render(fmt.Sprintf("Goal #%d", m.goalID))
	}

	title := m.styles.HeaderText.Render(fmt.Sprintf("Goal #%d: %s", m.goal.ID, m.goal.Description))

	done := 0
	for _, t := range m.tasks {
		if t.IsComplete && !t.Deleted {
			done++
		}
	}
	meta := m.styles.HeaderMeta.Render(fmt.Sprintf("  %d/%d done", done, len(m.tasks)))

	return title + meta
}

// viewTree renders the task tree with the cursor.
func (m *Model) viewTree() string {
	if len(m.tasks) == 0 {
		return m.styles.EmptyMsg.Render("No tasks. Add some with 'goalpost task add'.") + "\n"
	}

	var b strings.Builder
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		indent := strings.Repeat("  ", strings.Count(t.ID, "."))
		marker := "[ ]"
		if t.IsComplete {
			marker = "[x]"
		}

		line := fmt.Sprintf("%s%s %s %s", indent, marker, t.ID, t.Title)
		switch {
		case t.Deleted:
			line = m.styles.TaskDeleted.Render(line + " (deleted)")
		case i == m.cursor:
			line = m.styles.TaskSelected.Render(line)
		case t.IsComplete:
			line = m.styles.TaskDone.Render(line)
		default:
			line = m.styles.TaskNormal.Render(line)
		}

		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

// viewConfirmDialog renders the delete confirmation box.
func (m *Model) viewConfirmDialog() string {
	prompt := fmt.Sprintf("Delete task %s? (y/esc)", m.confirmTaskID)
	if m.confirmTree {
		prompt = fmt.Sprintf("Delete task %s and its subtasks? (y/esc)", m.confirmTaskID)
	}
	return m.styles.ConfirmBox.Render(prompt)
}

// viewFooter renders the status line and key help.
func (m *Model) viewFooter() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString(m.styles.StatusMsg.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

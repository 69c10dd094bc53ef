package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgGoalLoaded:
		m.goal = msg.Goal
		m.tasks = msg.Tasks
		m.clampCursor()
		return m, nil

	case MsgTasksCompleted:
		m.status = completionStatus(msg.Updated, msg.Parents)
		return m, m.loadGoal()

	case MsgTasksRemoved:
		m.mode = ModeNormal
		m.confirmTaskID = ""
		m.status = removalStatus(msg.Removed, msg.Parents)
		return m, m.loadGoal()

	case MsgError:
		m.err = msg.Err
		m.mode = ModeNormal
		m.confirmTaskID = ""
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeConfirm {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		task := m.SelectedTask()
		if task == nil || task.Deleted {
			return m, nil
		}
		m.err = nil
		return m, m.completeTask(task.ID, false)

	case key.Matches(msg, m.keys.CompleteTree):
		task := m.SelectedTask()
		if task == nil || task.Deleted {
			return m, nil
		}
		m.err = nil
		return m, m.completeTask(task.ID, true)

	case key.Matches(msg, m.keys.Delete):
		task := m.SelectedTask()
		if task == nil || task.Deleted {
			return m, nil
		}
		m.err = nil
		m.mode = ModeConfirm
		m.confirmTaskID = task.ID
		m.confirmTree = hasLiveChildren(m.tasks, task.ID)
		return m, nil

	case key.Matches(msg, m.keys.ToggleDeleted):
		m.showDeleted = !m.showDeleted
		return m, m.loadGoal()

	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		m.status = ""
		return m, m.loadGoal()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// handleConfirmKey handles keys while the delete confirmation is shown.
func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, m.removeTask(m.confirmTaskID, m.confirmTree)

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		m.confirmTaskID = ""
		return m, nil
	}

	return m, nil
}

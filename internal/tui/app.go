package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/goalpost/internal/app"
	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/usecase"
)

// Model is the bubbletea model for the goal tree view.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	goal      *domain.Goal
	err       error

	// State (slices - contain pointers)
	tasks []*domain.Task

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Text state
	status        string
	confirmTaskID string

	// Numeric state (smaller types last)
	goalID      int64
	mode        Mode
	cursor      int
	width       int
	height      int
	confirmTree bool
	showDeleted bool
}

// New creates a new TUI Model for one goal.
func New(c *app.Container, goalID int64) *Model {
	return &Model{
		container: c,
		goalID:    goalID,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		mode:      ModeNormal,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadGoal()
}

// loadGoal returns a command that loads the goal and its task tree.
func (m *Model) loadGoal() tea.Cmd {
	includeDeleted := m.showDeleted
	return func() tea.Msg {
		out, err := m.container.ShowGoalUseCase().Execute(context.Background(), usecase.ShowGoalInput{
			GoalID:         m.goalID,
			IncludeDeleted: includeDeleted,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgGoalLoaded{Goal: out.Goal, Tasks: out.Tasks}
	}
}

// completeTask returns a command that marks a task complete.
func (m *Model) completeTask(taskID string, children bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.SetCompletionUseCase().Execute(context.Background(), usecase.SetCompletionInput{
			GoalID:           m.goalID,
			TaskIDs:          []string{taskID},
			CompleteChildren: children,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksCompleted{Updated: out.UpdatedTasks, Parents: out.CompletedParents}
	}
}

// removeTask returns a command that soft-deletes a task.
func (m *Model) removeTask(taskID string, children bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.RemoveTasksUseCase().Execute(context.Background(), usecase.RemoveTasksInput{
			GoalID:         m.goalID,
			TaskIDs:        []string{taskID},
			DeleteChildren: children,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksRemoved{Removed: out.RemovedTasks, Parents: out.CompletedParents}
	}
}

// SelectedTask returns the task under the cursor, or nil if the tree is empty.
func (m *Model) SelectedTask() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

// moveCursor moves the cursor by delta, clamped to the task list.
func (m *Model) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, len(m.tasks)-1)
}

// clampCursor keeps the cursor valid after the task list changed.
func (m *Model) clampCursor() {
	m.cursor = clamp(m.cursor, 0, len(m.tasks)-1)
}

// clamp restricts v to [low, high]. An empty range yields low.
func clamp(v, low, high int) int {
	if high < low {
		return low
	}
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// hasLiveChildren reports whether a task has at least one non-deleted direct
// child in the loaded tree.
func hasLiveChildren(tasks []*domain.Task, id string) bool {
	for _, t := range tasks {
		if t.ParentID != nil && *t.ParentID == id && !t.Deleted {
			return true
		}
	}
	return false
}

// joinIDs renders task IDs as a comma-separated list.
func joinIDs(tasks []*domain.Task) string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return strings.Join(ids, ", ")
}

// completionStatus builds the status line for a completion result.
func completionStatus(updated, parents []*domain.Task) string {
	if len(updated) == 0 {
		return "not completed: subtasks still open"
	}
	s := "completed " + joinIDs(updated)
	if len(parents) > 0 {
		s += " (parent " + joinIDs(parents) + " now complete)"
	}
	return s
}

// removalStatus builds the status line for a soft-delete result.
func removalStatus(removed, parents []*domain.Task) string {
	if len(removed) == 0 {
		return "nothing removed"
	}
	s := "deleted " + joinIDs(removed)
	if len(parents) > 0 {
		s += " (parent " + joinIDs(parents) + " now complete)"
	}
	return s
}

package tui

import "github.com/runoshun/goalpost/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
type Msg interface {
	sealed()
}

// MsgGoalLoaded is sent when the goal and its task tree are loaded.
type MsgGoalLoaded struct {
	Goal  *domain.Goal
	Tasks []*domain.Task
}

func (MsgGoalLoaded) sealed() {}

// MsgTasksCompleted is sent when a completion request finished.
// Updated may be empty when the task was skipped for open subtasks.
type MsgTasksCompleted struct {
	Updated []*domain.Task
	Parents []*domain.Task
}

func (MsgTasksCompleted) sealed() {}

// MsgTasksRemoved is sent when a soft-delete request finished.
type MsgTasksRemoved struct {
	Removed []*domain.Task
	Parents []*domain.Task
}

func (MsgTasksRemoved) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

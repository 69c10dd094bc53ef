package domain

import "errors"

// Domain errors.
var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrParentTaskNotFound  = errors.New("parent task not found")
	ErrTaskHasChildren     = errors.New("task has non-deleted child tasks")
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrEmptyDescription    = errors.New("description cannot be empty")
	ErrInvalidTaskID       = errors.New("invalid task id")
	ErrInvalidSubtaskScope = errors.New("invalid subtask scope")
	ErrNoTasksGiven        = errors.New("no tasks given")
	ErrEmptyFile           = errors.New("file is empty")
	ErrNoTasksInFile       = errors.New("no tasks found in file")
	ErrNotInitialized      = errors.New("store not initialized (run 'goalpost init' first)")
	ErrNotGitRepository    = errors.New("not a git repository")
)

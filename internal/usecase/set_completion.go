package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/goalpost/internal/domain"
)

// SetCompletionInput contains the parameters for marking tasks complete.
// Fields are ordered to minimize memory padding.
type SetCompletionInput struct {
	TaskIDs          []string // Task IDs to complete, processed in caller order
	GoalID           int64    // Owning goal ID
	CompleteChildren bool     // First complete every descendant, then the task itself
}

// SetCompletionOutput contains the result of marking tasks complete.
type SetCompletionOutput struct {
	UpdatedTasks     []*domain.Task // Tasks whose flag was set by this call
	CompletedParents []*domain.Task // Parents whose completion flag flipped
}

// SetCompletion is the use case for marking tasks complete. Completion only
// moves from false to true here; a parent only flips back to incomplete
// through the recheck when its children change.
type SetCompletion struct {
	goals  domain.GoalRepository
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewSetCompletion creates a new SetCompletion use case.
func NewSetCompletion(goals domain.GoalRepository, tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *SetCompletion {
	return &SetCompletion{
		goals:  goals,
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute marks the requested tasks complete. Without CompleteChildren a
// task with any incomplete non-deleted child is skipped silently, reported
// only by its absence from UpdatedTasks. Unknown IDs are skipped the same
// way. Afterwards every affected parent's completion flag is rechecked.
func (uc *SetCompletion) Execute(_ context.Context, in SetCompletionInput) (*SetCompletionOutput, error) {
	if _, err := loadPlan(uc.goals, in.GoalID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	var updated []*domain.Task
	parents := newParentSet()
	for _, id := range in.TaskIDs {
		task, err := uc.tasks.Get(in.GoalID, id)
		if err != nil {
			return nil, fmt.Errorf("get task: %w", err)
		}
		if task == nil {
			continue
		}
		updated, err = uc.completeTree(task, in.CompleteChildren, now, updated, parents)
		if err != nil {
			return nil, err
		}
	}

	completed, err := recheckAll(uc.tasks, uc.clock, in.GoalID, parents)
	if err != nil {
		return nil, err
	}

	if uc.logger != nil && len(updated) > 0 {
		uc.logger.Info(in.GoalID, "task", fmt.Sprintf("completed %d tasks", len(updated)))
	}

	return &SetCompletionOutput{UpdatedTasks: updated, CompletedParents: completed}, nil
}

// completeTree applies completion to one task. With completeChildren the
// whole subtree is completed children-first, deleted tasks included; without
// it, any incomplete non-deleted child blocks the task entirely. Each
// mutation is persisted before the next read so later batch entries observe
// it.
func (uc *SetCompletion) completeTree(task *domain.Task, completeChildren bool, now time.Time, updated []*domain.Task, parents *parentSet) ([]*domain.Task, error) {
	children, err := uc.tasks.ListChildren(task.GoalID, &task.ID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	if completeChildren {
		for _, c := range children {
			updated, err = uc.completeTree(c, true, now, updated, parents)
			if err != nil {
				return nil, err
			}
		}
	} else {
		for _, c := range children {
			if !c.Deleted && !c.IsComplete {
				// Skipped, not an error: callers learn of it by the
				// task's absence from the result.
				return updated, nil
			}
		}
	}

	if !task.IsComplete {
		task.IsComplete = true
		task.UpdatedAt = now
		if err := uc.tasks.Save(task); err != nil {
			return nil, fmt.Errorf("save task: %w", err)
		}
		updated = append(updated, task)
	}
	parents.add(task.ParentID)
	return updated, nil
}

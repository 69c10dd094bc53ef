package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/goalpost/internal/domain"
)

// RemoveTasksInput contains the parameters for soft-deleting tasks.
// Fields are ordered to minimize memory padding.
type RemoveTasksInput struct {
	TaskIDs        []string // Task IDs to soft-delete
	GoalID         int64    // Owning goal ID
	DeleteChildren bool     // Also delete every non-deleted descendant
}

// RemoveTasksOutput contains the result of soft-deleting tasks.
type RemoveTasksOutput struct {
	RemovedTasks     []*domain.Task // Tasks soft-deleted by this call
	CompletedParents []*domain.Task // Parents whose completion flag flipped
}

// RemoveTasks is the use case for soft-deleting tasks. Deleted rows are
// retained forever and their IDs are never reused or renumbered.
type RemoveTasks struct {
	goals  domain.GoalRepository
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewRemoveTasks creates a new RemoveTasks use case.
func NewRemoveTasks(goals domain.GoalRepository, tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *RemoveTasks {
	return &RemoveTasks{
		goals:  goals,
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute soft-deletes the requested tasks. The structural check (no live
// children unless DeleteChildren is set) runs for the whole batch before any
// row is touched, so a failing batch leaves the store unchanged. Requested
// IDs that are unknown or already deleted are skipped. Afterwards every
// affected parent's completion flag is rechecked.
func (uc *RemoveTasks) Execute(_ context.Context, in RemoveTasksInput) (*RemoveTasksOutput, error) {
	if _, err := loadPlan(uc.goals, in.GoalID); err != nil {
		return nil, err
	}

	ids := uniqueSortedTaskIDs(in.TaskIDs)

	// Validation pass, no mutation yet. Already-deleted tasks stay no-ops
	// even when they still have live children.
	if !in.DeleteChildren {
		for _, id := range ids {
			task, err := uc.tasks.Get(in.GoalID, id)
			if err != nil {
				return nil, fmt.Errorf("get task: %w", err)
			}
			if task == nil || task.Deleted {
				continue
			}
			live, err := uc.hasLiveChildren(in.GoalID, id)
			if err != nil {
				return nil, err
			}
			if live {
				return nil, fmt.Errorf("task %s: %w", id, domain.ErrTaskHasChildren)
			}
		}
	}

	// Mutation pass. Parents are processed before children (hierarchical
	// order), so a child already swept up by its parent's subtree is seen
	// as deleted and skipped.
	now := uc.clock.Now()
	var removed []*domain.Task
	parents := newParentSet()
	for _, id := range ids {
		task, err := uc.tasks.Get(in.GoalID, id)
		if err != nil {
			return nil, fmt.Errorf("get task: %w", err)
		}
		if task == nil || task.Deleted {
			continue
		}
		removed, err = uc.deleteTree(task, in.DeleteChildren, now, removed)
		if err != nil {
			return nil, err
		}
		// Only parents of explicitly requested tasks are rechecked, not
		// parents of swept descendants.
		parents.add(task.ParentID)
	}

	completed, err := recheckAll(uc.tasks, uc.clock, in.GoalID, parents)
	if err != nil {
		return nil, err
	}

	if uc.logger != nil && len(removed) > 0 {
		uc.logger.Info(in.GoalID, "task", fmt.Sprintf("soft-deleted %d tasks", len(removed)))
	}

	return &RemoveTasksOutput{RemovedTasks: removed, CompletedParents: completed}, nil
}

// deleteTree marks a task deleted and, when recurse is set, sweeps its
// non-deleted descendants depth-first. Each mutation is persisted before the
// next read so later batch entries observe it.
func (uc *RemoveTasks) deleteTree(task *domain.Task, recurse bool, now time.Time, acc []*domain.Task) ([]*domain.Task, error) {
	task.Deleted = true
	task.UpdatedAt = now
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	acc = append(acc, task)

	if !recurse {
		return acc, nil
	}
	children, err := uc.tasks.ListChildren(task.GoalID, &task.ID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	for _, c := range children {
		if c.Deleted {
			continue
		}
		acc, err = uc.deleteTree(c, true, now, acc)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// hasLiveChildren reports whether the task has at least one non-deleted
// direct child.
func (uc *RemoveTasks) hasLiveChildren(goalID int64, taskID string) (bool, error) {
	children, err := uc.tasks.ListChildren(goalID, &taskID)
	if err != nil {
		return false, fmt.Errorf("list children: %w", err)
	}
	for _, c := range children {
		if !c.Deleted {
			return true, nil
		}
	}
	return false, nil
}

// uniqueSortedTaskIDs deduplicates the IDs and puts them in hierarchical
// order, so parents are always processed before their children.
func uniqueSortedTaskIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	domain.SortTaskIDs(out)
	return out
}

// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/goalpost/internal/domain"
)

// TaskEntry describes one task to create. Entries nest: each subtask is
// created under the freshly minted ID of its enclosing entry. ParentID is
// honored only on top-level entries and must reference an already-persisted
// task; nested entries always attach to their encloser.
// Fields are ordered to minimize memory padding.
type TaskEntry struct {
	ParentID    *string     // Existing parent task ID (optional)
	Title       string      // Task title (required)
	Description string      // Task description (required)
	Subtasks    []TaskEntry // Tasks to create underneath (optional)
}

// AddTasksInput contains the parameters for adding tasks to a goal.
type AddTasksInput struct {
	Tasks  []TaskEntry // Tasks to create (at least one)
	GoalID int64       // Owning goal ID
}

// AddTasksOutput contains the result of adding tasks.
type AddTasksOutput struct {
	Tasks []*domain.Task // Created tasks in creation order
}

// AddTasks is the use case for creating tasks under a goal.
type AddTasks struct {
	goals  domain.GoalRepository
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewAddTasks creates a new AddTasks use case.
func NewAddTasks(goals domain.GoalRepository, tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *AddTasks {
	return &AddTasks{
		goals:  goals,
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute validates every entry, then mints IDs and persists all created
// tasks in a single write. A validation failure leaves the store untouched.
func (uc *AddTasks) Execute(_ context.Context, in AddTasksInput) (*AddTasksOutput, error) {
	plan, err := loadPlan(uc.goals, in.GoalID)
	if err != nil {
		return nil, err
	}
	if len(in.Tasks) == 0 {
		return nil, domain.ErrNoTasksGiven
	}
	if err := uc.validateEntries(in.GoalID, in.Tasks, true); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	var created []*domain.Task
	for _, e := range in.Tasks {
		created, err = uc.createEntry(in.GoalID, e.ParentID, e, now, created)
		if err != nil {
			return nil, err
		}
	}
	if err := uc.tasks.SaveAll(created); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}

	// Adding tasks touches the owning plan.
	plan.UpdatedAt = now
	if err := uc.goals.SavePlan(plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(in.GoalID, "task", fmt.Sprintf("created %d tasks", len(created)))
	}

	return &AddTasksOutput{Tasks: created}, nil
}

// validateEntries checks titles, descriptions, and explicit parent
// references for the whole entry tree before anything is created. A deleted
// parent is still a valid reference; only a missing one is not.
func (uc *AddTasks) validateEntries(goalID int64, entries []TaskEntry, topLevel bool) error {
	for _, e := range entries {
		if e.Title == "" {
			return domain.ErrEmptyTitle
		}
		if e.Description == "" {
			return domain.ErrEmptyDescription
		}
		if topLevel && e.ParentID != nil {
			if !domain.ValidTaskID(*e.ParentID) {
				return fmt.Errorf("parent %q: %w", *e.ParentID, domain.ErrInvalidTaskID)
			}
			parent, err := uc.tasks.Get(goalID, *e.ParentID)
			if err != nil {
				return fmt.Errorf("get parent task: %w", err)
			}
			if parent == nil {
				return fmt.Errorf("parent %q: %w", *e.ParentID, domain.ErrParentTaskNotFound)
			}
		}
		if err := uc.validateEntries(goalID, e.Subtasks, false); err != nil {
			return err
		}
	}
	return nil
}

// createEntry mints an ID for one entry, builds its task, and recurses into
// its subtasks with the new ID as their parent.
func (uc *AddTasks) createEntry(goalID int64, parentID *string, e TaskEntry, now time.Time, acc []*domain.Task) ([]*domain.Task, error) {
	seq, err := uc.tasks.NextSeq(goalID, domain.ParentKey(parentID))
	if err != nil {
		return nil, fmt.Errorf("allocate task ID: %w", err)
	}
	id := domain.ComposeTaskID(parentID, seq)

	task := &domain.Task{
		ID:          id,
		GoalID:      goalID,
		ParentID:    parentID,
		Title:       e.Title,
		Description: e.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	acc = append(acc, task)

	for _, sub := range e.Subtasks {
		acc, err = uc.createEntry(goalID, &id, sub, now, acc)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

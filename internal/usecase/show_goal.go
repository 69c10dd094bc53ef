package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/goalpost/internal/domain"
)

// ShowGoalInput contains the parameters for showing a goal.
type ShowGoalInput struct {
	GoalID         int64 // Goal to show
	IncludeDeleted bool  // Include soft-deleted tasks in the tree
}

// ShowGoalOutput contains a goal with its plan and full task tree.
type ShowGoalOutput struct {
	Goal  *domain.Goal   // The goal
	Plan  *domain.Plan   // Its plan record
	Tasks []*domain.Task // Task tree in hierarchical ID order
}

// ShowGoal is the use case for displaying one goal with its task tree.
type ShowGoal struct {
	goals domain.GoalRepository
	tasks domain.TaskRepository
}

// NewShowGoal creates a new ShowGoal use case.
func NewShowGoal(goals domain.GoalRepository, tasks domain.TaskRepository) *ShowGoal {
	return &ShowGoal{
		goals: goals,
		tasks: tasks,
	}
}

// Execute loads the goal, its plan, and its tasks.
func (uc *ShowGoal) Execute(_ context.Context, in ShowGoalInput) (*ShowGoalOutput, error) {
	goal, err := uc.goals.GetGoal(in.GoalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	plan, err := uc.goals.GetPlan(in.GoalID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}

	all, err := uc.tasks.ListByGoal(in.GoalID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]*domain.Task, 0, len(all))
	for _, t := range all {
		if t.Deleted && !in.IncludeDeleted {
			continue
		}
		tasks = append(tasks, t)
	}

	return &ShowGoalOutput{Goal: goal, Plan: plan, Tasks: tasks}, nil
}

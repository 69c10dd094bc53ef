package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/goalpost/internal/domain"
)

// GoalSummary pairs a goal with its task progress.
// Fields are ordered to minimize memory padding.
type GoalSummary struct {
	Goal           *domain.Goal // The goal
	TotalTasks     int          // Non-deleted tasks
	CompletedTasks int          // Non-deleted complete tasks
}

// ListGoalsOutput contains all goals with their progress counts.
type ListGoalsOutput struct {
	Goals []GoalSummary // Ordered by goal ID
}

// ListGoals is the use case for listing all goals.
type ListGoals struct {
	goals domain.GoalRepository
	tasks domain.TaskRepository
}

// NewListGoals creates a new ListGoals use case.
func NewListGoals(goals domain.GoalRepository, tasks domain.TaskRepository) *ListGoals {
	return &ListGoals{
		goals: goals,
		tasks: tasks,
	}
}

// Execute lists every goal with its task counts.
func (uc *ListGoals) Execute(_ context.Context) (*ListGoalsOutput, error) {
	goals, err := uc.goals.ListGoals()
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	summaries := make([]GoalSummary, 0, len(goals))
	for _, g := range goals {
		tasks, err := uc.tasks.ListByGoal(g.ID)
		if err != nil {
			return nil, fmt.Errorf("list tasks for goal %d: %w", g.ID, err)
		}
		s := GoalSummary{Goal: g}
		for _, t := range tasks {
			if t.Deleted {
				continue
			}
			s.TotalTasks++
			if t.IsComplete {
				s.CompletedTasks++
			}
		}
		summaries = append(summaries, s)
	}

	return &ListGoalsOutput{Goals: summaries}, nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/goalpost/internal/domain"
)

// CreateGoalInput contains the parameters for creating a goal.
type CreateGoalInput struct {
	Description string // Goal description (required)
	RepoName    string // External repository label (optional)
}

// CreateGoalOutput contains the result of creating a goal.
type CreateGoalOutput struct {
	Goal *domain.Goal // The created goal
}

// CreateGoal is the use case for creating a goal together with its empty
// plan record. Goals are immutable after creation and never deleted.
type CreateGoal struct {
	goals  domain.GoalRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewCreateGoal creates a new CreateGoal use case.
func NewCreateGoal(goals domain.GoalRepository, clock domain.Clock, logger domain.Logger) *CreateGoal {
	return &CreateGoal{
		goals:  goals,
		clock:  clock,
		logger: logger,
	}
}

// Execute creates a goal and its plan record.
func (uc *CreateGoal) Execute(_ context.Context, in CreateGoalInput) (*CreateGoalOutput, error) {
	// Validate description
	if in.Description == "" {
		return nil, domain.ErrEmptyDescription
	}

	// Get next goal ID
	id, err := uc.goals.NextGoalID()
	if err != nil {
		return nil, fmt.Errorf("generate goal ID: %w", err)
	}

	// Create goal
	now := uc.clock.Now()
	goal := &domain.Goal{
		ID:          id,
		Description: in.Description,
		RepoName:    in.RepoName,
		CreatedAt:   now,
	}
	if err := uc.goals.SaveGoal(goal); err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}

	// Create the empty plan; task membership is derived from the task set,
	// so the plan only carries its timestamp.
	plan := &domain.Plan{
		GoalID:    id,
		UpdatedAt: now,
	}
	if err := uc.goals.SavePlan(plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(id, "goal", fmt.Sprintf("created: %q", in.Description))
	}

	return &CreateGoalOutput{Goal: goal}, nil
}

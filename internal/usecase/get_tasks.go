package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/runoshun/goalpost/internal/domain"
)

// GetTasksInput contains the parameters for querying tasks.
// Fields are ordered to minimize memory padding.
type GetTasksInput struct {
	TaskIDs        []string            // Select specific tasks (empty = goal-level view)
	Scope          domain.SubtaskScope // How deep to descend below the selection (empty = none)
	GoalID         int64               // Owning goal ID
	IncludeDeleted bool                // Include soft-deleted tasks
}

// GetTasksOutput contains the query result.
type GetTasksOutput struct {
	Tasks []*domain.Task // Matching tasks in hierarchical ID order
}

// GetTasks is the read-only use case for querying a goal's task tree.
type GetTasks struct {
	goals domain.GoalRepository
	tasks domain.TaskRepository
}

// NewGetTasks creates a new GetTasks use case.
func NewGetTasks(goals domain.GoalRepository, tasks domain.TaskRepository) *GetTasks {
	return &GetTasks{
		goals: goals,
		tasks: tasks,
	}
}

// Execute answers the query. With explicit TaskIDs the result is the
// matching tasks plus, per Scope, their direct children or full subtrees;
// unknown IDs are dropped silently. Without TaskIDs the result is the
// top-level tasks (none), those plus direct children (first-level), or the
// whole goal (recursive). The deletion filter applies before traversal, so
// recursion never descends through a deleted task unless IncludeDeleted is
// set.
func (uc *GetTasks) Execute(_ context.Context, in GetTasksInput) (*GetTasksOutput, error) {
	if _, err := loadPlan(uc.goals, in.GoalID); err != nil {
		return nil, err
	}
	scope := in.Scope
	if scope == "" {
		scope = domain.SubtaskScopeNone
	}
	if !scope.IsValid() {
		return nil, fmt.Errorf("scope %q: %w", string(scope), domain.ErrInvalidSubtaskScope)
	}

	all, err := uc.tasks.ListByGoal(in.GoalID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	// Index the filtered set so recursive steps never scan the whole goal.
	var visible []*domain.Task
	var roots []*domain.Task
	byID := make(map[string]*domain.Task)
	children := make(map[string][]*domain.Task)
	for _, t := range all {
		if t.Deleted && !in.IncludeDeleted {
			continue
		}
		visible = append(visible, t)
		byID[t.ID] = t
		if t.ParentID == nil {
			roots = append(roots, t)
		} else {
			children[*t.ParentID] = append(children[*t.ParentID], t)
		}
	}

	var result []*domain.Task
	if len(in.TaskIDs) > 0 {
		seen := make(map[string]bool)
		add := func(t *domain.Task) {
			if !seen[t.ID] {
				seen[t.ID] = true
				result = append(result, t)
			}
		}
		var walk func(id string)
		walk = func(id string) {
			for _, c := range children[id] {
				add(c)
				walk(c.ID)
			}
		}
		for _, id := range in.TaskIDs {
			t, ok := byID[id]
			if !ok {
				continue
			}
			add(t)
			switch scope {
			case domain.SubtaskScopeFirstLevel:
				for _, c := range children[t.ID] {
					add(c)
				}
			case domain.SubtaskScopeRecursive:
				walk(t.ID)
			}
		}
	} else {
		switch scope {
		case domain.SubtaskScopeNone:
			result = append(result, roots...)
		case domain.SubtaskScopeFirstLevel:
			for _, t := range roots {
				result = append(result, t)
				result = append(result, children[t.ID]...)
			}
		case domain.SubtaskScopeRecursive:
			result = append(result, visible...)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return domain.CompareTaskIDs(result[i].ID, result[j].ID) < 0
	})

	return &GetTasksOutput{Tasks: result}, nil
}

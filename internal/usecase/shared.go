package usecase

import (
	"fmt"

	"github.com/runoshun/goalpost/internal/domain"
)

// loadPlan verifies that the goal and its plan exist and returns the plan.
func loadPlan(goals domain.GoalRepository, goalID int64) (*domain.Plan, error) {
	goal, err := goals.GetGoal(goalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	plan, err := goals.GetPlan(goalID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}
	return plan, nil
}

// recheckParent recomputes a parent's completion flag from its non-deleted
// direct children and persists the result. A parent is complete iff it has at
// least one non-deleted child and all of them are complete. Returns the
// parent when its flag flipped, nil otherwise.
//
// The check is single-level: flipping a parent does not re-check the
// grandparent. Multi-level propagation only happens when callers record and
// recheck each ancestor themselves.
func recheckParent(tasks domain.TaskRepository, clock domain.Clock, goalID int64, parentID *string) (*domain.Task, error) {
	if parentID == nil {
		return nil, nil
	}
	parent, err := tasks.Get(goalID, *parentID)
	if err != nil {
		return nil, fmt.Errorf("get parent task: %w", err)
	}
	if parent == nil {
		return nil, nil
	}

	children, err := tasks.ListChildren(goalID, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	live := 0
	allComplete := true
	for _, c := range children {
		if c.Deleted {
			continue
		}
		live++
		if !c.IsComplete {
			allComplete = false
		}
	}
	allComplete = live > 0 && allComplete

	if allComplete == parent.IsComplete {
		return nil, nil
	}
	parent.IsComplete = allComplete
	parent.UpdatedAt = clock.Now()
	if err := tasks.Save(parent); err != nil {
		return nil, fmt.Errorf("save parent task: %w", err)
	}
	return parent, nil
}

// parentSet accumulates parent IDs to recheck after a mutation batch,
// deduplicated in first-recorded order.
type parentSet struct {
	seen  map[string]bool
	order []string
}

func newParentSet() *parentSet {
	return &parentSet{seen: make(map[string]bool)}
}

func (s *parentSet) add(parentID *string) {
	if parentID == nil || s.seen[*parentID] {
		return
	}
	s.seen[*parentID] = true
	s.order = append(s.order, *parentID)
}

// recheckAll runs recheckParent for every recorded parent and returns the
// ones whose completion flag flipped, in recorded order.
func recheckAll(tasks domain.TaskRepository, clock domain.Clock, goalID int64, parents *parentSet) ([]*domain.Task, error) {
	var changed []*domain.Task
	for _, pid := range parents.order {
		parent, err := recheckParent(tasks, clock, goalID, &pid)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			changed = append(changed, parent)
		}
	}
	return changed, nil
}

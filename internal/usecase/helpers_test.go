package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/testutil"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// sp returns a pointer to the given string.
func sp(s string) *string {
	return &s
}

// seedGoal seeds a goal and its plan into the mock repository.
func seedGoal(goals *testutil.MockGoalRepository, id int64) {
	goals.Goals[id] = &domain.Goal{
		ID:          id,
		Description: "test goal",
		CreatedAt:   testTime,
	}
	goals.Plans[id] = &domain.Plan{GoalID: id, UpdatedAt: testTime}
	if id >= goals.NextGoalIDN {
		goals.NextGoalIDN = id + 1
	}
}

// seedTask builds a task, inserts it, and advances the sibling counter so
// that later allocations do not collide with seeded IDs.
func seedTask(tasks *testutil.MockTaskRepository, goalID int64, id string, parentID *string, complete, deleted bool) *domain.Task {
	task := &domain.Task{
		ID:          id,
		GoalID:      goalID,
		ParentID:    parentID,
		Title:       "task " + id,
		Description: "about task " + id,
		IsComplete:  complete,
		Deleted:     deleted,
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
	tasks.Put(task)

	segs := strings.Split(id, ".")
	seq, _ := strconv.ParseInt(segs[len(segs)-1], 10, 64)
	key := domain.ParentKey(parentID)
	if tasks.Counters[goalID] == nil {
		tasks.Counters[goalID] = make(map[string]int64)
	}
	if seq > tasks.Counters[goalID][key] {
		tasks.Counters[goalID][key] = seq
	}
	return task
}

// taskIDs extracts the IDs of the given tasks in order.
func taskIDs(tasks []*domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRemoveTasks(goals *testutil.MockGoalRepository, tasks *testutil.MockTaskRepository, clock *testutil.MockClock) *RemoveTasks {
	return NewRemoveTasks(goals, tasks, clock, nil)
}

func TestRemoveTasks_Execute_Leaf(t *testing.T) {
	// Setup
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	seedTask(tasks, 1, "1", nil, false, false)
	later := testTime.Add(time.Hour)
	clock := &testutil.MockClock{NowTime: later}
	uc := newTestRemoveTasks(goals, tasks, clock)

	// Execute
	out, err := uc.Execute(context.Background(), RemoveTasksInput{GoalID: 1, TaskIDs: []string{"1"}})

	// Assert
	require.NoError(t, err)
	require.Len(t, out.RemovedTasks, 1)
	assert.Equal(t, "1", out.RemovedTasks[0].ID)
	assert.True(t, tasks.Tasks[1]["1"].Deleted)
	assert.Equal(t, later, tasks.Tasks[1]["1"].UpdatedAt)
	assert.Empty(t, out.CompletedParents)
}

func TestRemoveTasks_Execute_Idempotent(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	seedTask(tasks, 1, "1", nil, false, true)
	clock := &testutil.MockClock{NowTime: testTime.Add(time.Hour)}
	uc := newTestRemoveTasks(goals, tasks, clock)

	out, err := uc.Execute(context.Background(), RemoveTasksInput{GoalID: 1, TaskIDs: []string{"1"}})

	require.NoError(t, err)
	// Deleting an already-deleted task is a no-op: absent from the result,
	// no timestamp bump.
	assert.Empty(t, out.RemovedTasks)
	assert.Equal(t, testTime, tasks.Tasks[1]["1"].UpdatedAt)
}

func TestRemoveTasks_Execute_LiveChildrenConflict(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	seedTask(tasks, 1, "1", nil, false, false)
	seedTask(tasks, 1, "1.1", sp("1"), false, false)
	clock := &testutil.MockClock{NowTime: testTime}
	uc := newTestRemoveTasks(goals, tasks, clock)

	out, err := uc.Execute(context.Background(), RemoveTasksInput{GoalID: 1, TaskIDs: []string{"1"}})

	require.ErrorIs(t, err, domain.ErrTaskHasChildren)
	assert.Nil(t, out)
	// The whole batch fails before anything is touched.
	assert.False(t, tasks.Tasks[1]["1"].Deleted)
	assert.False(t, tasks.Tasks[1]["1.1"].Deleted)
}

func TestRemoveTasks_Execute_BatchConflictLeavesAllUnmutated(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	seedTask(tasks, 1, "1", nil, false, false)
	seedTask(tasks, 1, "2", nil, false, false)
	seedTask(tasks, 1, "2.1", sp("2"), false, false)
	clock := &testutil.MockClock{NowTime: testTime}
	uc := newTestRemoveTasks(goals, tasks, clock)

	// "1" alone would succeed, but "2" has a live child: all-or-nothing.
	_, err := uc.Execute(context.Background(), RemoveTasksInput{GoalID: 1, TaskIDs: []string{"1", "2"}})

	require.ErrorIs(t, err, domain.ErrTaskHasChildren)
	assert.False(t, tasks.Tasks[1]["1"].Deleted)
	assert.False(t, tasks.Tasks[1]["2"].Deleted)
}

func TestRemoveTasks_Execute_DeleteChildrenSweepsSubtree(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	seedTask(tasks, 1, "1", nil, false, false)
	seedTask(tasks, 1, "1.1", sp("1"), false, false)
	seedTask(tasks, 1, "1.1.1", sp("1.1"), false, false)
	seedTask(tasks, 1, "1.2", sp("1"), false, true) // already deleted
	clock := &testutil.MockClock{NowTime: testTime.Add(time.Hour)}
	uc := newTestRemoveTasks(goals, tasks, clock)

	out, err := uc.Execute(context.Background(), RemoveTasksInput{
		GoalID:         1,
		TaskIDs:        []string{"1"},
		DeleteChildren: true,
	})

	require.NoError(t, err)
	// Depth-first: parent first, then each child subtree. The already
	// deleted "1.2" is not swept again.
	assert.Equal(t, []string{"1", "1.1", "1.1.1"}, taskIDs(out.RemovedTasks))
	assert.Equal(t, testTime, tasks.Tasks[1]["1.2"].UpdatedAt)
}

func TestRemoveTasks_Execute_ParentAndChildRequested(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	seedTask(tasks, 1, "1", nil, false, false)
	seedTask(tasks, 1, "1.1", sp("1"), false, false)
	clock := &testutil.MockClock{NowTime: testTime}
	uc := newTestRemoveTasks(goals, tasks, clock)

	// Child listed before parent: hierarchical ordering processes the
	// parent first and the child is swept with its subtree.
	out, err := uc.Execute(context.Background(), RemoveTasksInput{
		GoalID:         1,
		TaskIDs:        []string{"1.1", "1"},
		DeleteChildren: true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1.1"}, taskIDs(out.RemovedTasks))
}

func TestRemoveTasks_Execute_ParentAutoCompletes(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	seedTask(tasks, 1, "1", nil, false, false)
	seedTask(tasks, 1, "1.1", sp("1"), false, true)  // deleted
	seedTask(tasks, 1, "1.2", sp("1"), true, false)  // complete
	seedTask(tasks, 1, "1.3", sp("1"), false, false) // pending
	clock := &testutil.MockClock{NowTime: testTime.Add(time.Hour)}
	uc := newTestRemoveTasks(goals, tasks, clock)

	// Removing the only pending child leaves one live, complete child, so
	// the parent flips to complete.
	out, err := uc.Execute(context.Background(), RemoveTasksInput{GoalID: 1, TaskIDs: []string{"1.3"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"1.3"}, taskIDs(out.RemovedTasks))
	require.Len(t, out.CompletedParents, 1)
	assert.Equal(t, "1", out.CompletedParents[0].ID)
	assert.True(t, tasks.Tasks[1]["1"].IsComplete)
}

func TestRemoveTasks_Execute_ParentFlipsIncomplete(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	seedTask(tasks, 1, "1", nil, true, false)
	seedTask(tasks, 1, "1.1", sp("1"), true, false)
	seedTask(tasks, 1, "1.2", sp("1"), true, false)
	clock := &testutil.MockClock{NowTime: testTime.Add(time.Hour)}
	uc := newTestRemoveTasks(goals, tasks, clock)

	// Deleting every child leaves the parent with no live children, which
	// is not "all complete": the flag flips back down.
	out, err := uc.Execute(context.Background(), RemoveTasksInput{GoalID: 1, TaskIDs: []string{"1.1", "1.2"}})

	require.NoError(t, err)
	require.Len(t, out.CompletedParents, 1)
	assert.Equal(t, "1", out.CompletedParents[0].ID)
	assert.False(t, tasks.Tasks[1]["1"].IsComplete)
}

func TestRemoveTasks_Execute_UnknownIDsSkipped(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	clock := &testutil.MockClock{NowTime: testTime}
	uc := newTestRemoveTasks(goals, tasks, clock)

	out, err := uc.Execute(context.Background(), RemoveTasksInput{GoalID: 1, TaskIDs: []string{"7", "7.7"}})

	require.NoError(t, err)
	assert.Empty(t, out.RemovedTasks)
	assert.Empty(t, out.CompletedParents)
}

func TestRemoveTasks_Execute_UnknownGoal(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	clock := &testutil.MockClock{NowTime: testTime}
	uc := newTestRemoveTasks(goals, tasks, clock)

	_, err := uc.Execute(context.Background(), RemoveTasksInput{GoalID: 9, TaskIDs: []string{"1"}})

	require.ErrorIs(t, err, domain.ErrGoalNotFound)
}

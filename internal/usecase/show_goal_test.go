package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowGoal_Execute(t *testing.T) {
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	seedGoal(goals, 1)
	seedTask(tasks, 1, "1", nil, false, false)
	seedTask(tasks, 1, "1.1", sp("1"), false, false)
	seedTask(tasks, 1, "2", nil, false, true)
	uc := NewShowGoal(goals, tasks)

	out, err := uc.Execute(context.Background(), ShowGoalInput{GoalID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Goal.ID)
	require.NotNil(t, out.Plan)
	assert.Equal(t, []string{"1", "1.1"}, taskIDs(out.Tasks))

	withDeleted, err := uc.Execute(context.Background(), ShowGoalInput{GoalID: 1, IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1.1", "2"}, taskIDs(withDeleted.Tasks))
}

func TestShowGoal_Execute_UnknownGoal(t *testing.T) {
	uc := NewShowGoal(testutil.NewMockGoalRepository(), testutil.NewMockTaskRepository())

	_, err := uc.Execute(context.Background(), ShowGoalInput{GoalID: 4})

	require.ErrorIs(t, err, domain.ErrGoalNotFound)
}

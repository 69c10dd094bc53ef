package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/testutil"
	"github.com/runoshun/goalpost/internal/usecase"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type toolDeps struct {
	goals *testutil.MockGoalRepository
	tasks *testutil.MockTaskRepository
	clock *testutil.MockClock
}

func newToolDeps() toolDeps {
	return toolDeps{
		goals: testutil.NewMockGoalRepository(),
		tasks: testutil.NewMockTaskRepository(),
		clock: &testutil.MockClock{NowTime: testTime},
	}
}

func (d toolDeps) seedGoal(id int64) {
	d.goals.Goals[id] = &domain.Goal{ID: id, Description: "goal", CreatedAt: testTime}
	d.goals.Plans[id] = &domain.Plan{GoalID: id, UpdatedAt: testTime}
	if id >= d.goals.NextGoalIDN {
		d.goals.NextGoalIDN = id + 1
	}
}

func (d toolDeps) seedTask(goalID int64, id string, complete, deleted bool) {
	var parentID *string
	if p, ok := domain.ParentTaskID(id); ok {
		parentID = &p
	}
	d.tasks.Put(&domain.Task{
		ID:          id,
		GoalID:      goalID,
		ParentID:    parentID,
		Title:       "task " + id,
		Description: "d",
		IsComplete:  complete,
		Deleted:     deleted,
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	})
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is not text")
	return tc.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.False(t, res.IsError, "unexpected tool error: %s", resultText(t, res))
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &m))
	return m
}

func viewIDs(t *testing.T, m map[string]any, key string) []string {
	t.Helper()
	raw, ok := m[key].([]any)
	require.True(t, ok, "missing %q in result", key)
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		view, ok := v.(map[string]any)
		require.True(t, ok)
		ids = append(ids, view["id"].(string))
	}
	return ids
}

func TestToolDefinitions(t *testing.T) {
	deps := newToolDeps()
	addTasks := usecase.NewAddTasks(deps.goals, deps.tasks, deps.clock, nil)

	tests := []struct {
		name     string
		tool     mcp.Tool
		required []string
	}{
		{
			name:     "create_goal",
			tool:     NewCreateGoalTool(usecase.NewCreateGoal(deps.goals, deps.clock, nil), "").Definition(),
			required: []string{"description"},
		},
		{
			name:     "add_tasks",
			tool:     NewAddTasksTool(addTasks).Definition(),
			required: []string{"goalId", "tasks"},
		},
		{
			name:     "remove_tasks",
			tool:     NewRemoveTasksTool(usecase.NewRemoveTasks(deps.goals, deps.tasks, deps.clock, nil)).Definition(),
			required: []string{"goalId", "taskIds"},
		},
		{
			name:     "get_tasks",
			tool:     NewGetTasksTool(usecase.NewGetTasks(deps.goals, deps.tasks)).Definition(),
			required: []string{"goalId"},
		},
		{
			name:     "complete_tasks",
			tool:     NewCompleteTasksTool(usecase.NewSetCompletion(deps.goals, deps.tasks, deps.clock, nil)).Definition(),
			required: []string{"goalId", "taskIds"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.tool.Name)
			assert.NotEmpty(t, tt.tool.Description)
			assert.ElementsMatch(t, tt.required, tt.tool.InputSchema.Required)
		})
	}
}

func TestCreateGoalTool_Handle(t *testing.T) {
	deps := newToolDeps()
	tool := NewCreateGoalTool(usecase.NewCreateGoal(deps.goals, deps.clock, nil), "acme/widgets")

	res, err := tool.Handle(context.Background(), callReq(map[string]any{
		"description": "Ship the v2 importer",
	}))

	require.NoError(t, err)
	m := decodeResult(t, res)
	assert.Equal(t, float64(1), m["goalId"])

	// The detected repository name is used when the caller omits one.
	require.NotNil(t, deps.goals.Goals[1])
	assert.Equal(t, "acme/widgets", deps.goals.Goals[1].RepoName)
	assert.Equal(t, "Ship the v2 importer", deps.goals.Goals[1].Description)
}

func TestCreateGoalTool_Handle_RepoOverride(t *testing.T) {
	deps := newToolDeps()
	tool := NewCreateGoalTool(usecase.NewCreateGoal(deps.goals, deps.clock, nil), "acme/widgets")

	res, err := tool.Handle(context.Background(), callReq(map[string]any{
		"description": "g",
		"repo":        "acme/gadgets",
	}))

	require.NoError(t, err)
	decodeResult(t, res)
	assert.Equal(t, "acme/gadgets", deps.goals.Goals[1].RepoName)
}

func TestCreateGoalTool_Handle_MissingDescription(t *testing.T) {
	deps := newToolDeps()
	tool := NewCreateGoalTool(usecase.NewCreateGoal(deps.goals, deps.clock, nil), "")

	res, err := tool.Handle(context.Background(), callReq(map[string]any{}))

	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAddTasksTool_Handle(t *testing.T) {
	deps := newToolDeps()
	deps.seedGoal(1)
	tool := NewAddTasksTool(usecase.NewAddTasks(deps.goals, deps.tasks, deps.clock, nil))

	res, err := tool.Handle(context.Background(), callReq(map[string]any{
		"goalId": 1,
		"tasks": []any{
			map[string]any{
				"title":       "Design",
				"description": "Design phase",
				"subtasks": []any{
					map[string]any{"title": "Create ERD", "description": "Entity diagram"},
				},
			},
			map[string]any{"title": "Implement", "description": "Write the code"},
		},
	}))

	require.NoError(t, err)
	m := decodeResult(t, res)
	assert.Equal(t, []string{"1", "1.1", "2"}, viewIDs(t, m, "tasks"))
	require.NotNil(t, deps.tasks.Tasks[1]["1.1"])
}

func TestAddTasksTool_Handle_UnknownGoal(t *testing.T) {
	deps := newToolDeps()
	tool := NewAddTasksTool(usecase.NewAddTasks(deps.goals, deps.tasks, deps.clock, nil))

	res, err := tool.Handle(context.Background(), callReq(map[string]any{
		"goalId": 9,
		"tasks":  []any{map[string]any{"title": "t", "description": "d"}},
	}))

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "goal not found")
}

func TestRemoveTasksTool_Handle(t *testing.T) {
	deps := newToolDeps()
	deps.seedGoal(1)
	deps.seedTask(1, "1", false, false)
	deps.seedTask(1, "1.1", true, false)
	deps.seedTask(1, "1.2", false, false)
	tool := NewRemoveTasksTool(usecase.NewRemoveTasks(deps.goals, deps.tasks, deps.clock, nil))

	res, err := tool.Handle(context.Background(), callReq(map[string]any{
		"goalId":  1,
		"taskIds": []any{"1.2"},
	}))

	require.NoError(t, err)
	m := decodeResult(t, res)
	assert.Equal(t, []string{"1.2"}, viewIDs(t, m, "removedTasks"))
	// The remaining child is complete, so the parent flips.
	assert.Equal(t, []string{"1"}, viewIDs(t, m, "completedParents"))
	assert.True(t, deps.tasks.Tasks[1]["1.2"].Deleted)
}

func TestRemoveTasksTool_Handle_LiveChildrenBlocked(t *testing.T) {
	deps := newToolDeps()
	deps.seedGoal(1)
	deps.seedTask(1, "1", false, false)
	deps.seedTask(1, "1.1", false, false)
	tool := NewRemoveTasksTool(usecase.NewRemoveTasks(deps.goals, deps.tasks, deps.clock, nil))

	res, err := tool.Handle(context.Background(), callReq(map[string]any{
		"goalId":  1,
		"taskIds": []any{"1"},
	}))

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "child")
	assert.False(t, deps.tasks.Tasks[1]["1"].Deleted)
}

func TestGetTasksTool_Handle(t *testing.T) {
	deps := newToolDeps()
	deps.seedGoal(1)
	deps.seedTask(1, "1", false, false)
	deps.seedTask(1, "1.1", false, false)
	deps.seedTask(1, "2", false, false)
	tool := NewGetTasksTool(usecase.NewGetTasks(deps.goals, deps.tasks))

	// Default scope: top-level only.
	res, err := tool.Handle(context.Background(), callReq(map[string]any{"goalId": 1}))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, viewIDs(t, decodeResult(t, res), "tasks"))

	// Recursive scope: the whole tree.
	res, err = tool.Handle(context.Background(), callReq(map[string]any{
		"goalId":          1,
		"includeSubtasks": "recursive",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1.1", "2"}, viewIDs(t, decodeResult(t, res), "tasks"))

	// Selection by ID.
	res, err = tool.Handle(context.Background(), callReq(map[string]any{
		"goalId":  1,
		"taskIds": []any{"1"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, viewIDs(t, decodeResult(t, res), "tasks"))
}

func TestGetTasksTool_Handle_InvalidScope(t *testing.T) {
	deps := newToolDeps()
	deps.seedGoal(1)
	tool := NewGetTasksTool(usecase.NewGetTasks(deps.goals, deps.tasks))

	res, err := tool.Handle(context.Background(), callReq(map[string]any{
		"goalId":          1,
		"includeSubtasks": "everything",
	}))

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid subtask scope")
}

func TestCompleteTasksTool_Handle(t *testing.T) {
	deps := newToolDeps()
	deps.seedGoal(1)
	deps.seedTask(1, "1", false, false)
	deps.seedTask(1, "1.1", true, false)
	deps.seedTask(1, "1.2", false, false)
	tool := NewCompleteTasksTool(usecase.NewSetCompletion(deps.goals, deps.tasks, deps.clock, nil))

	res, err := tool.Handle(context.Background(), callReq(map[string]any{
		"goalId":  1,
		"taskIds": []any{"1.2"},
	}))

	require.NoError(t, err)
	m := decodeResult(t, res)
	assert.Equal(t, []string{"1.2"}, viewIDs(t, m, "updatedTasks"))
	assert.Equal(t, []string{"1"}, viewIDs(t, m, "completedParents"))
	assert.True(t, deps.tasks.Tasks[1]["1"].IsComplete)
}

func TestCompleteTasksTool_Handle_SilentSkip(t *testing.T) {
	deps := newToolDeps()
	deps.seedGoal(1)
	deps.seedTask(1, "1", false, false)
	deps.seedTask(1, "1.1", false, false)
	tool := NewCompleteTasksTool(usecase.NewSetCompletion(deps.goals, deps.tasks, deps.clock, nil))

	res, err := tool.Handle(context.Background(), callReq(map[string]any{
		"goalId":  1,
		"taskIds": []any{"1"},
	}))

	require.NoError(t, err)
	m := decodeResult(t, res)
	// Skipped, not an error: the task shows up nowhere in the result.
	assert.Empty(t, viewIDs(t, m, "updatedTasks"))
	assert.False(t, deps.tasks.Tasks[1]["1"].IsComplete)
}

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/runoshun/goalpost/internal/usecase"
)

// RemoveTasksTool exposes soft deletion as an MCP tool.
type RemoveTasksTool struct {
	uc *usecase.RemoveTasks
}

// NewRemoveTasksTool creates the remove_tasks tool.
func NewRemoveTasksTool(uc *usecase.RemoveTasks) *RemoveTasksTool {
	return &RemoveTasksTool{uc: uc}
}

// Definition returns the tool schema.
func (t *RemoveTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("remove_tasks",
		mcp.WithDescription("Soft-delete tasks. Deleted tasks disappear from normal queries but their IDs are "+
			"never reused. A task with live subtasks is only deletable with deleteChildren."),
		mcp.WithNumber("goalId",
			mcp.Required(),
			mcp.Description("Goal that owns the tasks"),
		),
		mcp.WithArray("taskIds",
			mcp.Required(),
			mcp.Description("Task IDs to delete"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("deleteChildren",
			mcp.Description("Also delete every live descendant of each task"),
		),
	)
}

// Handle executes the tool.
func (t *RemoveTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID, err := req.RequireInt("goalId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	taskIDs, err := req.RequireStringSlice("taskIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := t.uc.Execute(ctx, usecase.RemoveTasksInput{
		GoalID:         int64(goalID),
		TaskIDs:        taskIDs,
		DeleteChildren: req.GetBool("deleteChildren", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"removedTasks":     toTaskViews(out.RemovedTasks),
		"completedParents": toTaskViews(out.CompletedParents),
	}), nil
}

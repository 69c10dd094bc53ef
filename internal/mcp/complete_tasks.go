package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/runoshun/goalpost/internal/usecase"
)

// CompleteTasksTool exposes completion as an MCP tool.
type CompleteTasksTool struct {
	uc *usecase.SetCompletion
}

// NewCompleteTasksTool creates the complete_tasks tool.
func NewCompleteTasksTool(uc *usecase.SetCompletion) *CompleteTasksTool {
	return &CompleteTasksTool{uc: uc}
}

// Definition returns the tool schema.
func (t *CompleteTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_tasks",
		mcp.WithDescription("Mark tasks complete, in the given order. A task with incomplete subtasks is "+
			"skipped unless completeChildren is set; skipped tasks are reported by their absence from "+
			"updatedTasks. Completing the last open child also completes its parent."),
		mcp.WithNumber("goalId",
			mcp.Required(),
			mcp.Description("Goal that owns the tasks"),
		),
		mcp.WithArray("taskIds",
			mcp.Required(),
			mcp.Description("Task IDs to complete, processed in order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("completeChildren",
			mcp.Description("First complete every descendant, then the task itself"),
		),
	)
}

// Handle executes the tool.
func (t *CompleteTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID, err := req.RequireInt("goalId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	taskIDs, err := req.RequireStringSlice("taskIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := t.uc.Execute(ctx, usecase.SetCompletionInput{
		GoalID:           int64(goalID),
		TaskIDs:          taskIDs,
		CompleteChildren: req.GetBool("completeChildren", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"updatedTasks":     toTaskViews(out.UpdatedTasks),
		"completedParents": toTaskViews(out.CompletedParents),
	}), nil
}

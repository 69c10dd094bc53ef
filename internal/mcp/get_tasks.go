package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/usecase"
)

// GetTasksTool exposes the task query as an MCP tool.
type GetTasksTool struct {
	uc *usecase.GetTasks
}

// NewGetTasksTool creates the get_tasks tool.
func NewGetTasksTool(uc *usecase.GetTasks) *GetTasksTool {
	return &GetTasksTool{uc: uc}
}

// Definition returns the tool schema.
func (t *GetTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("get_tasks",
		mcp.WithDescription("Query a goal's tasks in hierarchical order. Without taskIds the goal-level view "+
			"is returned; with taskIds, the selected tasks. includeSubtasks controls how deep the result "+
			"descends below the selection."),
		mcp.WithNumber("goalId",
			mcp.Required(),
			mcp.Description("Goal to query"),
		),
		mcp.WithArray("taskIds",
			mcp.Description("Select specific tasks; unknown IDs are skipped"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("includeSubtasks",
			mcp.Description("How deep to descend below the selection"),
			mcp.Enum(string(domain.SubtaskScopeNone), string(domain.SubtaskScopeFirstLevel), string(domain.SubtaskScopeRecursive)),
			mcp.DefaultString(string(domain.SubtaskScopeNone)),
		),
		mcp.WithBoolean("includeDeletedTasks",
			mcp.Description("Include soft-deleted tasks"),
		),
	)
}

// Handle executes the tool.
func (t *GetTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID, err := req.RequireInt("goalId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	scope, err := domain.ParseSubtaskScope(req.GetString("includeSubtasks", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := t.uc.Execute(ctx, usecase.GetTasksInput{
		GoalID:         int64(goalID),
		TaskIDs:        req.GetStringSlice("taskIds", nil),
		Scope:          scope,
		IncludeDeleted: req.GetBool("includeDeletedTasks", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{"tasks": toTaskViews(out.Tasks)}), nil
}

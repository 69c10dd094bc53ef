package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/runoshun/goalpost/internal/usecase"
)

// CreateGoalTool exposes goal creation as an MCP tool.
type CreateGoalTool struct {
	uc       *usecase.CreateGoal
	repoName string
}

// NewCreateGoalTool creates the create_goal tool. repoName is the detected
// repository label used when the caller omits one.
func NewCreateGoalTool(uc *usecase.CreateGoal, repoName string) *CreateGoalTool {
	return &CreateGoalTool{uc: uc, repoName: repoName}
}

// Definition returns the tool schema.
func (t *CreateGoalTool) Definition() mcp.Tool {
	return mcp.NewTool("create_goal",
		mcp.WithDescription("Create a goal that owns a tree of tasks. Returns the new goal's ID."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What the goal is about"),
		),
		mcp.WithString("repo",
			mcp.Description("Repository the goal belongs to; defaults to the repository this server runs in"),
		),
	)
}

// Handle executes the tool.
func (t *CreateGoalTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description, err := req.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	repo := req.GetString("repo", t.repoName)

	out, err := t.uc.Execute(ctx, usecase.CreateGoalInput{
		Description: description,
		RepoName:    repo,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{"goalId": out.Goal.ID}), nil
}

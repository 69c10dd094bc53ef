package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/runoshun/goalpost/internal/usecase"
)

// AddTasksTool exposes task creation as an MCP tool.
type AddTasksTool struct {
	uc *usecase.AddTasks
}

// NewAddTasksTool creates the add_tasks tool.
func NewAddTasksTool(uc *usecase.AddTasks) *AddTasksTool {
	return &AddTasksTool{uc: uc}
}

// taskEntryArg mirrors usecase.TaskEntry for argument binding.
type taskEntryArg struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ParentID    *string        `json:"parentId,omitempty"`
	Subtasks    []taskEntryArg `json:"subtasks,omitempty"`
}

type addTasksArgs struct {
	GoalID int64          `json:"goalId"`
	Tasks  []taskEntryArg `json:"tasks"`
}

// Definition returns the tool schema.
func (t *AddTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("add_tasks",
		mcp.WithDescription("Add tasks to a goal. Entries nest through subtasks; a top-level entry may attach "+
			"under an existing task via parentId. Task IDs are assigned by the server and never reused."),
		mcp.WithNumber("goalId",
			mcp.Required(),
			mcp.Description("Goal that owns the tasks"),
		),
		mcp.WithArray("tasks",
			mcp.Required(),
			mcp.Description("Tasks to create, in order"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":       map[string]any{"type": "string", "description": "Task title"},
					"description": map[string]any{"type": "string", "description": "Task description"},
					"parentId":    map[string]any{"type": "string", "description": "Existing task to attach under (top-level entries only)"},
					"subtasks":    map[string]any{"type": "array", "description": "Nested tasks created under this one", "items": map[string]any{"type": "object"}},
				},
				"required": []string{"title", "description"},
			}),
		),
	)
}

// Handle executes the tool.
func (t *AddTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args addTasksArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := t.uc.Execute(ctx, usecase.AddTasksInput{
		GoalID: args.GoalID,
		Tasks:  entriesFromArgs(args.Tasks),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{"tasks": toTaskViews(out.Tasks)}), nil
}

func entriesFromArgs(args []taskEntryArg) []usecase.TaskEntry {
	entries := make([]usecase.TaskEntry, 0, len(args))
	for _, a := range args {
		entries = append(entries, usecase.TaskEntry{
			ParentID:    a.ParentID,
			Title:       a.Title,
			Description: a.Description,
			Subtasks:    entriesFromArgs(a.Subtasks),
		})
	}
	return entries
}

// Package mcp wires the application's use cases into an MCP tool surface.
//
// This is a composition root: the app container builds the use cases and
// this package injects them into the tools. No business logic lives here.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/runoshun/goalpost/internal/app"
)

// New creates the MCP server with the five goalpost tools registered.
func New(c *app.Container, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"goalpost",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	createGoal := NewCreateGoalTool(c.CreateGoalUseCase(), c.Config.RepoName)
	s.AddTool(createGoal.Definition(), createGoal.Handle)

	addTasks := NewAddTasksTool(c.AddTasksUseCase())
	s.AddTool(addTasks.Definition(), addTasks.Handle)

	removeTasks := NewRemoveTasksTool(c.RemoveTasksUseCase())
	s.AddTool(removeTasks.Definition(), removeTasks.Handle)

	getTasks := NewGetTasksTool(c.GetTasksUseCase())
	s.AddTool(getTasks.Definition(), getTasks.Handle)

	completeTasks := NewCompleteTasksTool(c.SetCompletionUseCase())
	s.AddTool(completeTasks.Definition(), completeTasks.Handle)

	return s
}

// Run ensures the store exists, then serves on stdio until the client
// disconnects.
func Run(c *app.Container, version string) error {
	if err := c.StoreInitializer.Initialize(); err != nil {
		return err
	}
	return server.ServeStdio(New(c, version))
}

// serverInstructions tells the client how the task model behaves.
func serverInstructions() string {
	return `goalpost is a hierarchical task tracker. A goal owns a tree of tasks;
task IDs are dot-paths under the goal ("1", "1.2", "1.2.3") that encode the
hierarchy and are stable forever: deleting a task never renumbers its
siblings, and new siblings never reuse an old ID.

Usage:
- create_goal once per piece of work; keep the returned goalId.
- add_tasks with nested subtasks to lay out a plan in one call.
- complete_tasks as work finishes. Completing all children of a task
  completes the task itself; you normally only complete leaves.
- get_tasks with includeSubtasks="recursive" to see the whole tree.
- remove_tasks when a task becomes irrelevant (it is a soft delete).

A task with incomplete subtasks cannot be completed directly (it is skipped
unless completeChildren is set), and a task with live subtasks cannot be
removed without deleteChildren.`
}

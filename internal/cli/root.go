// Package cli provides the command-line interface for goalpost.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/goalpost/internal/app"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupGoal  = "goal"
	groupTask  = "task"
)

// NewRootCommand creates the root command for goalpost.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "goalpost",
		Short: "Hierarchical goal and task tracking",
		Long: `goalpost tracks goals and their trees of tasks.

A goal owns tasks addressed by stable dot-path IDs ("1", "1.2", "1.2.3").
IDs never change: deleting a task neither renumbers its siblings nor frees
its ID, so references held elsewhere stay valid forever. Completing the
last open subtask of a task completes the task itself.

The store lives under the enclosing git repository's .git directory (shared
by all of its worktrees), or under ~/.goalpost outside a repository. Run
'goalpost serve' to expose the tracker as MCP tools on stdio.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupGoal, Title: "Goal Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
	)

	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	serveCmd := newServeCommand(c, version)
	serveCmd.GroupID = groupSetup

	goalCmd := newGoalCommand(c)
	goalCmd.GroupID = groupGoal

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupGoal

	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupTask

	root.AddCommand(
		initCmd,
		serveCmd,
		goalCmd,
		tuiCmd,
		taskCmd,
	)

	return root
}

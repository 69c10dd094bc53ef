package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/goalpost/internal/app"
	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/usecase"
)

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage a goal's tasks",
		Long: `Create, list, complete, and remove tasks.

Tasks are addressed by dot-path IDs ("1", "1.2", "1.2.3") that encode the
hierarchy. IDs are stable: removing a task never renumbers its siblings and
its ID is never reused.`,
	}

	cmd.AddCommand(
		newTaskAddCommand(c),
		newTaskListCommand(c),
		newTaskDoneCommand(c),
		newTaskRmCommand(c),
	)

	return cmd
}

// newTaskAddCommand creates the task add command.
func newTaskAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Parent      string
		From        string
		GoalID      int64
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add tasks to a goal",
		Long: `Add one task, or a whole outline of tasks, to a goal.

Examples:
  # Add a top-level task
  goalpost task add --goal 1 --title "Design schema" --body "Sketch the tables"

  # Add a subtask under task 2
  goalpost task add --goal 1 --parent 2 --title "Draft migrations" --body "One per table"

  # Add a nested outline of tasks in one call
  goalpost task add --goal 1 --from outline.yaml

File format for --from:
  tasks:
    - title: Design schema
      description: Sketch the tables
      subtasks:
        - title: Draft migrations
          description: One file per table
    - title: Wire the API
      description: REST endpoints
      parent: "2"       # optional: attach under an existing task`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.From != "" {
				return addTasksFromFile(cmd, c, opts.GoalID, opts.From)
			}

			// Require --title when not using --from
			if opts.Title == "" {
				return fmt.Errorf("required flag(s) \"title\" not set")
			}

			entry := usecase.TaskEntry{
				Title:       opts.Title,
				Description: opts.Description,
			}
			if opts.Parent != "" {
				entry.ParentID = &opts.Parent
			}

			uc := c.AddTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AddTasksInput{
				GoalID: opts.GoalID,
				Tasks:  []usecase.TaskEntry{entry},
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Tasks[0].ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.GoalID, "goal", 0, "Goal that owns the tasks (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required unless --from is used)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Parent, "parent", "", "Parent task ID (creates a subtask)")
	cmd.Flags().StringVar(&opts.From, "from", "", "Create tasks from a YAML outline file")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

// addTasksFromFile creates tasks from a YAML outline file.
func addTasksFromFile(cmd *cobra.Command, c *app.Container, goalID int64, filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	uc := c.AddTasksFromFileUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.AddTasksFromFileInput{
		GoalID:  goalID,
		Content: string(content),
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Created %d task(s):\n", len(out.Tasks))
	printTaskTree(w, out.Tasks)
	return nil
}

// newTaskListCommand creates the task list command.
func newTaskListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		TaskIDs        []string
		Scope          string
		GoalID         int64
		IncludeDeleted bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a goal's tasks",
		Long: `Display a goal's tasks in hierarchical order.

By default only top-level tasks are shown. Use --subtasks to descend
(first-level or recursive), and --ids to select specific tasks. Soft-deleted
tasks are hidden unless --deleted is given.

Output format is tab-separated with columns:
  ID, STATE, TITLE

Examples:
  # Top-level overview
  goalpost task list --goal 1

  # The whole tree
  goalpost task list --goal 1 --subtasks recursive

  # One subtree, one level deep
  goalpost task list --goal 1 --ids 2 --subtasks first-level`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := domain.ParseSubtaskScope(opts.Scope)
			if err != nil {
				return fmt.Errorf("scope %q: %w", opts.Scope, err)
			}

			uc := c.GetTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.GetTasksInput{
				GoalID:         opts.GoalID,
				TaskIDs:        opts.TaskIDs,
				Scope:          scope,
				IncludeDeleted: opts.IncludeDeleted,
			})
			if err != nil {
				return err
			}

			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.GoalID, "goal", 0, "Goal to list (required)")
	cmd.Flags().StringSliceVar(&opts.TaskIDs, "ids", nil, "Select specific task IDs (comma-separated)")
	cmd.Flags().StringVar(&opts.Scope, "subtasks", "", "How deep to descend: none, first-level, or recursive")
	cmd.Flags().BoolVar(&opts.IncludeDeleted, "deleted", false, "Include soft-deleted tasks")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

// newTaskDoneCommand creates the task done command.
func newTaskDoneCommand(c *app.Container) *cobra.Command {
	var opts struct {
		GoalID   int64
		Children bool
	}

	cmd := &cobra.Command{
		Use:   "done <task-id>...",
		Short: "Mark tasks complete",
		Long: `Mark tasks complete, in the given order.

A task with incomplete subtasks is skipped unless --children is given, which
completes the whole subtree first. Completing the last open subtask of a
task also completes the task itself, and that cascade is reported.

Examples:
  goalpost task done --goal 1 1.2 1.3
  goalpost task done --goal 1 2 --children`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.SetCompletionUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.SetCompletionInput{
				GoalID:           opts.GoalID,
				TaskIDs:          args,
				CompleteChildren: opts.Children,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.UpdatedTasks) == 0 {
				_, _ = fmt.Fprintln(w, "No tasks updated (unknown IDs or incomplete subtasks)")
				return nil
			}
			for _, t := range out.UpdatedTasks {
				_, _ = fmt.Fprintf(w, "Completed task %s\n", t.ID)
			}
			for _, p := range out.CompletedParents {
				_, _ = fmt.Fprintf(w, "Completed parent %s (all subtasks done)\n", p.ID)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.GoalID, "goal", 0, "Goal that owns the tasks (required)")
	cmd.Flags().BoolVar(&opts.Children, "children", false, "First complete every descendant")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

// newTaskRmCommand creates the task rm command.
func newTaskRmCommand(c *app.Container) *cobra.Command {
	var opts struct {
		GoalID   int64
		Children bool
	}

	cmd := &cobra.Command{
		Use:   "rm <task-id>...",
		Short: "Soft-delete tasks",
		Long: `Soft-delete tasks.

Deleted tasks disappear from normal listings but keep their IDs forever;
siblings are never renumbered. A task with live subtasks can only be
removed with --children, which sweeps the whole subtree. Removing an
incomplete task may complete its parent when every remaining sibling is
done, and that cascade is reported.

Examples:
  goalpost task rm --goal 1 1.4
  goalpost task rm --goal 1 2 --children`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.RemoveTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RemoveTasksInput{
				GoalID:         opts.GoalID,
				TaskIDs:        args,
				DeleteChildren: opts.Children,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.RemovedTasks) == 0 {
				_, _ = fmt.Fprintln(w, "No tasks removed (unknown or already deleted IDs)")
				return nil
			}
			for _, t := range out.RemovedTasks {
				_, _ = fmt.Fprintf(w, "Removed task %s\n", t.ID)
			}
			for _, p := range out.CompletedParents {
				_, _ = fmt.Fprintf(w, "Completed parent %s (all remaining subtasks done)\n", p.ID)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.GoalID, "goal", 0, "Goal that owns the tasks (required)")
	cmd.Flags().BoolVar(&opts.Children, "children", false, "Also delete every live descendant")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

// printTaskList prints tasks in TSV format.
func printTaskList(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATE\tTITLE")

	for _, t := range tasks {
		state := "open"
		switch {
		case t.Deleted:
			state = "deleted"
		case t.IsComplete:
			state = "done"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, state, t.Title)
	}
}

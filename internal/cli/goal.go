package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/goalpost/internal/app"
	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/usecase"
)

// newGoalCommand creates the goal command group.
func newGoalCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
		Long:  `Create, list, and inspect goals. A goal owns a tree of tasks.`,
	}

	cmd.AddCommand(
		newGoalNewCommand(c),
		newGoalListCommand(c),
		newGoalShowCommand(c),
	)

	return cmd
}

// newGoalNewCommand creates the goal new command.
func newGoalNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Description string
		Repo        string
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new goal",
		Long: `Create a new goal.

The repository label defaults to the repository the command runs in.

Examples:
  # Create a goal in the current repository
  goalpost goal new --description "Ship the v2 importer"

  # Create a goal for another repository
  goalpost goal new --description "Upgrade CI" --repo acme/infra`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo := opts.Repo
			if repo == "" {
				repo = c.Config.RepoName
			}

			uc := c.CreateGoalUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CreateGoalInput{
				Description: opts.Description,
				RepoName:    repo,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created goal #%d\n", out.Goal.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Description, "description", "", "What the goal is about (required)")
	cmd.Flags().StringVar(&opts.Repo, "repo", "", "Repository label (default: detected repository)")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

// newGoalListCommand creates the goal list command.
func newGoalListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		Long: `Display all goals with their task progress.

Output format is tab-separated with columns:
  ID, REPO, TASKS, CREATED, DESCRIPTION

TASKS counts non-deleted tasks as completed/total.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ListGoalsUseCase()
			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}

			printGoalList(cmd.OutOrStdout(), out.Goals)
			return nil
		},
	}
}

// newGoalShowCommand creates the goal show command.
func newGoalShowCommand(c *app.Container) *cobra.Command {
	var includeDeleted bool

	cmd := &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show a goal with its task tree",
		Long: `Display one goal with its full task tree.

Tasks are shown in hierarchical order, indented by depth, with [x] marking
completed tasks. Soft-deleted tasks are hidden unless --deleted is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, err := parseGoalID(args[0])
			if err != nil {
				return err
			}

			uc := c.ShowGoalUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowGoalInput{
				GoalID:         goalID,
				IncludeDeleted: includeDeleted,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Goal #%d: %s\n", out.Goal.ID, out.Goal.Description)
			if out.Goal.RepoName != "" {
				_, _ = fmt.Fprintf(w, "Repo:    %s\n", out.Goal.RepoName)
			}
			_, _ = fmt.Fprintf(w, "Created: %s\n", out.Goal.CreatedAt.Format("2006-01-02 15:04"))
			_, _ = fmt.Fprintf(w, "Updated: %s\n", out.Plan.UpdatedAt.Format("2006-01-02 15:04"))

			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(w, "\nNo tasks.")
				return nil
			}
			_, _ = fmt.Fprintln(w)
			printTaskTree(w, out.Tasks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeDeleted, "deleted", false, "Include soft-deleted tasks")

	return cmd
}

// parseGoalID parses a goal ID argument.
func parseGoalID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid goal id %q", s)
	}
	return id, nil
}

// printGoalList prints goals in TSV format.
func printGoalList(w io.Writer, goals []usecase.GoalSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tREPO\tTASKS\tCREATED\tDESCRIPTION")

	for _, s := range goals {
		repoStr := "-"
		if s.Goal.RepoName != "" {
			repoStr = s.Goal.RepoName
		}

		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d/%d\t%s\t%s\n",
			s.Goal.ID,
			repoStr,
			s.CompletedTasks,
			s.TotalTasks,
			s.Goal.CreatedAt.Format("2006-01-02"),
			s.Goal.Description,
		)
	}
}

// printTaskTree prints tasks indented by their depth in the ID hierarchy.
// The input is expected in hierarchical ID order.
func printTaskTree(w io.Writer, tasks []*domain.Task) {
	for _, t := range tasks {
		indent := strings.Repeat("  ", strings.Count(t.ID, "."))
		marker := "[ ]"
		if t.IsComplete {
			marker = "[x]"
		}
		suffix := ""
		if t.Deleted {
			suffix = " (deleted)"
		}
		_, _ = fmt.Fprintf(w, "%s%s %s %s%s\n", indent, marker, t.ID, t.Title, suffix)
	}
}

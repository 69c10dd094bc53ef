package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/goalpost/internal/app"
	"github.com/runoshun/goalpost/internal/tui"
)

// newTUICommand creates the tui command for browsing a goal's task tree.
func newTUICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui <goal-id>",
		Short: "Browse a goal's task tree interactively",
		Long: `Launch an interactive view of a goal's task tree.

Keys:
  up/down, j/k   move the cursor
  space, c       mark the selected task complete
  C              complete the selected task with its subtree
  d              soft-delete the selected task
  x              toggle visibility of deleted tasks
  r              reload from the store
  ?              toggle expanded help
  q              quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			goalID, err := parseGoalID(args[0])
			if err != nil {
				return err
			}
			model := tui.New(c, goalID)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/goalpost/internal/app"
	"github.com/runoshun/goalpost/internal/mcp"
)

// newServeCommand creates the serve command for running the MCP server.
func newServeCommand(c *app.Container, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run goalpost as an MCP server on stdio.

The server exposes five tools: create_goal, add_tasks, remove_tasks,
get_tasks, and complete_tasks. The store is created on first use, so no
separate init is needed. Register it with an MCP client, for example:

  {"command": "goalpost", "args": ["serve"]}`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Run(c, version)
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/goalpost/internal/app"
	"github.com/runoshun/goalpost/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the goalpost store",
		Long: `Initialize the goalpost data directory.

This command creates the data directory with:
- an empty store (data.json by default)
- goalpost.toml: a commented sample configuration
- logs/: directory for log files

Inside a git repository the data directory is <gitdir>/goalpost, shared by
every worktree of the repository. Outside one it is $GOALPOST_HOME or
~/.goalpost. Running init twice is harmless.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitStoreInput{
				DataDir: c.Config.DataDir,
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goalpost already initialized in %s\n", out.DataDir)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized goalpost in %s\n", out.DataDir)
			return nil
		},
	}
}

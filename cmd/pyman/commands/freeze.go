package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newFreezeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "freeze <project>",
		Short: "Write the installed packages of a project to its requirements file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := c.app.Freeze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(manifest.Requirements())
			return err
		},
	}
}

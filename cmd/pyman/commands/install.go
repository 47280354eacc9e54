package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <project> <package...>",
		Short: "Install packages into a project's environment",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			res, err := c.app.Install(cmd.Context(), args[0], args[1:], strict)
			if res != nil {
				w, r := renderer(cmd)
				renderResult(w, r, *res)
			}
			return err
		},
	}
	cmd.Flags().Bool("strict", false, "Fail on packages missing from the registry")
	return cmd
}

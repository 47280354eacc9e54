package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pyman/internal/ui/style"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <package...>",
		Short: "Print the install order of registry packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := c.app.Resolve(args)
			if err != nil {
				return err
			}

			w, r := renderer(cmd)
			for i, name := range order {
				_, _ = fmt.Fprintf(w, "%s %s\n", style.Muted(r, fmt.Sprintf("%3d.", i+1)), name)
			}
			return nil
		},
	}
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/ui/style"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [project...]",
		Short: "Show what setup would install for each project",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			plans, err := c.app.Plan(cmd.Context(), args, strict)
			if err != nil {
				return err
			}

			w, r := renderer(cmd)
			for _, p := range plans {
				_, _ = fmt.Fprintln(w, style.Heading(r, p.Project.Name)+" "+style.Muted(r, p.Project.EnvPath()))
				for _, spec := range p.Plan {
					_, _ = fmt.Fprintln(w, "  "+style.Status(r, domain.VertexStatusPending, spec.Name+"=="+spec.VersionOrLatest()))
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "Fail on packages missing from the registry")
	return cmd
}

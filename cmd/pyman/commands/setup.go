package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/pyman/internal/app"
	"go.trai.ch/pyman/internal/engine/installer"
	"go.trai.ch/pyman/internal/ui/style"
)

func (c *CLI) newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup [project...]",
		Short: "Create environments and install the packages of configured projects",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			strict, _ := cmd.Flags().GetBool("strict")
			jobs, _ := cmd.Flags().GetInt("jobs")

			results, err := c.app.Setup(cmd.Context(), args, app.SetupOptions{
				Force:  force,
				Strict: strict,
				Jobs:   jobs,
			})
			w, r := renderer(cmd)
			for _, res := range results {
				renderResult(w, r, res)
			}
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Reinstall even when the environment is up to date")
	cmd.Flags().Bool("strict", false, "Fail on packages missing from the registry")
	cmd.Flags().IntP("jobs", "j", 0, "Number of projects to set up in parallel (default: number of CPUs)")
	return cmd
}

func renderResult(w io.Writer, r *lipgloss.Renderer, res installer.Result) {
	header := style.Heading(r, res.Project) + " " + style.Muted(r, res.EnvPath)
	if res.UpToDate {
		header += " " + style.Muted(r, "(up to date)")
	}
	_, _ = fmt.Fprintln(w, header)

	for _, pkg := range res.Packages {
		label := pkg.Spec.Name + "==" + pkg.Spec.VersionOrLatest()
		_, _ = fmt.Fprintln(w, "  "+style.Status(r, pkg.Status, label))
	}
}

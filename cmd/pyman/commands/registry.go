package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/ui/style"
)

func (c *CLI) newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and edit the package registry",
	}
	cmd.AddCommand(c.newRegistryAddCmd())
	cmd.AddCommand(c.newRegistryListCmd())
	cmd.AddCommand(c.newRegistryShowCmd())
	return cmd
}

func (c *CLI) newRegistryAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> [version]",
		Short: "Add or replace a registry package",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, _ := cmd.Flags().GetStringSlice("dep")
			pkg := domain.Package{Name: args[0], Version: domain.LatestVersion, Dependencies: deps}
			if len(args) == 2 {
				pkg.Version = args[1]
			}
			return c.app.RegistryAdd(pkg)
		},
	}
	cmd.Flags().StringSliceP("dep", "d", nil, "Direct dependency of the package (repeatable)")
	return cmd
}

func (c *CLI) newRegistryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registry packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pkgs, err := c.app.RegistryList()
			if err != nil {
				return err
			}

			w, r := renderer(cmd)
			for _, pkg := range pkgs {
				line := pkg.Name + " " + style.Muted(r, pkg.Version)
				if len(pkg.Dependencies) > 0 {
					line += " " + style.Muted(r, style.Arrow+" "+strings.Join(pkg.Dependencies, ", "))
				}
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	}
}

func (c *CLI) newRegistryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a registry package and its install order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, order, err := c.app.RegistryShow(args[0])
			if err != nil {
				return err
			}

			w, r := renderer(cmd)
			_, _ = fmt.Fprintln(w, style.Heading(r, pkg.Name)+" "+pkg.Version)
			if len(pkg.Dependencies) > 0 {
				_, _ = fmt.Fprintln(w, style.Muted(r, "requires: ")+strings.Join(pkg.Dependencies, ", "))
			}
			_, _ = fmt.Fprintln(w, style.Muted(r, "install order: ")+strings.Join(order, " "+style.Arrow+" "))
			return nil
		},
	}
}

// Package commands implements the CLI commands for pyman.
package commands

import (
	"context"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/pyman/internal/app"
	"go.trai.ch/pyman/internal/build"
	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/ui/output"
)

// CLI represents the command line interface for pyman.
type CLI struct {
	app      *app.App
	rootCmd  *cobra.Command
	jsonHook func(bool)
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pyman",
		Short:         "Reproducible Python environments from a dependency registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", domain.ConfigFileName, "Path to configuration file")
	rootCmd.PersistentFlags().Bool("json", false, "Emit log output as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		c.app.SetConfigPath(configPath)

		jsonOut, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		if c.jsonHook != nil {
			c.jsonHook(jsonOut)
		}
		return nil
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newSetupCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newFreezeCmd())
	rootCmd.AddCommand(c.newRegistryCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetJSONHook registers a callback receiving the value of the --json flag before
// any command runs.
func (c *CLI) SetJSONHook(fn func(bool)) {
	c.jsonHook = fn
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func renderer(cmd *cobra.Command) (io.Writer, *lipgloss.Renderer) {
	w := cmd.OutOrStdout()
	return w, output.NewRenderer(w)
}

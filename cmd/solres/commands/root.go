// Package commands implements the CLI commands for solres.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/solres/internal/app"
	"go.trai.ch/solres/internal/build"
)

// CLI represents the command line interface for solres.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	shutdown func(context.Context) error
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.GlobalOptions) func(context.Context) error
	SwitchWorkspace(ctx context.Context, root string) error
	Resolve(ctx context.Context, patterns []string, opts app.ResolveOptions) error
	Compile(ctx context.Context, patterns []string, opts app.CompileOptions) error
	Lookup(ctx context.Context, original, source string) error
	Graph(ctx context.Context, pattern string) error
	Index(ctx context.Context) error
	Watch(ctx context.Context, pattern string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "solres",
		Short:         "Resolve and bundle Solidity package imports",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.Bool("json", false, "Write logs and results as JSON")
	flags.BoolP("quiet", "q", false, "Only log errors")
	flags.Bool("trace", false, "Export resolution spans to the log")
	flags.StringP("workspace", "w", "", "Use this directory as the workspace root")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.setup
	rootCmd.PersistentPostRunE = c.teardown

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newLookupCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newIndexCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	jsonOut, _ := flags.GetBool("json")
	quiet, _ := flags.GetBool("quiet")
	trace, _ := flags.GetBool("trace")
	c.shutdown = c.app.Configure(app.GlobalOptions{JSON: jsonOut, Quiet: quiet, Trace: trace})

	if root, _ := flags.GetString("workspace"); root != "" {
		return c.app.SwitchWorkspace(cmd.Context(), root)
	}
	return nil
}

func (c *CLI) teardown(cmd *cobra.Command, _ []string) error {
	return c.Shutdown(cmd.Context())
}

// Shutdown flushes telemetry started by the last command. Cobra skips the
// post-run hook when a command fails, so callers run it once more on exit.
func (c *CLI) Shutdown(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}
	fn := c.shutdown
	c.shutdown = nil
	return fn(ctx)
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func jsonFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/solres/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [entries...]",
		Short: "Resolve imports and record them in the resolution index",
		Long: "Resolve the imports of every entry, or of every source file in the workspace\n" +
			"when no entry is given. Entries may be glob patterns.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Resolve(cmd.Context(), args, app.ResolveOptions{JSON: jsonFlag(cmd)})
		},
	}
}

func (c *CLI) newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [entries...]",
		Short: "Resolve and compile entries",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			return c.app.Compile(cmd.Context(), args, app.CompileOptions{JSON: jsonFlag(cmd)})
		},
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <entry>",
		Short: "Compile an entry and recompile it when sources change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), args[0])
		},
	}
}

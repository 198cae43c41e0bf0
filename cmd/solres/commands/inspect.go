package commands

import "github.com/spf13/cobra"

func (c *CLI) newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <import>",
		Short: "Print the resolved path recorded for an import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			return c.app.Lookup(cmd.Context(), args[0], source)
		},
	}
	cmd.Flags().StringP("source", "s", "", "Only consider imports written in this file")
	return cmd
}

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <entry>",
		Short: "Print the import graph of an entry in DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Graph(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Print the resolution index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Index(cmd.Context())
		},
	}
}

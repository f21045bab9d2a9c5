package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/ali/internal/cli"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print a Mermaid flowchart of the active plugins",
	Example: `  ali graph > plugins.mmd
  ali graph --trace "CREATE PANE LEFT"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		trace, _ := cmd.Flags().GetString("trace")
		return cli.Graph(cmd.Context(), options(cmd), trace, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("trace", "", "Highlight the path this command takes")
}

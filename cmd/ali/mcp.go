package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/ali/internal/cli"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Serves the resolve and list_verbs tools over stdio so agents can
turn natural commands into shell commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd)
		if !cmd.Flags().Changed("caller") {
			opts.Caller = "mcp"
		}
		return cli.ServeMCP(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

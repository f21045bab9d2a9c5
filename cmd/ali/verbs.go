package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/ali/internal/cli"
)

var verbsCmd = &cobra.Command{
	Use:     "verbs",
	Aliases: []string{"list-verbs"},
	Short:   "List the verbs of the active plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListVerbs(cmd.Context(), options(cmd), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(verbsCmd)
}

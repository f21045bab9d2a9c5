package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/ali/internal/cli"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent interpreted commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")
		return cli.ShowHistory(cmd.Context(), options(cmd), limit, asJSON, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "l", 20, "Number of entries to show (0 for all)")
	historyCmd.Flags().Bool("json", false, "Print entries as JSON lines")
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/ali/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every plugin compiles and its services are provided",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(cmd.Context(), options(cmd), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

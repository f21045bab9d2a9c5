package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/ali"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ali",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ali version %s\n", strings.TrimSpace(ali.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

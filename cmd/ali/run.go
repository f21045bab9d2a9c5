package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/ali/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <command...>",
	Short: "Interpret a command and execute it",
	Long: `Interprets the arguments as a single command and executes the result in a shell.
The process exits with the command's exit code, 127 for an unknown verb and 1 for any other error.`,
	Example: `  ali run CREATE PANE LEFT
  ali run --dry-run GO .2`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCommand,
}

func runCommand(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		_ = cmd.Help()
		return
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	opts := cli.RunOptions{Options: options(cmd), DryRun: dryRun}
	os.Exit(cli.Run(cmd.Context(), opts, strings.Join(args, " "), os.Stdout, os.Stderr))
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("dry-run", "n", false, "Print the resolved command instead of executing it")
	rootCmd.Flags().BoolP("dry-run", "n", false, "Print the resolved command instead of executing it")
	rootCmd.Run = runCommand
}

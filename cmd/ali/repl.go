package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ali/internal/cli"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive shell",
	Long: `Reads commands line by line and prints what each one resolves to.
With --exec the resolved commands are executed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		execute, _ := cmd.Flags().GetBool("exec")

		opts := cli.REPLOptions{Options: options(cmd), Watch: watch, Execute: execute}
		if opts.Caller == "cli" && !cmd.Flags().Changed("caller") {
			opts.Caller = "repl"
		}
		return cli.RunREPL(opts, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolP("watch", "w", false, "Reload plugins when their files change")
	replCmd.Flags().BoolP("exec", "x", false, "Execute resolved commands")
}

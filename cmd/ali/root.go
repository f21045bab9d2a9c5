package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ali/internal/adapters/file"
	"github.com/aretw0/ali/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "ali [command...]",
	Short: "ali turns natural commands into shell commands",
	Long: `ali interprets short commands such as "CREATE PANE LEFT" with declarative
plugins and runs the shell command they resolve to.

Called with arguments, ali behaves like "ali run".`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitFailure)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("plugins", cli.EnvDefault(cli.EnvPluginsDir, ""), `Plugins directory, or "builtin" for the embedded plugins`)
	flags.Bool("debug", cli.EnvBool(cli.EnvDebug), "Enable debug logging on stderr")
	flags.String("history", cli.EnvDefault(cli.EnvHistory, file.DefaultHistoryPath()), "History file or redis:// URL (empty disables history)")
	flags.String("caller", cli.EnvDefault(cli.EnvCaller, "cli"), "Caller recorded in the history")
}

// options reads the persistent flags shared by every command.
func options(cmd *cobra.Command) cli.Options {
	pluginsDir, _ := cmd.Flags().GetString("plugins")
	debug, _ := cmd.Flags().GetBool("debug")
	history, _ := cmd.Flags().GetString("history")
	caller, _ := cmd.Flags().GetString("caller")
	return cli.Options{
		PluginsDir: pluginsDir,
		Debug:      debug,
		History:    history,
		Caller:     caller,
	}
}

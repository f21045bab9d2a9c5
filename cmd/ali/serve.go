package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/ali/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP resolution server",
	Long: `Exposes command resolution as a JSON API over HTTP, together with
health, verb listing and Prometheus metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		watch, _ := cmd.Flags().GetBool("watch")

		return cli.Serve(cli.ServeOptions{Options: options(cmd), Addr: addr, Watch: watch}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload plugins when their files change")
}

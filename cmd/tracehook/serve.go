package main

import (
	"context"

	"github.com/aretw0/tracehook/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts an HTTP server exposing POST /execute, GET /plugins and Prometheus metrics on GET /metrics.
Stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		configPath, _ := cmd.Flags().GetString("config")
		gas, _ := cmd.Flags().GetUint64("gas")
		logLevel, _ := cmd.Flags().GetString("log-level")

		return cli.Serve(context.Background(), cli.ServeOptions{
			Port:       port,
			ConfigPath: configPath,
			Overrides:  configOverrides(cmd),
			Gas:        gas,
			LogLevel:   logLevel,
			Output:     cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Uint64("gas", 0, "Gas limit per execution (default 10000000)")
	serveCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

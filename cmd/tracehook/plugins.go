package main

import (
	"github.com/aretw0/tracehook/internal/cli"
	"github.com/spf13/cobra"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the registered inspector plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListPlugins(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}

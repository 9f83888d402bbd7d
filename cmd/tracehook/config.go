package main

import (
	"github.com/aretw0/tracehook/internal/cli"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective plugin config as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return cli.PrintConfig(cmd.OutOrStdout(), configPath, configOverrides(cmd))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

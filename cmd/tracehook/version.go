package main

import (
	"fmt"

	"github.com/aretw0/tracehook"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tracehook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tracehook version %s\n", tracehook.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

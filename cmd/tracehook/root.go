package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tracehook/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracehook",
	Short: "tracehook traces EVM bytecode with the hello-world inspector",
	Long: `tracehook runs bytecode in an in-memory EVM with the hello-world inspector attached.
It prints a line per traced event and a summary of the step and call counters.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Plugin config file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging in the plugin config")
	rootCmd.PersistentFlags().Bool("log-steps", false, "Enable step logging in the plugin config")
	rootCmd.PersistentFlags().Bool("trace-calls", false, "Enable call tracing in the plugin config")
}

// configOverrides collects the plugin flags the user set explicitly.
func configOverrides(cmd *cobra.Command) cli.ConfigOverrides {
	var o cli.ConfigOverrides
	lookup := func(name string) *bool {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetBool(name)
		return &v
	}
	o.Verbose = lookup("verbose")
	o.LogSteps = lookup("log-steps")
	o.TraceCalls = lookup("trace-calls")
	return o
}

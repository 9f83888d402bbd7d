package main

import (
	"context"

	"github.com/aretw0/tracehook/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <hex-code>",
	Short: "Execute bytecode with the hello-world inspector",
	Long: `Runs the given bytecode as the code of a contract (or, with --deploy, as init code)
and prints the inspector output followed by a summary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		input, _ := cmd.Flags().GetString("input")
		deploy, _ := cmd.Flags().GetBool("deploy")
		gas, _ := cmd.Flags().GetUint64("gas")
		debug, _ := cmd.Flags().GetBool("debug")
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		quiet, _ := cmd.Flags().GetBool("quiet")

		_, err := cli.Run(context.Background(), cli.RunOptions{
			Code:       args[0],
			Input:      input,
			Deploy:     deploy,
			Gas:        gas,
			ConfigPath: configPath,
			Overrides:  configOverrides(cmd),
			Debug:      debug,
			Mermaid:    mermaid,
			Quiet:      quiet,
			Output:     cmd.OutOrStdout(),
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("input", "", "Calldata as hex")
	runCmd.Flags().Bool("deploy", false, "Treat the code as init code and deploy it")
	runCmd.Flags().Uint64("gas", 0, "Gas limit (default 10000000)")
	runCmd.Flags().Bool("debug", false, "Log every hook at debug level on stderr")
	runCmd.Flags().Bool("mermaid", false, "Print the call tree as a Mermaid diagram")
	runCmd.Flags().BoolP("quiet", "q", false, "Print only the inspector output")
}

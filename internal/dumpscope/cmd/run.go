package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a single non-interactive analysis",
	Long: `Run the analysis in non-interactive mode and print the report.
Useful for scripting and for regression testing with --json.`,
	Example: `
# Print the analysis report
dumpscope run /path/to/dump.bin

# Machine-readable output
dumpscope run -j /path/to/dump.bin
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		if !quiet {
			slog.Info("Running analysis", "file", args[0])
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		return reportFile(args[0], sessionOptions(cmd), asJSON, os.Stdout)
	},
}

func init() {
	runCmd.Flags().BoolP("json", "j", false, "Output the analysis report as JSON")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress progress logging")
	rootCmd.AddCommand(runCmd)
}

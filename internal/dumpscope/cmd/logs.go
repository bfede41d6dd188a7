package cmd

import (
	"fmt"
	"os"
	pathpkg "path/filepath"
	"sort"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"dumpscope/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the most recent debug log",
	Long: `Show the most recent debug log file written when DUMPSCOPE_LOG_TO_FILE=1
is set. With --follow the command keeps printing new lines as they appear.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := pathpkg.Glob(logging.DebugLogGlob)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no debug logs found (set DUMPSCOPE_LOG_TO_FILE=1 to write them)")
		}
		// Timestamped names sort chronologically; take the newest.
		sort.Strings(names)
		name := names[len(names)-1]

		follow, _ := cmd.Flags().GetBool("follow")
		t, err := tail.TailFile(name, tail.Config{
			Follow: follow,
			ReOpen: follow,
			Logger: tail.DiscardingLogger,
		})
		if err != nil {
			return fmt.Errorf("tail %s: %w", name, err)
		}

		for line := range t.Lines {
			if line.Err != nil {
				fmt.Fprintln(os.Stderr, line.Err)
				continue
			}
			fmt.Println(line.Text)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Keep printing new log lines")
	rootCmd.AddCommand(logsCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	pathpkg "path/filepath"
	"runtime/pprof"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"dumpscope/internal/analysis"
	"dumpscope/internal/dump"
	"dumpscope/internal/dumpscope/log"
	"dumpscope/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "dumpscope [file]",
	Short: "Terminal-based binary dump inspector",
	Long: `Dumpscope is a terminal-based inspector for binary dump files.
It detects embedded ASCII strings and known file-format signatures and
provides an interactive TUI for navigating and searching large dumps.`,
	Example: `
# Inspect a dump interactively
dumpscope /path/to/dump.bin

# Print the analysis report instead of opening the TUI
dumpscope -n /path/to/dump.bin

# Narrow rows, stricter string detection
dumpscope --row-width 8 --min-run 6 /path/to/dump.bin
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Setup CPU profiling if requested
		cpuprofile, _ := cmd.Flags().GetString("cpuprofile")
		if cpuprofile != "" {
			f, err := os.Create(cpuprofile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %v", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %v", err)
			}
			defer pprof.StopCPUProfile()
		}

		// Setup memory profiling if requested
		memprofile, _ := cmd.Flags().GetString("memprofile")
		if memprofile != "" {
			defer func() {
				f, err := os.Create(memprofile)
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
					return
				}
				defer f.Close()
				if err := pprof.WriteHeapProfile(f); err != nil {
					fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
				}
			}()
		}

		debugMode, _ := cmd.Flags().GetBool("debug")
		log.Setup(debugMode)

		file := args[0]
		absPath, err := pathpkg.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %v", err)
		}
		if _, err := os.Stat(absPath); err != nil {
			return fmt.Errorf("cannot access %s: %w", file, err)
		}

		opts := sessionOptions(cmd)

		// Piped output or --no-tui: print the report instead of opening
		// the interactive view.
		noTUI, _ := cmd.Flags().GetBool("no-tui")
		if noTUI || !term.IsTerminal(os.Stdout.Fd()) {
			asJSON, _ := cmd.Flags().GetBool("json")
			return reportFile(absPath, opts, asJSON, os.Stdout)
		}

		program := tea.NewProgram(
			NewModel(absPath, opts),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	},
}

// sessionOptions builds analysis options from the root flags.
func sessionOptions(cmd *cobra.Command) session.Options {
	rowWidth, _ := cmd.Flags().GetInt("row-width")
	minRun, _ := cmd.Flags().GetInt("min-run")
	radius, _ := cmd.Flags().GetInt("radius")
	return session.Options{
		RowWidth:      rowWidth,
		MinRunLength:  minRun,
		ContextRadius: radius,
		Signatures:    analysis.DefaultSignatures,
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int("row-width", dump.DefaultRowWidth, "Bytes shown per row")
	rootCmd.PersistentFlags().Int("min-run", analysis.DefaultMinRunLength, "Minimum length for detected ASCII strings")
	rootCmd.PersistentFlags().Int("radius", session.DefaultContextRadius, "Context bytes shown around the selected row")
	rootCmd.Flags().BoolP("json", "j", false, "Output the analysis report as JSON")
	rootCmd.Flags().BoolP("no-tui", "n", false, "Print the analysis report and exit")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().String("memprofile", "", "Write memory profile to file")
}

func Execute() {
	// Check if --no-tui flag is present, or if output is being piped, to
	// bypass fang's automatic markdown rendering.
	noTUI := false
	for _, arg := range os.Args[1:] {
		if arg == "--no-tui" || arg == "-n" {
			noTUI = true
			break
		}
	}
	if !noTUI && !term.IsTerminal(os.Stdout.Fd()) {
		noTUI = true
	}

	if noTUI {
		// Use cobra directly to avoid fang's automatic markdown rendering
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
	} else {
		// Use fang for enhanced CLI experience with markdown rendering
		if err := fang.Execute(
			context.Background(),
			rootCmd,
			fang.WithNotifySignal(os.Interrupt),
		); err != nil {
			os.Exit(1)
		}
	}
}

package cmd

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// genSize is the total size of the generated test dump.
const genSize = 1024 * 1024

var genCmd = &cobra.Command{
	Use:   "gen [file]",
	Short: "Generate a test dump with known patterns",
	Long: `Generate a binary test dump seeded with known content: a PDF header at
offset 0, a JPEG signature at 1 KiB, a known ASCII string at 2 KiB, and
random padding in between. Useful for exercising the analyzer and TUI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "test_dump.bin"
		if len(args) == 1 {
			name = args[0]
		}

		data := make([]byte, 0, genSize)
		data = append(data, []byte("%PDF-1.4\n")...)
		data = append(data, randomBytes(1024)...)
		data = append(data, 0xFF, 0xD8, 0xFF, 0xE0)
		data = append(data, randomBytes(1024)...)
		data = append(data, []byte("Hello, this is a test ASCII string.")...)
		data = append(data, randomBytes(genSize-len(data))...)

		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Printf("Generated %s (%d bytes) with known patterns for testing.\n", name, len(data))
		return nil
	},
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

func init() {
	rootCmd.AddCommand(genCmd)
}

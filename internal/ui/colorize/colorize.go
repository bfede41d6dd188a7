// Package colorize applies terminal syntax highlighting to hex dump text
// using chroma's hexdump lexer. All functions degrade to plain text when a
// lexer, style, or formatter is unavailable or colors are disabled.
package colorize

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// getHexdumpLexer returns the hexdump lexer, or nil when unavailable
func getHexdumpLexer() chroma.Lexer {
	candidates := []string{"hexdump", "Hexdump"}
	for _, name := range candidates {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

// getDumpStyle returns the dump style with fallbacks
func getDumpStyle() *chroma.Style {
	// Try our custom style first, then fallbacks
	candidates := []string{"dump-dark", "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	// Try high-color first, then fallback
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// HexDump highlights a block of hexdump-formatted lines (offset, hex
// columns, ascii gutter). On any failure the input is returned unchanged.
func HexDump(text string) string {
	if os.Getenv("DUMPSCOPE_NO_COLOR") != "" {
		return text
	}

	lexer := getHexdumpLexer()
	if lexer == nil {
		return text
	}

	style := getDumpStyle()
	formatter := getTerminalFormatter()

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return text
	}

	return buf.String()
}

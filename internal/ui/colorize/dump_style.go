package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

func init() {
	// Register our custom dump style on package initialization
	_ = DumpDark
}

// DumpDark is a custom style for hex dump output matching our color scheme
var DumpDark = styles.Register(chroma.MustNewStyle("dump-dark", chroma.StyleEntries{
	chroma.Text:       "#FFFFFF",    // Default text white
	chroma.Background: "bg:#1e1e1e", // Dark background
	chroma.Comment:    "#7C9C9D",    // Ascii gutter in teal

	// Offsets and hex byte columns
	chroma.NameLabel:            "#5F87AF", // Offsets in steel blue
	chroma.LiteralNumber:        "#FF5F87", // Decimal numbers in pink
	chroma.LiteralNumberHex:     "#FF5F87", // Hex byte columns in pink
	chroma.LiteralNumberInteger: "#FF5F87", // Integer literals in pink

	// Strings and punctuation
	chroma.String:      "#EACD53", // Printable text in golden
	chroma.Punctuation: "#FFFFFF", // Gutter pipes in white
	chroma.Operator:    "#FFFFFF", // Operators in white
}))

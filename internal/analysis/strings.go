package analysis

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ianlancetaylor/demangle"
)

// AsciiRun is a maximal contiguous span of printable ASCII bytes
// (0x20-0x7E) of at least the detector's minimum length. End is exclusive.
type AsciiRun struct {
	Start int
	End   int
	Text  string
}

// Len returns the run length in bytes.
func (r AsciiRun) Len() int { return r.End - r.Start }

func printable(b byte) bool { return b >= 0x20 && b <= 0x7e }

// DetectAsciiRuns scans data left to right and returns every maximal
// printable run of at least minLength bytes. Runs never overlap and two
// reported runs are always separated by at least one non-printable byte.
// A run reaching the end of the buffer is flushed there.
func DetectAsciiRuns(data []byte, minLength int) []AsciiRun {
	if minLength <= 0 {
		minLength = DefaultMinRunLength
	}

	var runs []AsciiRun
	start := -1 // -1 means no open run
	for i, b := range data {
		if printable(b) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= minLength {
			runs = append(runs, AsciiRun{Start: start, End: i, Text: string(data[start:i])})
		}
		start = -1
	}
	if start >= 0 && len(data)-start >= minLength {
		runs = append(runs, AsciiRun{Start: start, End: len(data), Text: string(data[start:])})
	}
	return runs
}

// Preview returns the run text truncated to MaxStringPreview characters for
// listing display.
func (r AsciiRun) Preview() string {
	if len(r.Text) <= MaxStringPreview {
		return r.Text
	}
	return r.Text[:MaxStringPreview] + "…"
}

// DemangledSymbol returns the demangled form of a run that looks like a
// mangled C++ or Rust symbol name, or "" when it is not one. Dumps of
// process memory are full of mangled names and the readable form is far
// more useful in the details pane.
func (r AsciiRun) DemangledSymbol() string {
	name := strings.TrimLeft(r.Text, "_")
	if !strings.HasPrefix(name, "Z") && !strings.HasPrefix(name, "R") {
		return ""
	}
	if out := demangle.Filter(r.Text); out != r.Text {
		return out
	}
	return ""
}

// EscapeUnprintable returns a string where printable Unicode runes are
// preserved. Control and unprintable runes are escaped as \uXXXX. Invalid
// UTF-8 is escaped as \xXX.
func EscapeUnprintable(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, "\\x%02X", b[0])
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
		} else {
			fmt.Fprintf(&sb, "\\u%04X", r)
		}
		b = b[size:]
	}
	return sb.String()
}

package cmd

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"dumpscope/internal/dump"
	"dumpscope/internal/session"
)

// JSONReport is the machine-readable analysis output used for regression
// testing and scripting.
type JSONReport struct {
	File              string       `json:"file"`
	SizeBytes         int          `json:"size_bytes"`
	Digest            string       `json:"digest"`
	EntryCount        int          `json:"entry_count"`
	PatternMatchCount int          `json:"pattern_match_count"`
	AsciiRunCount     int          `json:"ascii_run_count"`
	Matches           []JSONMatch  `json:"matches"`
	Strings           []JSONString `json:"strings"`
}

// JSONMatch is one signature occurrence in the JSON report.
type JSONMatch struct {
	Offset    string `json:"offset"`
	Signature string `json:"signature"`
	Bytes     string `json:"bytes"`
}

// JSONString is one detected ASCII run in the JSON report.
type JSONString struct {
	Offset string `json:"offset"`
	Length int    `json:"length"`
	Text   string `json:"text"`
}

// reportFile loads path, runs the analysis, and writes a report to w.
func reportFile(path string, opts session.Options, asJSON bool, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := session.Load(f, opts)
	if err != nil {
		return err
	}
	slog.Debug("dump analyzed", "file", path, "size", s.Buffer().Len())

	if asJSON {
		return writeJSONReport(s, path, w)
	}
	writeTextReport(s, path, w)
	return nil
}

func writeTextReport(s *session.Session, path string, w io.Writer) {
	buf := s.Buffer()
	sum := s.Summary()

	fmt.Fprintf(w, "File:    %s\n", path)
	fmt.Fprintf(w, "Size:    %d bytes (%d rows of %d)\n", buf.Len(), sum.EntryCount, buf.RowWidth())
	fmt.Fprintf(w, "Digest:  %s\n\n", fileDigest(buf.Bytes()))

	matches := s.Index().Matches()
	fmt.Fprintf(w, "Signatures (%d):\n", len(matches))
	for _, m := range matches {
		raw := buf.Bytes()[m.Offset:m.End()]
		fmt.Fprintf(w, "  0x%08X  %-10s %s\n", m.Offset, m.Name, dump.HexBytes(raw))
	}

	runs := s.Index().Runs()
	fmt.Fprintf(w, "\nASCII strings (%d):\n", len(runs))
	for _, r := range runs {
		fmt.Fprintf(w, "  0x%08X  [%3d]  %q\n", r.Start, r.Len(), r.Preview())
		if sym := r.DemangledSymbol(); sym != "" {
			fmt.Fprintf(w, "              demangled: %s\n", sym)
		}
	}

	fmt.Fprintf(w, "\nTotal entries: %d | Patterns detected: %d | ASCII strings found: %d\n",
		sum.EntryCount, sum.PatternMatchCount, sum.AsciiRunCount)
}

func writeJSONReport(s *session.Session, path string, w io.Writer) error {
	buf := s.Buffer()
	sum := s.Summary()

	report := JSONReport{
		File:              path,
		SizeBytes:         buf.Len(),
		Digest:            fileDigest(buf.Bytes()),
		EntryCount:        sum.EntryCount,
		PatternMatchCount: sum.PatternMatchCount,
		AsciiRunCount:     sum.AsciiRunCount,
		Matches:           []JSONMatch{},
		Strings:           []JSONString{},
	}
	for _, m := range s.Index().Matches() {
		report.Matches = append(report.Matches, JSONMatch{
			Offset:    fmt.Sprintf("0x%X", m.Offset),
			Signature: m.Name,
			Bytes:     dump.HexBytes(buf.Bytes()[m.Offset:m.End()]),
		})
	}
	for _, r := range s.Index().Runs() {
		report.Strings = append(report.Strings, JSONString{
			Offset: fmt.Sprintf("0x%X", r.Start),
			Length: r.Len(),
			Text:   r.Text,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func fileDigest(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

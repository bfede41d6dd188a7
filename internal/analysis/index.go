package analysis

import (
	"dumpscope/internal/dump"
)

// Entry is one display row of the dump: its raw bytes plus the signature
// matches and ascii runs whose span intersects the row.
type Entry struct {
	Index   int
	Address int
	Bytes   []byte
	Matches []PatternMatch
	Runs    []AsciiRun
}

// Tagged reports whether any finding intersects this row.
func (e Entry) Tagged() bool { return len(e.Matches) > 0 || len(e.Runs) > 0 }

// Summary holds the counts shown in the summary panel.
type Summary struct {
	EntryCount        int `json:"entry_count"`
	PatternMatchCount int `json:"pattern_match_count"`
	AsciiRunCount     int `json:"ascii_run_count"`
}

// Index partitions the buffer into entries and aggregates findings per row.
// It is immutable after construction.
type Index struct {
	entries []Entry
	matches []PatternMatch
	runs    []AsciiRun
	summary Summary
}

// BuildIndex derives the row index from the buffer and the two detection
// passes. Every finding tags each row its span intersects, so a match or
// run crossing a row boundary shows up on all rows it touches.
func BuildIndex(buf *dump.Buffer, matches []PatternMatch, runs []AsciiRun) *Index {
	entries := make([]Entry, buf.RowCount())
	for i := range entries {
		entries[i] = Entry{
			Index:   i,
			Address: buf.RowAddress(i),
			Bytes:   buf.Row(i),
		}
	}

	width := buf.RowWidth()
	for _, m := range matches {
		for row := m.Offset / width; row <= (m.End()-1)/width && row < len(entries); row++ {
			entries[row].Matches = append(entries[row].Matches, m)
		}
	}
	for _, r := range runs {
		for row := r.Start / width; row <= (r.End-1)/width && row < len(entries); row++ {
			entries[row].Runs = append(entries[row].Runs, r)
		}
	}

	return &Index{
		entries: entries,
		matches: matches,
		runs:    runs,
		summary: Summary{
			EntryCount:        len(entries),
			PatternMatchCount: len(matches),
			AsciiRunCount:     len(runs),
		},
	}
}

// Analyze runs both detection passes over the buffer and builds the index.
func Analyze(buf *dump.Buffer, sigs []Signature, minRunLength int) *Index {
	matches := ScanSignatures(buf.Bytes(), sigs)
	runs := DetectAsciiRuns(buf.Bytes(), minRunLength)
	return BuildIndex(buf, matches, runs)
}

// Entries returns the full row list, ordered by address.
func (ix *Index) Entries() []Entry { return ix.entries }

// Entry returns row i. The caller is responsible for i being in range.
func (ix *Index) Entry(i int) Entry { return ix.entries[i] }

// Len returns the number of rows.
func (ix *Index) Len() int { return len(ix.entries) }

// Matches returns all signature matches, ordered by offset.
func (ix *Index) Matches() []PatternMatch { return ix.matches }

// Runs returns all detected ascii runs, ordered by start offset.
func (ix *Index) Runs() []AsciiRun { return ix.runs }

// Summary returns the cached counts.
func (ix *Index) Summary() Summary { return ix.summary }

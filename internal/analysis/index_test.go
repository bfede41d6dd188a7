package analysis

import (
	"bytes"
	"testing"

	"dumpscope/internal/dump"
)

func TestBuildIndexPartition(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}
	buf := dump.New(data, 16)
	ix := BuildIndex(buf, nil, nil)

	if ix.Len() != 7 { // ceil(100/16)
		t.Fatalf("Len() = %d, want 7", ix.Len())
	}

	var joined []byte
	prevEnd := 0
	for _, e := range ix.Entries() {
		if e.Address != prevEnd {
			t.Errorf("entry %d starts at %d, want %d (no gaps or overlaps)", e.Index, e.Address, prevEnd)
		}
		prevEnd = e.Address + len(e.Bytes)
		joined = append(joined, e.Bytes...)
	}
	if !bytes.Equal(joined, data) {
		t.Error("concatenated entry bytes do not reproduce the buffer")
	}
}

func TestBuildIndexTagsSpanningRows(t *testing.T) {
	buf := dump.New(make([]byte, 64), 16)

	// Match crossing the row 0 / row 1 boundary.
	match := PatternMatch{Name: "PDF", Offset: 14, Length: 4}
	// Run inside row 2 only.
	run := AsciiRun{Start: 33, End: 40, Text: "example"}

	ix := BuildIndex(buf, []PatternMatch{match}, []AsciiRun{run})

	for i, wantMatches := range []int{1, 1, 0, 0} {
		if got := len(ix.Entry(i).Matches); got != wantMatches {
			t.Errorf("row %d has %d matches, want %d", i, got, wantMatches)
		}
	}
	for i, wantRuns := range []int{0, 0, 1, 0} {
		if got := len(ix.Entry(i).Runs); got != wantRuns {
			t.Errorf("row %d has %d runs, want %d", i, got, wantRuns)
		}
	}
}

func TestBuildIndexRunToEndOfRow(t *testing.T) {
	buf := dump.New(make([]byte, 32), 16)

	// End is exclusive and lands exactly on the row boundary: the run must
	// not leak into row 1.
	run := AsciiRun{Start: 10, End: 16, Text: "abcdef"}
	ix := BuildIndex(buf, nil, []AsciiRun{run})

	if len(ix.Entry(0).Runs) != 1 {
		t.Errorf("row 0 runs = %d, want 1", len(ix.Entry(0).Runs))
	}
	if len(ix.Entry(1).Runs) != 0 {
		t.Errorf("row 1 runs = %d, want 0", len(ix.Entry(1).Runs))
	}
}

func TestAnalyzeSummary(t *testing.T) {
	data := make([]byte, 128)
	copy(data[0:], "%PDF-1.4")
	copy(data[64:], "a readable string")
	buf := dump.New(data, 16)

	ix := Analyze(buf, DefaultSignatures, DefaultMinRunLength)
	s := ix.Summary()

	if s.EntryCount != 8 {
		t.Errorf("EntryCount = %d, want 8", s.EntryCount)
	}
	if s.PatternMatchCount != len(ix.Matches()) || s.PatternMatchCount == 0 {
		t.Errorf("PatternMatchCount = %d, want %d (>0)", s.PatternMatchCount, len(ix.Matches()))
	}
	if s.AsciiRunCount != len(ix.Runs()) || s.AsciiRunCount == 0 {
		t.Errorf("AsciiRunCount = %d, want %d (>0)", s.AsciiRunCount, len(ix.Runs()))
	}
}

func TestBuildIndexEmptyBuffer(t *testing.T) {
	ix := BuildIndex(dump.New(nil, 16), nil, nil)
	if ix.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ix.Len())
	}
	if ix.Summary().EntryCount != 0 {
		t.Errorf("EntryCount = %d, want 0", ix.Summary().EntryCount)
	}
}

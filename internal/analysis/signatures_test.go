package analysis

import (
	"bytes"
	"testing"
)

func TestScanSignaturesKnownOffsets(t *testing.T) {
	data := make([]byte, 64)
	copy(data[10:], "%PDF")
	copy(data[30:], []byte{0x50, 0x4B, 0x03, 0x04})

	matches := ScanSignatures(data, DefaultSignatures)

	var pdf, zip *PatternMatch
	for i := range matches {
		switch matches[i].Name {
		case "PDF":
			pdf = &matches[i]
		case "ZIP":
			zip = &matches[i]
		}
	}

	if pdf == nil || pdf.Offset != 10 {
		t.Errorf("PDF match = %+v, want offset 10", pdf)
	}
	if zip == nil || zip.Offset != 30 {
		t.Errorf("ZIP match = %+v, want offset 30", zip)
	}
}

func TestScanSignaturesAbsence(t *testing.T) {
	data := bytes.Repeat([]byte{0x00, 0x11}, 50)
	if matches := ScanSignatures(data, DefaultSignatures); len(matches) != 0 {
		t.Errorf("got %d matches on signature-free data, want 0: %+v", len(matches), matches)
	}
}

func TestScanSignaturesAnchoredStart(t *testing.T) {
	elf := []byte{0x7F, 0x45, 0x4C, 0x46}

	data := append(append([]byte{}, elf...), make([]byte, 16)...)
	copy(data[8:], elf) // second occurrence, should be ignored

	matches := ScanSignatures(data, DefaultSignatures)
	count := 0
	for _, m := range matches {
		if m.Name == "ELF" {
			count++
			if m.Offset != 0 {
				t.Errorf("anchored ELF matched at offset %d", m.Offset)
			}
		}
	}
	if count != 1 {
		t.Errorf("anchored ELF matched %d times, want 1", count)
	}
}

func TestScanSignaturesWildcard(t *testing.T) {
	// FF D8 FF E1 matches the wildcard JPEG pattern but not JPEG/JFIF.
	data := []byte{0x00, 0xFF, 0xD8, 0xFF, 0xE1, 0x00}
	matches := ScanSignatures(data, DefaultSignatures)

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(matches), matches)
	}
	if matches[0].Name != "JPEG" || matches[0].Offset != 1 {
		t.Errorf("match = %+v, want JPEG at offset 1", matches[0])
	}
}

func TestScanSignaturesOverlapKept(t *testing.T) {
	// FF D8 FF E0 satisfies both JPEG/JFIF and the wildcard JPEG pattern.
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	matches := ScanSignatures(data, DefaultSignatures)

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want both overlapping signatures: %+v", len(matches), matches)
	}
	// Same offset: table registration order breaks the tie.
	if matches[0].Name != "JPEG/JFIF" || matches[1].Name != "JPEG" {
		t.Errorf("tie-break order = %s, %s; want JPEG/JFIF then JPEG", matches[0].Name, matches[1].Name)
	}
}

func TestScanSignaturesOrdering(t *testing.T) {
	data := make([]byte, 64)
	copy(data[40:], "%PDF")
	copy(data[4:], []byte{0x89, 0x50, 0x4E, 0x47})

	matches := ScanSignatures(data, DefaultSignatures)
	for i := 1; i < len(matches); i++ {
		if matches[i].Offset < matches[i-1].Offset {
			t.Errorf("matches not ordered by offset: %+v", matches)
		}
	}
}

func TestScanSignaturesPatternPastEnd(t *testing.T) {
	// Truncated signature at the buffer tail must not match.
	data := []byte{0x00, 0x25, 0x50, 0x44} // "%PD" then EOF
	if matches := ScanSignatures(data, DefaultSignatures); len(matches) != 0 {
		t.Errorf("truncated pattern matched: %+v", matches)
	}
}

func TestScanSignaturesEmptyBuffer(t *testing.T) {
	if matches := ScanSignatures(nil, DefaultSignatures); matches != nil {
		t.Errorf("empty buffer produced matches: %+v", matches)
	}
}

package analysis

// Anchor restricts where a signature may match.
type Anchor int

const (
	// AnchorAnywhere matches at any offset.
	AnchorAnywhere Anchor = iota
	// AnchorStart matches only at offset 0.
	AnchorStart
)

// Signature is a known file-format magic-byte pattern. Mask marks wildcard
// positions: a true entry matches any byte value at that position. A nil
// mask means every position is literal.
type Signature struct {
	Name    string
	Pattern []byte
	Mask    []bool
	Anchor  Anchor
}

// Len returns the pattern length in bytes.
func (s Signature) Len() int { return len(s.Pattern) }

// PatternMatch is one signature occurrence in the dump.
type PatternMatch struct {
	Name   string
	Offset int
	Length int
}

// End returns the exclusive end offset of the match span.
func (m PatternMatch) End() int { return m.Offset + m.Length }

// DefaultSignatures is the built-in signature table. Registration order is
// the tie-break order for matches at the same offset. JFIF and the generic
// wildcard JPEG marker overlap on purpose; both occurrences are reported.
var DefaultSignatures = []Signature{
	{Name: "PDF", Pattern: []byte("%PDF")},
	{Name: "JPEG/JFIF", Pattern: []byte{0xFF, 0xD8, 0xFF, 0xE0}},
	{Name: "JPEG", Pattern: []byte{0xFF, 0xD8, 0xFF, 0x00}, Mask: []bool{false, false, false, true}},
	{Name: "ZIP", Pattern: []byte{0x50, 0x4B, 0x03, 0x04}},
	{Name: "PNG", Pattern: []byte{0x89, 0x50, 0x4E, 0x47}},
	{Name: "GZIP", Pattern: []byte{0x1F, 0x8B, 0x08}},
	{Name: "ELF", Pattern: []byte{0x7F, 0x45, 0x4C, 0x46}, Anchor: AnchorStart},
	{Name: "PE/MZ", Pattern: []byte{0x4D, 0x5A}, Anchor: AnchorStart},
	{Name: "BMP", Pattern: []byte{0x42, 0x4D}, Anchor: AnchorStart},
}

// ScanSignatures runs every signature over data and returns all matches
// ordered by offset, ties broken by table order. Anchored signatures are
// tested at offset 0 only. Overlapping matches from different signatures
// are all kept; an empty result means no known format was detected.
func ScanSignatures(data []byte, sigs []Signature) []PatternMatch {
	var matches []PatternMatch
	for offset := range data {
		for _, sig := range sigs {
			if sig.Anchor == AnchorStart && offset != 0 {
				continue
			}
			if matchesAt(data, offset, sig) {
				matches = append(matches, PatternMatch{
					Name:   sig.Name,
					Offset: offset,
					Length: sig.Len(),
				})
			}
		}
	}
	return matches
}

func matchesAt(data []byte, offset int, sig Signature) bool {
	if sig.Len() == 0 || offset+sig.Len() > len(data) {
		return false
	}
	for i, want := range sig.Pattern {
		if sig.Mask != nil && sig.Mask[i] {
			continue
		}
		if data[offset+i] != want {
			return false
		}
	}
	return true
}

// Package dump models a loaded binary dump as an immutable byte buffer
// addressed by fixed-width rows. Every address is an offset in [0, Len).
package dump

import (
	"fmt"
	"io"
	"strings"
)

// DefaultRowWidth is the number of bytes shown per row.
const DefaultRowWidth = 16

// Buffer holds the raw bytes of a dump. It is read-only after construction
// and safe to share by reference across consumers.
type Buffer struct {
	data     []byte
	rowWidth int
}

// New wraps data in a Buffer with the given row width. A non-positive row
// width falls back to DefaultRowWidth. The buffer takes ownership of data;
// callers must not mutate it afterwards.
func New(data []byte, rowWidth int) *Buffer {
	if rowWidth <= 0 {
		rowWidth = DefaultRowWidth
	}
	return &Buffer{data: data, rowWidth: rowWidth}
}

// Load reads the whole dump into memory from r.
func Load(r io.Reader, rowWidth int) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	return New(data, rowWidth), nil
}

// Len returns the total number of bytes in the dump.
func (b *Buffer) Len() int { return len(b.data) }

// RowWidth returns the configured bytes-per-row.
func (b *Buffer) RowWidth() int { return b.rowWidth }

// Bytes returns the underlying data. Callers must treat it as read-only.
func (b *Buffer) Bytes() []byte { return b.data }

// RowCount returns ceil(Len / RowWidth); the rows partition [0, Len)
// exactly, the last row may be short.
func (b *Buffer) RowCount() int {
	return (len(b.data) + b.rowWidth - 1) / b.rowWidth
}

// Row returns the bytes of row i, or nil when i is out of range.
func (b *Buffer) Row(i int) []byte {
	if i < 0 || i >= b.RowCount() {
		return nil
	}
	start := i * b.rowWidth
	end := start + b.rowWidth
	if end > len(b.data) {
		end = len(b.data)
	}
	return b.data[start:end]
}

// RowAddress returns the starting address of row i.
func (b *Buffer) RowAddress(i int) int { return i * b.rowWidth }

// RowForAddress returns the index of the row containing addr. The caller is
// responsible for addr being in range.
func (b *Buffer) RowForAddress(addr int) int { return addr / b.rowWidth }

// Contains reports whether addr is a valid address into the dump.
func (b *Buffer) Contains(addr int) bool { return addr >= 0 && addr < len(b.data) }

// Context returns the bytes surrounding the row starting at addr:
// [addr-radius, addr+rowWidth+radius) clamped to the buffer bounds. The
// returned start is the address of the first byte of the slice.
func (b *Buffer) Context(addr, radius int) (start int, bytes []byte) {
	start = addr - radius
	if start < 0 {
		start = 0
	}
	end := addr + b.rowWidth + radius
	if end > len(b.data) {
		end = len(b.data)
	}
	if start >= end {
		return start, nil
	}
	return start, b.data[start:end]
}

// HexLine formats one row as a classic hexdump line: zero-padded address,
// space-separated hex bytes padded to width columns, and a printable-ascii
// gutter with '.' standing in for non-printable bytes.
func HexLine(addr int, row []byte, width int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%08x  ", addr)
	for i := 0; i < width; i++ {
		if i < len(row) {
			fmt.Fprintf(&sb, "%02x ", row[i])
		} else {
			sb.WriteString("   ")
		}
	}
	sb.WriteString(" |")
	for _, c := range row {
		if c >= 0x20 && c <= 0x7e {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteByte('|')
	return sb.String()
}

// HexBytes renders bytes as uppercase spaced hex pairs, the compact form
// used in the details pane.
func HexBytes(bytes []byte) string {
	var sb strings.Builder
	for i, c := range bytes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}

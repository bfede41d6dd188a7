package dump

import (
	"bytes"
	"strings"
	"testing"
)

func TestRowCount(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		rowWidth int
		want     int
	}{
		{name: "empty", size: 0, rowWidth: 16, want: 0},
		{name: "single byte", size: 1, rowWidth: 16, want: 1},
		{name: "exact row", size: 16, rowWidth: 16, want: 1},
		{name: "one over", size: 17, rowWidth: 16, want: 2},
		{name: "many rows", size: 1024, rowWidth: 16, want: 64},
		{name: "narrow rows", size: 10, rowWidth: 4, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(make([]byte, tt.size), tt.rowWidth)
			if got := b.RowCount(); got != tt.want {
				t.Errorf("RowCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRowsPartitionBuffer(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}

	b := New(data, 16)

	var joined []byte
	for i := 0; i < b.RowCount(); i++ {
		row := b.Row(i)
		if i < b.RowCount()-1 && len(row) != 16 {
			t.Errorf("row %d has %d bytes, want 16", i, len(row))
		}
		joined = append(joined, row...)
	}

	if !bytes.Equal(joined, data) {
		t.Errorf("concatenated rows do not reproduce the buffer")
	}
}

func TestRowOutOfRange(t *testing.T) {
	b := New([]byte{1, 2, 3}, 16)
	if b.Row(-1) != nil {
		t.Error("Row(-1) should be nil")
	}
	if b.Row(1) != nil {
		t.Error("Row(1) should be nil for a single-row buffer")
	}
}

func TestContext(t *testing.T) {
	data := make([]byte, 64)
	b := New(data, 16)

	tests := []struct {
		name      string
		addr      int
		radius    int
		wantStart int
		wantLen   int
	}{
		{name: "clamped at start", addr: 0, radius: 8, wantStart: 0, wantLen: 24},
		{name: "interior", addr: 16, radius: 8, wantStart: 8, wantLen: 32},
		{name: "clamped at end", addr: 48, radius: 32, wantStart: 16, wantLen: 48},
		{name: "zero radius", addr: 16, radius: 0, wantStart: 16, wantLen: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, ctx := b.Context(tt.addr, tt.radius)
			if start != tt.wantStart {
				t.Errorf("start = %d, want %d", start, tt.wantStart)
			}
			if len(ctx) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(ctx), tt.wantLen)
			}
		})
	}
}

func TestContextEmptyBuffer(t *testing.T) {
	b := New(nil, 16)
	_, ctx := b.Context(0, 16)
	if ctx != nil {
		t.Errorf("context of empty buffer = %v, want nil", ctx)
	}
}

func TestLoad(t *testing.T) {
	b, err := Load(strings.NewReader("hello world"), 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Len() != 11 {
		t.Errorf("Len() = %d, want 11", b.Len())
	}
	if b.RowWidth() != DefaultRowWidth {
		t.Errorf("RowWidth() = %d, want default %d", b.RowWidth(), DefaultRowWidth)
	}
}

func TestHexLine(t *testing.T) {
	line := HexLine(0x10, []byte{0x25, 0x50, 0x44, 0x46, 0x00}, 8)
	want := "00000010  25 50 44 46 00           |%PDF.|"
	if line != want {
		t.Errorf("HexLine() = %q, want %q", line, want)
	}
}

func TestHexBytes(t *testing.T) {
	if got := HexBytes([]byte{0x4d, 0x5a, 0x90}); got != "4D 5A 90" {
		t.Errorf("HexBytes() = %q, want %q", got, "4D 5A 90")
	}
	if got := HexBytes(nil); got != "" {
		t.Errorf("HexBytes(nil) = %q, want empty", got)
	}
}

package analysis

import (
	"strings"
	"testing"
)

func TestDetectAsciiRuns(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		minLength int
		want      []AsciiRun
	}{
		{
			name:      "single run",
			data:      []byte("\x00\x01Hello\xff"),
			minLength: 4,
			want:      []AsciiRun{{Start: 2, End: 7, Text: "Hello"}},
		},
		{
			name:      "run below threshold discarded",
			data:      []byte("\x00abc\x00"),
			minLength: 4,
			want:      nil,
		},
		{
			name:      "run flushed at end of buffer",
			data:      []byte("\x00test"),
			minLength: 4,
			want:      []AsciiRun{{Start: 1, End: 5, Text: "test"}},
		},
		{
			name:      "short tail at end of buffer discarded",
			data:      []byte("\x00\x01x"),
			minLength: 4,
			want:      nil,
		},
		{
			name:      "two separated runs",
			data:      []byte("abcd\x00efgh"),
			minLength: 4,
			want: []AsciiRun{
				{Start: 0, End: 4, Text: "abcd"},
				{Start: 5, End: 9, Text: "efgh"},
			},
		},
		{
			name:      "spaces are printable",
			data:      []byte("\xffhello world\xff"),
			minLength: 4,
			want:      []AsciiRun{{Start: 1, End: 12, Text: "hello world"}},
		},
		{
			name:      "empty buffer",
			data:      nil,
			minLength: 4,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectAsciiRuns(tt.data, tt.minLength)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d runs, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("run %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDetectAsciiRunsMaximality(t *testing.T) {
	data := []byte("\x00first run here\x01\x02second one\x03tail")
	runs := DetectAsciiRuns(data, 4)

	for i := 1; i < len(runs); i++ {
		if runs[i].Start <= runs[i-1].End {
			t.Errorf("runs %d and %d are adjacent or overlapping: %+v %+v",
				i-1, i, runs[i-1], runs[i])
		}
	}
	for _, r := range runs {
		if r.Len() < 4 {
			t.Errorf("run %+v shorter than minimum", r)
		}
		for _, b := range []byte(r.Text) {
			if !printable(b) {
				t.Errorf("run %+v contains non-printable byte %#02x", r, b)
			}
		}
	}
}

func TestAsciiRunPreview(t *testing.T) {
	long := AsciiRun{Text: strings.Repeat("a", MaxStringPreview+10)}
	if got := long.Preview(); len([]rune(got)) != MaxStringPreview+1 {
		t.Errorf("Preview() length = %d, want %d", len([]rune(got)), MaxStringPreview+1)
	}
	short := AsciiRun{Text: "short"}
	if short.Preview() != "short" {
		t.Errorf("Preview() = %q, want %q", short.Preview(), "short")
	}
}

func TestDemangledSymbol(t *testing.T) {
	mangled := AsciiRun{Text: "_ZNSt6vectorIiSaIiEE9push_backERKi"}
	if got := mangled.DemangledSymbol(); got == "" || !strings.Contains(got, "push_back") {
		t.Errorf("DemangledSymbol() = %q, want demangled push_back", got)
	}

	plain := AsciiRun{Text: "just some text"}
	if got := plain.DemangledSymbol(); got != "" {
		t.Errorf("DemangledSymbol() on plain text = %q, want empty", got)
	}
}

func TestEscapeUnprintable(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "plain ascii", input: []byte("hello"), want: "hello"},
		{name: "control byte", input: []byte{'a', 0x01, 'b'}, want: "a\\u0001b"},
		{name: "invalid utf8", input: []byte{0xff, 'x'}, want: "\\xFFx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeUnprintable(tt.input); got != tt.want {
				t.Errorf("EscapeUnprintable() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Package session owns one open dump: the immutable buffer and analysis
// index, plus the mutable navigation state driven by UI commands. Every
// command is a method on Session; there is no global state, so independent
// sessions never interact.
package session

import (
	"fmt"
	"io"

	"dumpscope/internal/analysis"
	"dumpscope/internal/dump"
	"dumpscope/internal/search"
)

// DefaultContextRadius is the number of bytes shown before and after the
// selected row in the details pane.
const DefaultContextRadius = 16

// Options configure analysis at load time.
type Options struct {
	RowWidth      int
	MinRunLength  int
	ContextRadius int
	Signatures    []analysis.Signature
}

func (o Options) withDefaults() Options {
	if o.RowWidth <= 0 {
		o.RowWidth = dump.DefaultRowWidth
	}
	if o.MinRunLength <= 0 {
		o.MinRunLength = analysis.DefaultMinRunLength
	}
	if o.ContextRadius <= 0 {
		o.ContextRadius = DefaultContextRadius
	}
	if o.Signatures == nil {
		o.Signatures = analysis.DefaultSignatures
	}
	return o
}

// IOError reports that the dump could not be read into memory. It is fatal
// to the session; nothing was loaded.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("loading dump: %v", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// OutOfRangeError reports a jump target outside the dump. The navigation
// state is left untouched.
type OutOfRangeError struct {
	Address int
	Size    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("address 0x%X out of range [0, 0x%X)", e.Address, e.Size)
}

// Session is one open dump. The buffer and index are computed once at load
// and never mutated; the navigation fields are mutated in place by the
// command methods. A session belongs to a single owner and is not safe for
// concurrent mutation.
type Session struct {
	buf   *dump.Buffer
	index *analysis.Index
	opts  Options

	selected   int
	radius     int
	query      *search.Query
	results    []int
	cursor     int // index into results, -1 when no results
	jumpTarget int // last successful jump target, -1 when none
}

// New analyzes data and opens a session with the selection on row 0 and no
// active query.
func New(data []byte, opts Options) *Session {
	opts = opts.withDefaults()
	buf := dump.New(data, opts.RowWidth)
	return &Session{
		buf:        buf,
		index:      analysis.Analyze(buf, opts.Signatures, opts.MinRunLength),
		opts:       opts,
		radius:     opts.ContextRadius,
		cursor:     -1,
		jumpTarget: -1,
	}
}

// Load reads the whole dump from r and opens a session.
func Load(r io.Reader, opts Options) (*Session, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return New(data, opts), nil
}

// Buffer returns the immutable dump buffer.
func (s *Session) Buffer() *dump.Buffer { return s.buf }

// Entries returns the read-only row view for rendering.
func (s *Session) Entries() []analysis.Entry { return s.index.Entries() }

// Index returns the full analysis index.
func (s *Session) Index() *analysis.Index { return s.index }

// Summary returns the analysis counts for the summary panel.
func (s *Session) Summary() analysis.Summary { return s.index.Summary() }

// Selected returns the index of the selected entry.
func (s *Session) Selected() int { return s.selected }

// SelectedEntry returns the selected entry, or a zero Entry for an empty
// dump.
func (s *Session) SelectedEntry() analysis.Entry {
	if s.index.Len() == 0 {
		return analysis.Entry{}
	}
	return s.index.Entry(s.selected)
}

// ContextRadius returns the configured context radius.
func (s *Session) ContextRadius() int { return s.radius }

// MoveSelection moves the selection by delta rows, clamped to the entry
// range. It never fails.
func (s *Session) MoveSelection(delta int) {
	s.selected = clamp(s.selected+delta, 0, s.index.Len()-1)
}

// Jump moves the selection to the row containing addr. An address outside
// [0, Len) fails with OutOfRangeError and leaves the state unchanged.
func (s *Session) Jump(addr int) error {
	if !s.buf.Contains(addr) {
		return &OutOfRangeError{Address: addr, Size: s.buf.Len()}
	}
	s.selected = s.buf.RowForAddress(addr)
	s.jumpTarget = addr
	return nil
}

// JumpTarget returns the last successful jump address, or -1 when none.
func (s *Session) JumpTarget() int { return s.jumpTarget }

// Search executes q, replacing any previous result set. With at least one
// match the cursor moves to the first match and the selection to its row.
// Zero matches is a valid outcome: the result set becomes empty and the
// selection stays where it was.
func (s *Session) Search(q search.Query) int {
	s.query = &q
	s.results = search.Run(s.buf.Bytes(), q)
	if len(s.results) == 0 {
		s.cursor = -1
		return 0
	}
	s.cursor = 0
	s.selected = s.buf.RowForAddress(s.results[0])
	return len(s.results)
}

// ActiveQuery returns the last executed query, or nil.
func (s *Session) ActiveQuery() *search.Query { return s.query }

// Results returns the offsets of the active result set, ascending.
func (s *Session) Results() []int { return s.results }

// Cursor returns the index of the current result, or -1 when there are no
// results.
func (s *Session) Cursor() int { return s.cursor }

// CurrentMatch returns the offset under the result cursor, or -1.
func (s *Session) CurrentMatch() int {
	if s.cursor < 0 {
		return -1
	}
	return s.results[s.cursor]
}

// NextMatch advances the result cursor and moves the selection to the new
// match's row. At the last result it is a no-op; there is no wraparound.
func (s *Session) NextMatch() { s.moveCursor(1) }

// PrevMatch retreats the result cursor and moves the selection to the new
// match's row. At the first result it is a no-op.
func (s *Session) PrevMatch() { s.moveCursor(-1) }

func (s *Session) moveCursor(delta int) {
	if len(s.results) == 0 {
		return
	}
	s.cursor = clamp(s.cursor+delta, 0, len(s.results)-1)
	s.selected = s.buf.RowForAddress(s.results[s.cursor])
}

// Context returns the starting address and bytes surrounding entry
// entryIndex: [address-radius, address+rowWidth+radius) clamped to the
// buffer. It is a pure read and never fails; an out-of-range entry yields
// an empty slice.
func (s *Session) Context(entryIndex, radius int) (int, []byte) {
	if entryIndex < 0 || entryIndex >= s.index.Len() {
		return 0, nil
	}
	return s.buf.Context(s.buf.RowAddress(entryIndex), radius)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

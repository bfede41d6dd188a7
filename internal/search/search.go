// Package search implements literal ASCII and wildcard-hex queries over a
// dump buffer. Queries are parsed up front; a malformed hex pattern is
// rejected with a ValidationError instead of being guessed at.
package search

import (
	"fmt"
	"strings"
)

// Kind discriminates the two query forms. The set is closed: every switch
// over Kind handles both arms.
type Kind int

const (
	// KindAscii is a case-sensitive literal substring query.
	KindAscii Kind = iota
	// KindHex is a byte pattern with "??" wildcard positions.
	KindHex
)

// Query is a validated search query. The zero value is not usable; build
// one with NewAsciiQuery or ParseHexQuery.
type Query struct {
	Kind Kind
	Text string // original user input, kept for display and errors

	pattern []byte
	mask    []bool // true marks a wildcard position, nil for ascii queries
}

// Len returns the query length in bytes.
func (q Query) Len() int { return len(q.pattern) }

// ValidationError reports a malformed query. The session recovers locally:
// the query is rejected and the previous results stay active.
type ValidationError struct {
	Query  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid search query %q: %s", e.Query, e.Reason)
}

// NewAsciiQuery builds a literal substring query over the raw bytes.
func NewAsciiQuery(text string) (Query, error) {
	if text == "" {
		return Query{}, &ValidationError{Query: text, Reason: "empty query"}
	}
	return Query{Kind: KindAscii, Text: text, pattern: []byte(text)}, nil
}

// ParseHexQuery parses a hex byte pattern such as "4D 5A ?? ??" or
// "4d5a????". Whitespace between tokens is optional; each token is either
// two hex digits or the wildcard "??". Odd-length input, a half-wildcard
// token like "?A", or an empty pattern are rejected.
func ParseHexQuery(input string) (Query, error) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, input)

	if compact == "" {
		return Query{}, &ValidationError{Query: input, Reason: "empty pattern"}
	}
	if len(compact)%2 != 0 {
		return Query{}, &ValidationError{Query: input, Reason: "odd number of hex digits"}
	}

	n := len(compact) / 2
	pattern := make([]byte, n)
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		tok := compact[2*i : 2*i+2]
		if tok == "??" {
			mask[i] = true
			continue
		}
		hi, ok1 := hexDigit(tok[0])
		lo, ok2 := hexDigit(tok[1])
		if !ok1 || !ok2 {
			return Query{}, &ValidationError{
				Query:  input,
				Reason: fmt.Sprintf("token %q is neither two hex digits nor \"??\"", tok),
			}
		}
		pattern[i] = hi<<4 | lo
	}

	return Query{Kind: KindHex, Text: input, pattern: pattern, mask: mask}, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Run scans data and returns every start offset where the query matches,
// in ascending order. Matches may overlap. An empty result is a valid
// outcome, not an error.
func Run(data []byte, q Query) []int {
	if q.Len() == 0 || q.Len() > len(data) {
		return nil
	}

	var offsets []int
	for o := 0; o <= len(data)-q.Len(); o++ {
		if matchesAt(data, o, q) {
			offsets = append(offsets, o)
		}
	}
	return offsets
}

func matchesAt(data []byte, o int, q Query) bool {
	for i, want := range q.pattern {
		if q.mask != nil && q.mask[i] {
			continue
		}
		if data[o+i] != want {
			return false
		}
	}
	return true
}

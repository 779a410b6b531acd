// Package cursor tracks a position in source text while it is being parsed.
//
// A Cursor is an immutable view of the source from some byte offset to the
// end, together with the 1-based line and column of that offset. Advancing
// returns a new Cursor; the source string itself is shared and never copied.
//
// Lines and columns count codepoints: '\n' starts a new line, '\r' is
// consumed without moving the column, every other codepoint moves the column
// by one. Offsets are always on codepoint boundaries.
package cursor

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrOutOfRange is returned when a cursor is asked to move past the end of
// its source or onto a byte that does not start a codepoint.
var ErrOutOfRange = errors.New("cursor: position out of range")

// Position is a location in source text.
type Position struct {
	Offset int // byte offset from the start of the source
	Line   int // 1-based
	Column int // 1-based, in codepoints
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open range [Start, End) of source text.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

type Cursor struct {
	source string
	offset int
	line   int
	column int
}

// New returns a cursor at the start of source.
func New(source string) Cursor {
	return Cursor{source: source, line: 1, column: 1}
}

// At returns a cursor at byte offset in source. The offset must be on a
// codepoint boundary.
func At(source string, offset int) (Cursor, error) {
	if offset < 0 || offset > len(source) {
		return Cursor{}, fmt.Errorf("%w: offset %d in %d bytes", ErrOutOfRange, offset, len(source))
	}
	if offset < len(source) && !utf8.RuneStart(source[offset]) {
		return Cursor{}, fmt.Errorf("%w: offset %d splits a codepoint", ErrOutOfRange, offset)
	}
	return New(source).advanceBytes(offset), nil
}

// Source returns the complete source text.
func (c Cursor) Source() string {
	return c.source
}

// Remaining returns the source text from the cursor to the end.
func (c Cursor) Remaining() string {
	return c.source[c.offset:]
}

func (c Cursor) Offset() int {
	return c.offset
}

func (c Cursor) Line() int {
	return c.line
}

func (c Cursor) Column() int {
	return c.column
}

func (c Cursor) Position() Position {
	return Position{Offset: c.offset, Line: c.line, Column: c.column}
}

// Len returns the number of bytes left.
func (c Cursor) Len() int {
	return len(c.source) - c.offset
}

// AtEnd reports whether no input is left.
func (c Cursor) AtEnd() bool {
	return c.offset >= len(c.source)
}

func (c Cursor) String() string {
	return c.Position().String()
}

// Advance moves the cursor forward by n codepoints. It returns
// ErrOutOfRange, and the cursor unchanged, if fewer than n codepoints remain.
func (c Cursor) Advance(n int) (Cursor, error) {
	if n < 0 {
		return c, fmt.Errorf("%w: cannot advance by %d", ErrOutOfRange, n)
	}
	end := c.offset
	for i := 0; i < n; i++ {
		if end >= len(c.source) {
			return c, fmt.Errorf("%w: advance by %d with %d codepoints remaining", ErrOutOfRange, n, i)
		}
		_, size := utf8.DecodeRuneInString(c.source[end:])
		end += size
	}
	return c.advanceBytes(end - c.offset), nil
}

// AdvanceToEnd moves the cursor past all remaining input.
func (c Cursor) AdvanceToEnd() Cursor {
	return c.advanceBytes(c.Len())
}

// advanceBytes moves forward by n bytes, updating line and column for each
// codepoint crossed. n must end on a codepoint boundary within the source.
func (c Cursor) advanceBytes(n int) Cursor {
	end := c.offset + n
	for c.offset < end {
		r, size := utf8.DecodeRuneInString(c.source[c.offset:])
		switch r {
		case '\n':
			c.line++
			c.column = 1
		case '\r':
		default:
			c.column++
		}
		c.offset += size
	}
	return c
}

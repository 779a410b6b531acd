package cursor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/vyparse/combinator"
)

// Located is a parser output together with the source span it came from.
type Located[O any] struct {
	Value O
	Span  Span
}

// Run parses src with p, starting from a fresh cursor.
func Run[O any](p combinator.Parser[Cursor, O], src string) (Cursor, O, error) {
	return combinator.Run(p, New(src))
}

func eof(c Cursor) error {
	return combinator.EOF(c)
}

// Char matches the codepoint expected.
func Char(expected rune) combinator.Parser[Cursor, rune] {
	return func(c Cursor) (Cursor, rune, error) {
		rest := c.Remaining()
		if rest == "" {
			return c, 0, eof(c)
		}
		r, size := utf8.DecodeRuneInString(rest)
		if r != expected {
			return c, 0, combinator.Errorf(c, "expected %q", expected)
		}
		return c.advanceBytes(size), r, nil
	}
}

// Take matches exactly n codepoints. A count of zero or less matches the
// empty prefix.
func Take(n int) combinator.Parser[Cursor, string] {
	return func(c Cursor) (Cursor, string, error) {
		if n <= 0 {
			return c, "", nil
		}
		if c.AtEnd() {
			return c, "", eof(c)
		}
		next, err := c.Advance(n)
		if err != nil {
			return c, "", combinator.Errorf(c, "expected at least %d chars", n)
		}
		return next, c.source[c.offset:next.offset], nil
	}
}

// TakeWhile matches the longest non-empty run of codepoints satisfying pred.
// If the first codepoint does not satisfy pred it fails with msg.
func TakeWhile(pred func(rune) bool, msg string) combinator.Parser[Cursor, string] {
	return func(c Cursor) (Cursor, string, error) {
		rest := c.Remaining()
		if rest == "" {
			return c, "", eof(c)
		}
		i := strings.IndexFunc(rest, func(r rune) bool { return !pred(r) })
		switch {
		case i < 0:
			return c.AdvanceToEnd(), rest, nil
		case i == 0:
			return c, "", combinator.Errorf(c, "%s", msg)
		}
		return c.advanceBytes(i), rest[:i], nil
	}
}

// Satisfy matches one codepoint for which pred reports true.
func Satisfy(pred func(rune) bool, msg string) combinator.Parser[Cursor, rune] {
	return func(c Cursor) (Cursor, rune, error) {
		rest := c.Remaining()
		if rest == "" {
			return c, 0, eof(c)
		}
		r, size := utf8.DecodeRuneInString(rest)
		if !pred(r) {
			return c, 0, combinator.Errorf(c, "%s", msg)
		}
		return c.advanceBytes(size), r, nil
	}
}

// OneOf matches one codepoint contained in chars.
func OneOf(chars string) combinator.Parser[Cursor, rune] {
	return Satisfy(func(r rune) bool { return strings.ContainsRune(chars, r) }, "expected one of "+quoteAll(chars))
}

// Tag matches the literal s. It reports EOF when the input ends before s
// does.
func Tag(s string) combinator.Parser[Cursor, string] {
	return func(c Cursor) (Cursor, string, error) {
		rest := c.Remaining()
		switch {
		case strings.HasPrefix(rest, s):
			return c.advanceBytes(len(s)), s, nil
		case rest == "" || strings.HasPrefix(s, rest):
			return c, "", eof(c)
		}
		return c, "", combinator.Errorf(c, "expected %q", s)
	}
}

// Space0 matches any amount of white space, including none.
func Space0() combinator.Parser[Cursor, string] {
	return combinator.Opt(TakeWhile(unicode.IsSpace, "expected white space"))
}

// End succeeds only at the end of input.
func End() combinator.Parser[Cursor, struct{}] {
	return combinator.End[Cursor]()
}

// Recognize returns the source text consumed by p instead of its output.
func Recognize[O any](p combinator.Parser[Cursor, O]) combinator.Parser[Cursor, string] {
	return func(c Cursor) (Cursor, string, error) {
		next, _, err := p(c)
		if err != nil {
			return c, "", err
		}
		return next, c.source[c.offset:next.offset], nil
	}
}

// Locate wraps the output of p with the span p consumed.
func Locate[O any](p combinator.Parser[Cursor, O]) combinator.Parser[Cursor, Located[O]] {
	return func(c Cursor) (Cursor, Located[O], error) {
		next, out, err := p(c)
		if err != nil {
			return c, Located[O]{}, err
		}
		return next, Located[O]{Value: out, Span: Span{Start: c.Position(), End: next.Position()}}, nil
	}
}

func quoteAll(chars string) string {
	var sb strings.Builder
	for i, r := range chars {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteRune('\'')
		sb.WriteRune(r)
		sb.WriteRune('\'')
	}
	return sb.String()
}

// Package asdl parses the Abstract Syntax Description Language, the schema
// notation used to describe syntax trees such as Python's.
//
// A module looks like
//
//	module Python {
//	    stmt = Pass | Return(expr? value)
//	           attributes (int lineno, int col_offset)
//	    arguments = (arg* args, arg? vararg)
//	}
//
// White space and "--" comments may appear between any two tokens.
package asdl

import (
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/vyparse/combinator"
	"github.com/dhamidi/vyparse/cursor"
	"github.com/dhamidi/vyparse/diag"
)

var log = commonlog.GetLogger("vyparse.asdl")

// ErrInputTooLarge is returned when the source exceeds the configured limit.
var ErrInputTooLarge = errors.New("input too large")

const attributesKeyword = "attributes"

type options struct {
	maxInputBytes int
	trace         bool
}

type Option func(*options)

// WithMaxInputBytes rejects sources longer than n bytes. Zero means no limit.
func WithMaxInputBytes(n int) Option {
	return func(o *options) { o.maxInputBytes = n }
}

// WithTrace logs every grammar rule at debug level.
func WithTrace() Option {
	return func(o *options) { o.trace = true }
}

// Parse parses src as a single ASDL module. Syntax errors are returned as
// *combinator.Error[cursor.Cursor] so callers can locate them.
func Parse(src string, opts ...Option) (*Module, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxInputBytes > 0 && len(src) > o.maxInputBytes {
		return nil, fmt.Errorf("parse: %d bytes exceeds limit of %d: %w", len(src), o.maxInputBytes, ErrInputTooLarge)
	}

	p := &parser{trace: o.trace}
	top := combinator.Terminated(p.module(), combinator.Preceded(trivia, cursor.End()))
	_, m, err := cursor.Run(top, src)
	if err != nil {
		log.Debugf("parse failed: %v", err)
		return nil, err
	}
	log.Debugf("parsed module %s: %d definitions", m.Name, len(m.Definitions))
	return m, nil
}

// ParseFile reads and parses the module stored at path.
func ParseFile(path string, opts ...Option) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}
	return Parse(string(data), opts...)
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

var (
	space = combinator.Value(struct{}{},
		cursor.TakeWhile(unicode.IsSpace, "expected white space"))

	comment = combinator.Value(struct{}{}, combinator.Pair(
		cursor.Tag("--"),
		combinator.Opt(cursor.TakeWhile(func(r rune) bool { return r != '\n' }, "expected comment")),
	))

	trivia = combinator.Value(struct{}{}, combinator.Many0(combinator.Alt(space, comment)))

	word = cursor.Locate(cursor.Recognize(combinator.Pair(
		cursor.Satisfy(isNameStart, "expected a name"),
		combinator.Opt(cursor.TakeWhile(isNameChar, "expected a name")),
	)))

	name = token(word)
)

// token skips leading trivia before p, so spans never include it.
func token[O any](p combinator.Parser[cursor.Cursor, O]) combinator.Parser[cursor.Cursor, O] {
	return combinator.Preceded(trivia, p)
}

func symbol(r rune) combinator.Parser[cursor.Cursor, rune] {
	return token(cursor.Char(r))
}

func keyword(kw string) combinator.Parser[cursor.Cursor, cursor.Located[string]] {
	return token(combinator.Verify(word, func(w cursor.Located[string]) bool {
		return w.Value == kw
	}, fmt.Sprintf("expected %q", kw)))
}

type parser struct {
	trace bool
}

func rule[O any](p *parser, label string, r combinator.Parser[cursor.Cursor, O]) combinator.Parser[cursor.Cursor, O] {
	if p.trace {
		return combinator.Trace(label, r)
	}
	return r
}

func (p *parser) module() combinator.Parser[cursor.Cursor, *Module] {
	body := combinator.Cut(combinator.Pair(
		name,
		combinator.Delimited(symbol('{'), combinator.Many0(p.definition()), symbol('}')),
	))
	kw := keyword("module")

	return rule(p, "module", func(c cursor.Cursor) (cursor.Cursor, *Module, error) {
		start := c
		c, m, err := kw(c)
		if err != nil {
			return start, nil, err
		}
		c, b, err := body(c)
		if err != nil {
			return start, nil, err
		}
		return c, &Module{
			Name:        b.First.Value,
			Definitions: b.Second,
			Span:        Span{Start: m.Span.Start, End: c.Position()},
		}, nil
	})
}

func (p *parser) definition() combinator.Parser[cursor.Cursor, Definition] {
	typ := combinator.Cut(combinator.Alt(p.product(), p.sum()))
	eq := symbol('=')

	return rule(p, "definition", func(c cursor.Cursor) (cursor.Cursor, Definition, error) {
		start := c
		c, n, err := name(c)
		if err != nil {
			return start, Definition{}, err
		}
		c, _, err = eq(c)
		if err != nil {
			return start, Definition{}, err
		}
		c, t, err := combinator.Context("definition "+n.Value, typ)(c)
		if err != nil {
			return start, Definition{}, err
		}
		return c, Definition{
			Name: n.Value,
			Type: t,
			Span: Span{Start: n.Span.Start, End: c.Position()},
		}, nil
	})
}

func (p *parser) product() combinator.Parser[cursor.Cursor, Type] {
	return rule(p, "product", combinator.Map(
		combinator.Pair(p.fields(), p.attributes()),
		func(t combinator.Tuple[[]Field, []Field]) Type {
			return &Product{Fields: t.First, Attributes: t.Second}
		},
	))
}

func (p *parser) sum() combinator.Parser[cursor.Cursor, Type] {
	return rule(p, "sum", combinator.Map(
		combinator.Pair(combinator.SeparatedList1(symbol('|'), p.constructor()), p.attributes()),
		func(t combinator.Tuple[[]Constructor, []Field]) Type {
			return &Sum{Constructors: t.First, Attributes: t.Second}
		},
	))
}

func (p *parser) constructor() combinator.Parser[cursor.Cursor, Constructor] {
	fields := combinator.Opt(p.fields())

	return rule(p, "constructor", func(c cursor.Cursor) (cursor.Cursor, Constructor, error) {
		start := c
		c, n, err := name(c)
		if err != nil {
			return start, Constructor{}, err
		}
		c, fs, err := fields(c)
		if err != nil {
			return start, Constructor{}, err
		}
		return c, Constructor{
			Name:   n.Value,
			Fields: fs,
			Span:   Span{Start: n.Span.Start, End: c.Position()},
		}, nil
	})
}

// attributes parses an optional "attributes" clause. A misspelt keyword
// followed by a field list is reported instead of being taken for the next
// definition.
func (p *parser) attributes() combinator.Parser[cursor.Cursor, []Field] {
	fields := combinator.Cut(p.fields())
	open := symbol('(')

	return rule(p, "attributes", func(c cursor.Cursor) (cursor.Cursor, []Field, error) {
		next, w, err := name(c)
		if err != nil {
			return c, nil, nil
		}
		if w.Value == attributesKeyword {
			next, fs, err := fields(next)
			if err != nil {
				return c, nil, err
			}
			return next, fs, nil
		}
		if s := diag.Suggest(w.Value, []string{attributesKeyword}, 2); len(s) > 0 {
			if _, _, err := open(next); err == nil {
				at, err := cursor.At(c.Source(), w.Span.Start.Offset)
				if err != nil {
					at = c
				}
				return c, nil, combinator.Failf(at, "unknown keyword %q, did you mean %q?", w.Value, s[0])
			}
		}
		return c, nil, nil
	})
}

func (p *parser) fields() combinator.Parser[cursor.Cursor, []Field] {
	list := combinator.Cut(combinator.Terminated(
		combinator.SeparatedList1(symbol(','), p.field()),
		symbol(')'),
	))
	open := symbol('(')

	return rule(p, "fields", func(c cursor.Cursor) (cursor.Cursor, []Field, error) {
		start := c
		c, _, err := open(c)
		if err != nil {
			return start, nil, err
		}
		c, fs, err := list(c)
		if err != nil {
			return start, nil, err
		}
		return c, fs, nil
	})
}

func (p *parser) field() combinator.Parser[cursor.Cursor, Field] {
	count := combinator.Opt(token(cursor.OneOf("?*")))

	return rule(p, "field", func(c cursor.Cursor) (cursor.Cursor, Field, error) {
		start := c
		c, typ, err := name(c)
		if err != nil {
			return start, Field{}, err
		}
		c, q, err := count(c)
		if err != nil {
			return start, Field{}, err
		}
		c, n, err := name(c)
		if err != nil {
			return start, Field{}, err
		}
		return c, Field{
			Type:  typ.Value,
			Count: countOf(q),
			Name:  n.Value,
			Span:  Span{Start: typ.Span.Start, End: n.Span.End},
		}, nil
	})
}

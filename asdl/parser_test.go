package asdl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dhamidi/vyparse/combinator"
	"github.com/dhamidi/vyparse/cursor"
)

var ignoreSpans = []cmp.Option{cmpopts.IgnoreTypes(Span{}), cmpopts.EquateEmpty()}

const toy = `module Toy {
    -- statements
    stmt = Pass
         | Assign(expr* targets, expr value)
         attributes (int lineno, int? end_lineno)

    arguments = (arg* args, arg? vararg)
}
`

func TestParse(t *testing.T) {
	got, err := Parse(toy)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := &Module{
		Name: "Toy",
		Definitions: []Definition{
			{
				Name: "stmt",
				Type: &Sum{
					Constructors: []Constructor{
						{Name: "Pass"},
						{Name: "Assign", Fields: []Field{
							{Type: "expr", Count: ZeroOrMany, Name: "targets"},
							{Type: "expr", Count: One, Name: "value"},
						}},
					},
					Attributes: []Field{
						{Type: "int", Count: One, Name: "lineno"},
						{Type: "int", Count: ZeroOrOne, Name: "end_lineno"},
					},
				},
			},
			{
				Name: "arguments",
				Type: &Product{Fields: []Field{
					{Type: "arg", Count: ZeroOrMany, Name: "args"},
					{Type: "arg", Count: ZeroOrOne, Name: "vararg"},
				}},
			},
		},
	}
	if diff := cmp.Diff(want, got, ignoreSpans...); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseVariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Module
	}{
		{
			name: "empty module",
			src:  "module Empty {}",
			want: &Module{Name: "Empty"},
		},
		{
			name: "definitions back to back",
			src:  "module M { x = (int a) y = A | B }",
			want: &Module{Name: "M", Definitions: []Definition{
				{Name: "x", Type: &Product{Fields: []Field{{Type: "int", Name: "a"}}}},
				{Name: "y", Type: &Sum{Constructors: []Constructor{{Name: "A"}, {Name: "B"}}}},
			}},
		},
		{
			name: "spaced count and comments everywhere",
			src:  "-- header\nmodule M -- name\n{ x = ( int ? a -- first\n , string * b ) }\n-- trailer",
			want: &Module{Name: "M", Definitions: []Definition{
				{Name: "x", Type: &Product{Fields: []Field{
					{Type: "int", Count: ZeroOrOne, Name: "a"},
					{Type: "string", Count: ZeroOrMany, Name: "b"},
				}}},
			}},
		},
		{
			name: "definition named like the keyword",
			src:  "module M { x = A attribute = (int a) }",
			want: &Module{Name: "M", Definitions: []Definition{
				{Name: "x", Type: &Sum{Constructors: []Constructor{{Name: "A"}}}},
				{Name: "attribute", Type: &Product{Fields: []Field{{Type: "int", Name: "a"}}}},
			}},
		},
		{
			name: "product with attributes",
			src:  "module M { x = (int a) attributes (int line) }",
			want: &Module{Name: "M", Definitions: []Definition{
				{Name: "x", Type: &Product{
					Fields:     []Field{{Type: "int", Name: "a"}},
					Attributes: []Field{{Type: "int", Name: "line"}},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, ignoreSpans...); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSpans(t *testing.T) {
	m, err := Parse("module M { x = (int a) }")
	if err != nil {
		t.Fatal(err)
	}
	pos := func(offset, col int) cursor.Position {
		return cursor.Position{Offset: offset, Line: 1, Column: col}
	}

	if want := (Span{Start: pos(0, 1), End: pos(24, 25)}); m.Span != want {
		t.Errorf("module span = %v, want %v", m.Span, want)
	}
	d := m.Definitions[0]
	if want := (Span{Start: pos(11, 12), End: pos(22, 23)}); d.Span != want {
		t.Errorf("definition span = %v, want %v", d.Span, want)
	}
	f := d.Type.(*Product).Fields[0]
	if want := (Span{Start: pos(16, 17), End: pos(21, 22)}); f.Span != want {
		t.Errorf("field span = %v, want %v", f.Span, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason combinator.Reason
		msg    string
		offset int
	}{
		{
			name:   "empty source",
			src:    "",
			reason: combinator.ReasonEOF,
			msg:    "unexpected end of input",
		},
		{
			name:   "not a module",
			src:    "modul M {}",
			reason: combinator.ReasonError,
			msg:    `expected "module"`,
		},
		{
			name:   "missing type after equals",
			src:    "module M { x = }",
			reason: combinator.ReasonFailure,
			msg:    "definition x: expected a name",
			offset: 15,
		},
		{
			name:   "unterminated module",
			src:    "module M { x = (int a)",
			reason: combinator.ReasonFailure,
			msg:    "unexpected end of input",
			offset: 22,
		},
		{
			name:   "unterminated fields",
			src:    "module M { x = (int a, }",
			reason: combinator.ReasonFailure,
			msg:    "definition x: expected ')'",
			offset: 21,
		},
		{
			name:   "misspelt attributes",
			src:    "module M { x = (int a) atributes (int b) }",
			reason: combinator.ReasonFailure,
			msg:    `definition x: unknown keyword "atributes", did you mean "attributes"?`,
			offset: 23,
		},
		{
			name:   "trailing input",
			src:    "module M {} x",
			reason: combinator.ReasonError,
			msg:    "expected end of input",
			offset: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			var e *combinator.Error[cursor.Cursor]
			if !errors.As(err, &e) {
				t.Fatalf("err = %v, want *combinator.Error[cursor.Cursor]", err)
			}
			if e.Reason != tt.reason {
				t.Errorf("reason = %v, want %v", e.Reason, tt.reason)
			}
			if e.Error() != tt.msg {
				t.Errorf("message = %q, want %q", e.Error(), tt.msg)
			}
			if e.Input.Offset() != tt.offset {
				t.Errorf("offset = %d, want %d", e.Input.Offset(), tt.offset)
			}
		})
	}
}

func TestParseMaxInputBytes(t *testing.T) {
	_, err := Parse("module M {}", WithMaxInputBytes(4))
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("err = %v, want ErrInputTooLarge", err)
	}
	if _, err := Parse("module M {}", WithMaxInputBytes(64)); err != nil {
		t.Errorf("Parse under limit: %v", err)
	}
}

func TestParseWithTraceSameResult(t *testing.T) {
	plain, err := Parse(toy)
	if err != nil {
		t.Fatal(err)
	}
	traced, err := Parse(toy, WithTrace())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(plain, traced); diff != "" {
		t.Errorf("trace changed result (-plain +traced):\n%s", diff)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toy.asdl")
	if err := os.WriteFile(path, []byte(toy), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if _, ok := m.Lookup("arguments"); !ok {
		t.Error("Lookup(arguments) failed")
	}
	if _, ok := m.Lookup("expr"); ok {
		t.Error("Lookup(expr) should fail")
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.asdl")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestGrammar(t *testing.T) {
	g, err := Grammar()
	if err != nil {
		t.Fatalf("Grammar: %v", err)
	}
	for _, name := range []string{"Module", "Definition", "Product", "Sum", "Constructor", "Attributes", "Fields", "Field", "name"} {
		if _, ok := g[name]; !ok {
			t.Errorf("production %s missing", name)
		}
	}
}

package asdl

import "github.com/dhamidi/vyparse/cursor"

// Count says how many values a field holds.
type Count int

const (
	One Count = iota
	ZeroOrOne
	ZeroOrMany
)

// String returns the ASDL suffix for c.
func (c Count) String() string {
	switch c {
	case ZeroOrOne:
		return "?"
	case ZeroOrMany:
		return "*"
	default:
		return ""
	}
}

func countOf(r rune) Count {
	switch r {
	case '?':
		return ZeroOrOne
	case '*':
		return ZeroOrMany
	default:
		return One
	}
}

type Span = cursor.Span

// Module is a parsed ASDL module.
type Module struct {
	Name        string
	Definitions []Definition
	Span        Span
}

// Lookup returns the definition called name.
func (m *Module) Lookup(name string) (Definition, bool) {
	for _, d := range m.Definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

type Definition struct {
	Name string
	Type Type
	Span Span
}

// Type is either a *Product or a *Sum.
type Type interface {
	// Attrs returns the fields shared by every value of the type.
	Attrs() []Field
	typeNode()
}

type Product struct {
	Fields     []Field
	Attributes []Field
}

func (p *Product) Attrs() []Field { return p.Attributes }
func (*Product) typeNode()        {}

type Sum struct {
	Constructors []Constructor
	Attributes   []Field
}

func (s *Sum) Attrs() []Field { return s.Attributes }
func (*Sum) typeNode()        {}

type Constructor struct {
	Name   string
	Fields []Field
	Span   Span
}

type Field struct {
	Type  string
	Count Count
	Name  string
	Span  Span
}

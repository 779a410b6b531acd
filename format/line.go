package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/vyparse/asdl"
)

// LineEncoder writes one tab-separated row per module, definition,
// constructor, field and attribute, in source order.
type LineEncoder struct {
	w      io.Writer
	module *asdl.Module
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(m *asdl.Module) error {
	e.module = m
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	m := e.module

	fmt.Fprintf(&sb, "module\t%s\n", m.Name)

	for _, d := range m.Definitions {
		switch t := d.Type.(type) {
		case *asdl.Product:
			fmt.Fprintf(&sb, "product\t%s\n", d.Name)
			writeFields(&sb, d.Name, "-", t.Fields)
		case *asdl.Sum:
			fmt.Fprintf(&sb, "sum\t%s\n", d.Name)
			for _, c := range t.Constructors {
				fmt.Fprintf(&sb, "constructor\t%s\t%s\n", d.Name, c.Name)
				writeFields(&sb, d.Name, c.Name, c.Fields)
			}
		default:
			return nil, fmt.Errorf("definition %s: unknown type %T", d.Name, d.Type)
		}
		for _, f := range d.Type.Attrs() {
			fmt.Fprintf(&sb, "attribute\t%s\t%s\t%s\n", d.Name, fieldType(f), f.Name)
		}
	}

	return []byte(sb.String()), nil
}

func writeFields(sb *strings.Builder, def, ctor string, fields []asdl.Field) {
	for _, f := range fields {
		fmt.Fprintf(sb, "field\t%s\t%s\t%s\t%s\n", def, ctor, fieldType(f), f.Name)
	}
}

func fieldType(f asdl.Field) string {
	return f.Type + f.Count.String()
}

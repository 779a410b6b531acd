package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/vyparse/asdl"
)

const indent = "    "

// ASDLEncoder writes a module back as ASDL source. Comments are not kept.
type ASDLEncoder struct {
	w      io.Writer
	module *asdl.Module
}

func NewASDLEncoder(w io.Writer) *ASDLEncoder {
	return &ASDLEncoder{w: w}
}

func (e *ASDLEncoder) Encode(m *asdl.Module) error {
	e.module = m
	return write(e.w, e)
}

func (e *ASDLEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	m := e.module

	fmt.Fprintf(&sb, "module %s {\n", m.Name)
	for i, d := range m.Definitions {
		if i > 0 {
			sb.WriteByte('\n')
		}
		switch t := d.Type.(type) {
		case *asdl.Product:
			fmt.Fprintf(&sb, "%s%s = %s\n", indent, d.Name, fieldList(t.Fields))
		case *asdl.Sum:
			for j, c := range t.Constructors {
				if j == 0 {
					fmt.Fprintf(&sb, "%s%s = %s\n", indent, d.Name, constructor(c))
					continue
				}
				fmt.Fprintf(&sb, "%s%s| %s\n", indent, indent, constructor(c))
			}
		default:
			return nil, fmt.Errorf("definition %s: unknown type %T", d.Name, d.Type)
		}
		if attrs := d.Type.Attrs(); len(attrs) > 0 {
			fmt.Fprintf(&sb, "%s%sattributes %s\n", indent, indent, fieldList(attrs))
		}
	}
	sb.WriteString("}\n")

	return []byte(sb.String()), nil
}

func constructor(c asdl.Constructor) string {
	if len(c.Fields) == 0 {
		return c.Name
	}
	return c.Name + fieldList(c.Fields)
}

func fieldList(fields []asdl.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fieldType(f) + " " + f.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

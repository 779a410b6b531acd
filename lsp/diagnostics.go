package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/vyparse/asdl"
	"github.com/dhamidi/vyparse/cursor"
	"github.com/dhamidi/vyparse/diag"
)

const source = "vyparse"

// Diagnostics parses text and returns its syntax errors. The result is empty,
// never nil, when text parses.
func Diagnostics(text string, opts ...asdl.Option) []protocol.Diagnostic {
	_, err := asdl.Parse(text, opts...)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	d := diag.FromError(text, err)
	start := toProtocol(text, d.Position)
	end := start
	if line, ok := lineAt(text, d.Position.Line); ok && start.Character < protocol.UInteger(utf16Len(line)) {
		end.Character++
	}

	severity := protocol.DiagnosticSeverityError
	src := source
	return []protocol.Diagnostic{{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &src,
		Message:  d.Message,
	}}
}

// Symbols lists the definitions of m, with constructors and fields as
// children.
func Symbols(text string, m *asdl.Module) []protocol.DocumentSymbol {
	symbols := make([]protocol.DocumentSymbol, 0, len(m.Definitions))
	for _, d := range m.Definitions {
		sym := protocol.DocumentSymbol{
			Name:           d.Name,
			Range:          toRange(text, d.Span),
			SelectionRange: toRange(text, d.Span),
		}
		switch t := d.Type.(type) {
		case *asdl.Product:
			sym.Kind = protocol.SymbolKindStruct
			sym.Children = fieldSymbols(text, t.Fields)
		case *asdl.Sum:
			sym.Kind = protocol.SymbolKindEnum
			for _, c := range t.Constructors {
				sym.Children = append(sym.Children, protocol.DocumentSymbol{
					Name:           c.Name,
					Kind:           protocol.SymbolKindEnumMember,
					Range:          toRange(text, c.Span),
					SelectionRange: toRange(text, c.Span),
					Children:       fieldSymbols(text, c.Fields),
				})
			}
		}
		sym.Children = append(sym.Children, fieldSymbols(text, d.Type.Attrs())...)
		symbols = append(symbols, sym)
	}
	return symbols
}

func fieldSymbols(text string, fields []asdl.Field) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, f := range fields {
		detail := f.Type + f.Count.String()
		out = append(out, protocol.DocumentSymbol{
			Name:           f.Name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindField,
			Range:          toRange(text, f.Span),
			SelectionRange: toRange(text, f.Span),
		})
	}
	return out
}

func toRange(text string, s cursor.Span) protocol.Range {
	return protocol.Range{Start: toProtocol(text, s.Start), End: toProtocol(text, s.End)}
}

// toProtocol converts a 1-based codepoint position into the 0-based UTF-16
// position the protocol expects. Like the cursor, a '\r' takes no column.
func toProtocol(text string, p cursor.Position) protocol.Position {
	line, ok := lineAt(text, p.Line)
	if !ok {
		return protocol.Position{}
	}
	units, col := 0, 1
	for _, r := range line {
		if r == '\r' {
			units++
			continue
		}
		if col >= p.Column {
			break
		}
		units += utf16.RuneLen(r)
		col++
	}
	return protocol.Position{
		Line:      protocol.UInteger(p.Line - 1),
		Character: protocol.UInteger(units),
	}
}

func lineAt(text string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(text, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

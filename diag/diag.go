// Package diag turns parse failures into human-readable diagnostics.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dhamidi/vyparse/combinator"
	"github.com/dhamidi/vyparse/cursor"
)

// Diagnostic is a located parse failure.
type Diagnostic struct {
	File     string
	Position cursor.Position
	Reason   combinator.Reason
	Message  string
}

func (d Diagnostic) String() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%s: %s", d.File, d.Position, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Position, d.Message)
}

// FromError locates err in src. It understands failures over cursors and
// over Text views of src; any other error is reported at the start of src.
func FromError(src string, err error) Diagnostic {
	d := Diagnostic{
		Position: cursor.New(src).Position(),
		Reason:   combinator.ReasonOf(err),
		Message:  err.Error(),
	}
	if pos, ok := Locate(src, err); ok {
		d.Position = pos
	}
	return d
}

// Locate returns the position at which err occurred in src.
func Locate(src string, err error) (cursor.Position, bool) {
	var ce *combinator.Error[cursor.Cursor]
	if errors.As(err, &ce) {
		return ce.Input.Position(), true
	}
	var te *combinator.Error[combinator.Text]
	if errors.As(err, &te) {
		offset := len(src) - te.Input.Len()
		c, err := cursor.At(src, offset)
		if err != nil {
			return cursor.Position{}, false
		}
		return c.Position(), true
	}
	return cursor.Position{}, false
}

// Render formats d followed by the offending source line and a caret under
// the failing column.
func Render(src string, d Diagnostic) string {
	var sb strings.Builder
	sb.WriteString(d.String())
	sb.WriteByte('\n')

	line, ok := sourceLine(src, d.Position.Line)
	if !ok {
		return sb.String()
	}
	sb.WriteString("    ")
	sb.WriteString(line)
	sb.WriteByte('\n')
	sb.WriteString("    ")
	sb.WriteString(padding(line, d.Position.Column-1))
	sb.WriteString("^\n")
	return sb.String()
}

// RenderError is FromError followed by Render.
func RenderError(src string, err error) string {
	return Render(src, FromError(src, err))
}

func sourceLine(src string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// padding returns the white space that lines up with the first cols
// codepoints of line, keeping tabs and counting wide characters twice.
func padding(line string, cols int) string {
	var sb strings.Builder
	i := 0
	for _, r := range line {
		if i >= cols {
			break
		}
		i++
		switch r {
		case '\r':
			i--
		case '\t':
			sb.WriteByte('\t')
		default:
			sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
	}
	return sb.String()
}
